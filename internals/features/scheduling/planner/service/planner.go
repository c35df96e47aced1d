// file: internals/features/scheduling/planner/service/planner.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/features/scheduling/lock"
	"kelasku_backend/internals/features/scheduling/planner/repository"
	"kelasku_backend/internals/features/scheduling/rebalancer"
	"kelasku_backend/internals/features/scheduling/weekday"
	"kelasku_backend/internals/helpers/dbtime"
	"kelasku_backend/internals/helpers/logger"
)

type Config struct {
	HorizonWeeks int
	Concurrency  int
	Location     *time.Location
}

func DefaultConfig() Config {
	return Config{
		HorizonWeeks: 12,
		Concurrency:  4,
		Location:     dbtime.LoadScheduleLocation(""),
	}
}

/* =========================
   Jenis kelas (ditentukan sekali dari row)
========================= */

type classKind interface{ isKind() }

type WeeklyKind struct{ LevelID uuid.UUID }
type EkskulKind struct{ PlanID uuid.UUID }

func (WeeklyKind) isKind() {}
func (EkskulKind) isKind() {}

// kindOf: skip reason terisi kalau field wajib untuk jenisnya kosong.
func kindOf(c *classModel.ClassModel) (classKind, string) {
	switch c.ClassType {
	case classModel.ClassTypeWeekly:
		if c.ClassLevelID == nil || *c.ClassLevelID == uuid.Nil {
			return nil, ReasonMissingLevel
		}
		return WeeklyKind{LevelID: *c.ClassLevelID}, ""
	case classModel.ClassTypeEkskul:
		if c.ClassEkskulPlanID == nil || *c.ClassEkskulPlanID == uuid.Nil {
			return nil, ReasonNoLessonPlan
		}
		return EkskulKind{PlanID: *c.ClassEkskulPlanID}, ""
	default:
		return nil, ReasonNotWeekly
	}
}

/* =========================
   Service
========================= */

type Service struct {
	Repo   *repository.Repository
	Locker lock.Locker
	Clock  dbtime.Clock
	Log    *logger.Logger
	Cfg    Config
}

func New(db *gorm.DB, locker lock.Locker, clock dbtime.Clock, log *logger.Logger, cfg Config) *Service {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Location == nil {
		cfg.Location = dbtime.LoadScheduleLocation("")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Service{
		Repo:   repository.New(db),
		Locker: locker,
		Clock:  clock,
		Log:    log,
		Cfg:    cfg,
	}
}

// withClass: lock per kelas → transaksi → advisory lock → baca kelas.
// Seluruh akses DB di fn wajib lewat tx.
func (s *Service) withClass(ctx context.Context, classID uuid.UUID, fn func(tx *repository.Repository, c *classModel.ClassModel) error) error {
	unlock, err := s.Locker.Lock(ctx, "class:"+classID.String())
	if err != nil {
		return fmt.Errorf("lock class %s: %w", classID, err)
	}
	defer unlock()

	return s.Repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.LockClass(ctx, classID); err != nil {
			return err
		}
		c, err := tx.GetClass(ctx, classID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		if err != nil {
			return err
		}
		return fn(tx, c)
	})
}

// PlanClass: dispatch ke pipeline WEEKLY atau EKSKUL sesuai jenis kelas.
func (s *Service) PlanClass(ctx context.Context, classID uuid.UUID, hint Hint) (Result, error) {
	var res Result
	err := s.withClass(ctx, classID, func(tx *repository.Repository, c *classModel.ClassModel) error {
		var err error
		if c.ClassType == classModel.ClassTypeEkskul {
			res, err = s.planEkskul(ctx, tx, c)
		} else {
			res, err = s.planWeekly(ctx, tx, c, hint)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) PlanWeeklyClass(ctx context.Context, classID uuid.UUID, hint Hint) (Result, error) {
	var res Result
	err := s.withClass(ctx, classID, func(tx *repository.Repository, c *classModel.ClassModel) error {
		var err error
		res, err = s.planWeekly(ctx, tx, c, hint)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) planWeekly(ctx context.Context, tx *repository.Repository, c *classModel.ClassModel, hint Hint) (Result, error) {
	log := s.Log.With("class_id", c.ClassID.String(), "kind", "weekly")

	if c.ClassType != classModel.ClassTypeWeekly {
		return Skipped{Reason: ReasonNotWeekly}, nil
	}
	kind, reason := kindOf(c)
	if reason != "" {
		return Skipped{Reason: reason}, nil
	}
	weekly := kind.(WeeklyKind)

	n, err := tx.CountClassBlocks(ctx, c.ClassID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return Skipped{Reason: ReasonAlreadyPlanned}, nil
	}

	day, ok := weekday.Normalize(c.ClassScheduleDay)
	if !ok {
		return Skipped{Reason: reasonInvalidDay(c.ClassScheduleDay)}, nil
	}

	blocks, err := tx.ListCurriculumBlocks(ctx, weekly.LevelID)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return Skipped{Reason: ReasonNoBlocks}, nil
	}

	// Backfill
	target := Target{BlockID: hint.PreferredStartBlockID, LessonID: hint.PreferredStartLessonID}
	if target.LessonID == nil && target.BlockID != nil && !containsBlock(blocks, *target.BlockID) {
		log.Warn("preferred start block not in level, planning from the beginning",
			"block_id", target.BlockID.String())
		target.BlockID = nil
	}
	past, found := Backfill(blocks, target)
	if !found {
		log.Warn("preferred start position not found in curriculum, planning from the beginning")
	}

	// Blocks + lessons
	classStart := s.classStartDate(c)
	aligned := dbtime.AlignToWeekday(classStart, day.Index)
	effectiveStart := dbtime.AddWeeks(aligned, -past)

	plans := PlanBlocks(c.ClassID, blocks, effectiveStart, past)
	lessonCount := 0
	for i := range plans {
		if err := tx.CreateClassBlock(ctx, &plans[i].ClassBlock); err != nil {
			return nil, err
		}
		if err := tx.CreateClassLessons(ctx, plans[i].Lessons); err != nil {
			return nil, err
		}
		lessonCount += len(plans[i].Lessons)
	}
	lastEnd := plans[len(plans)-1].ClassBlock.ClassBlockEndDate

	// Sessions (backdated → akhir kurikulum) + status
	sessions, err := GenerateSessions(GenerateSessionsInput{
		ClassID:          c.ClassID,
		StartDate:        effectiveStart,
		EndDate:          lastEnd,
		Day:              day,
		Time:             c.ClassScheduleTime,
		Location:         s.Cfg.Location,
		ClassMeetingLink: c.ClassMeetingLink,
	})
	if err != nil {
		return nil, fmt.Errorf("generate sessions: %w", err)
	}
	completed := ReconcileStatuses(sessions, past)
	created, err := tx.CreateSessions(ctx, sessions)
	if err != nil {
		return nil, err
	}

	if _, err := rebalancer.ReassignLessonsToSessions(ctx, tx.DB, c.ClassID); err != nil {
		return nil, err
	}

	hr, err := s.topUp(ctx, tx, c)
	if err != nil {
		return nil, err
	}

	firstBlockID := plans[0].ClassBlock.ClassBlockID
	total := int(created) + hr.SessionsCreated
	if err := tx.InsertPlanningRun(ctx, &classModel.ClassPlanningRunModel{
		ClassPlanningRunClassID:          c.ClassID,
		ClassPlanningRunKind:             classModel.ClassTypeWeekly,
		ClassPlanningRunPastSessionCount: past,
		ClassPlanningRunSessionsCreated:  total,
		ClassPlanningRunFirstBlockID:     &firstBlockID,
		ClassPlanningRunDetails: datatypes.NewJSONType(classModel.PlanningRunDetails{
			ScheduleDay:            day.Code,
			EffectiveStartDate:     dbtime.FormatDate(effectiveStart),
			LastSessionDate:        dbtime.FormatDate(lastEnd),
			BlockCount:             len(plans),
			LessonCount:            lessonCount,
			HorizonSessions:        hr.SessionsCreated,
			PreferredStartBlockID:  hint.PreferredStartBlockID,
			PreferredStartLessonID: hint.PreferredStartLessonID,
		}),
	}); err != nil {
		return nil, err
	}

	log.Info("weekly class planned",
		"blocks", len(plans),
		"lessons", lessonCount,
		"past_sessions", past,
		"completed", completed,
		"sessions_created", total)

	return Planned{BlockID: &firstBlockID, SessionsCreated: total, PastSessionCount: past}, nil
}

// classStartDate: tanggal mulai kelas, atau hari ini (zona jadwal) kalau kosong.
func (s *Service) classStartDate(c *classModel.ClassModel) time.Time {
	if c.ClassStartDate != nil && !c.ClassStartDate.IsZero() {
		return dbtime.CivilDate(*c.ClassStartDate, time.UTC)
	}
	return dbtime.CivilDate(dbtime.DateOf(s.Clock.Now(), s.Cfg.Location), time.UTC)
}

func containsBlock(blocks []repository.CurriculumBlock, id uuid.UUID) bool {
	for _, b := range blocks {
		if b.Block.BlockID == id {
			return true
		}
	}
	return false
}

/* =========================
   Batch (migrasi kelas lama)
========================= */

// PlanBatch: error per kelas dicatat di outcome, batch tetap jalan. Urutan outcome = urutan items.
func (s *Service) PlanBatch(ctx context.Context, items []BatchItem) []BatchOutcome {
	out := make([]BatchOutcome, len(items))
	g := new(errgroup.Group)
	g.SetLimit(s.Cfg.Concurrency)

	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			res, err := s.PlanClass(ctx, it.ClassID, it.Hint)
			out[i] = BatchOutcome{ClassID: it.ClassID, Result: res, Err: err}
			if err != nil {
				s.Log.Error("batch plan failed", "class_id", it.ClassID.String(), "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

/* =========================
   Horizon untuk semua kelas (dipanggil scheduler)
========================= */

func (s *Service) TopUpAll(ctx context.Context) (int, error) {
	ids, err := s.Repo.ListPlannedWeeklyClassIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		mu    sync.Mutex
		total int
		errs  []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Cfg.Concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			hr, err := s.TopUpHorizon(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("class %s: %w", id, err))
				return nil
			}
			total += hr.SessionsCreated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}
	return total, errors.Join(errs...)
}
