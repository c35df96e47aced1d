// file: internals/features/scheduling/planner/service/horizon.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/features/scheduling/planner/repository"
	"kelasku_backend/internals/features/scheduling/rebalancer"
	"kelasku_backend/internals/features/scheduling/weekday"
	"kelasku_backend/internals/helpers/dbtime"
)

// TopUpHorizon memastikan sesi tersedia sampai hari ini + HorizonWeeks.
// Hanya menambah tanggal setelah sesi terakhir; aman dipanggil berulang.
func (s *Service) TopUpHorizon(ctx context.Context, classID uuid.UUID) (HorizonResult, error) {
	var hr HorizonResult
	err := s.withClass(ctx, classID, func(tx *repository.Repository, c *classModel.ClassModel) error {
		var err error
		hr, err = s.topUp(ctx, tx, c)
		return err
	})
	return hr, err
}

func (s *Service) topUp(ctx context.Context, tx *repository.Repository, c *classModel.ClassModel) (HorizonResult, error) {
	var hr HorizonResult
	if c.ClassType != classModel.ClassTypeWeekly {
		return hr, nil
	}

	curriculumEnd, err := tx.LatestClassBlockEnd(ctx, c.ClassID)
	if err != nil {
		return hr, err
	}
	if curriculumEnd == nil {
		// belum di-plan
		return hr, nil
	}

	// end_date hanya diperpanjang, tidak pernah dimundurkan; NULL = tanpa batas
	if c.ClassEndDate != nil && dateBefore(*c.ClassEndDate, *curriculumEnd) {
		end := dbtime.CivilDate(*curriculumEnd, time.UTC)
		if err := tx.UpdateClassEndDate(ctx, c.ClassID, end); err != nil {
			return hr, err
		}
		c.ClassEndDate = &end
		hr.EndDateExtended = true
	}

	if s.Cfg.HorizonWeeks <= 0 {
		return hr, nil
	}
	day, ok := weekday.Normalize(c.ClassScheduleDay)
	if !ok {
		s.Log.Warn("horizon skipped: invalid schedule day",
			"class_id", c.ClassID.String(), "schedule_day", c.ClassScheduleDay)
		return hr, nil
	}

	loc := s.Cfg.Location
	today := dbtime.DateOf(s.Clock.Now(), loc)
	horizonEnd := dbtime.AddWeeks(today, s.Cfg.HorizonWeeks)
	// kebijakan: horizon tidak melewati class_end_date (sudah diperpanjang ke akhir kurikulum saat plan)
	if c.ClassEndDate != nil {
		if end := dbtime.CivilDate(*c.ClassEndDate, loc); end.Before(horizonEnd) {
			horizonEnd = end
		}
	}

	from := today
	latest, err := tx.LatestSession(ctx, c.ClassID)
	if err != nil {
		return hr, err
	}
	if latest != nil {
		from = dbtime.DateOf(latest.SessionDateTime, loc).AddDate(0, 0, 1)
	}
	if from.After(horizonEnd) {
		return hr, nil
	}

	sessions, err := GenerateSessions(GenerateSessionsInput{
		ClassID:          c.ClassID,
		StartDate:        from,
		EndDate:          horizonEnd,
		Day:              day,
		Time:             c.ClassScheduleTime,
		Location:         loc,
		ClassMeetingLink: c.ClassMeetingLink,
	})
	if err != nil {
		return hr, err
	}
	created, err := tx.CreateSessions(ctx, sessions)
	if err != nil {
		return hr, err
	}
	hr.SessionsCreated = int(created)

	if created > 0 {
		if _, err := rebalancer.ReassignLessonsToSessions(ctx, tx.DB, c.ClassID); err != nil {
			return hr, err
		}
		s.Log.Info("horizon topped up",
			"class_id", c.ClassID.String(),
			"sessions_created", created,
			"horizon_end", dbtime.FormatDate(horizonEnd))
	}
	return hr, nil
}

// dateBefore membandingkan tanggal sipil (jam & zona diabaikan).
func dateBefore(a, b time.Time) bool {
	return dbtime.CivilDate(a, time.UTC).Before(dbtime.CivilDate(b, time.UTC))
}
