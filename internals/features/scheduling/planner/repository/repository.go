// file: internals/features/scheduling/planner/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "kelasku_backend/internals/features/classes/model"
	curModel "kelasku_backend/internals/features/curriculum/model"
)

const lockNamespace = "class_plan"

// CurriculumBlock: block kurikulum beserta lesson template-nya (urut order_index).
type CurriculumBlock struct {
	Block   curModel.BlockModel
	Lessons []curModel.LessonTemplateModel
}

// Repository: semua akses DB untuk planner.
// Selalu pakai handle dari Transaction() ketika berada di dalam pipeline planning.
type Repository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Transaction menjalankan fn dalam satu transaksi; repo yang diberikan ke fn terikat ke tx.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{DB: tx})
	})
}

func (r *Repository) db(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx)
}

// LockClass: pg_advisory_xact_lock per kelas, lepas otomatis saat commit/rollback.
// Dialek lain (sqlite di test) tidak punya advisory lock → no-op.
func (r *Repository) LockClass(ctx context.Context, classID uuid.UUID) error {
	if classID == uuid.Nil || r.DB.Dialector.Name() != "postgres" {
		return nil
	}
	if err := r.db(ctx).Exec("SELECT pg_advisory_xact_lock(?)", AdvisoryKey(lockNamespace, classID)).Error; err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

func AdvisoryKey(namespace string, id uuid.UUID) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(namespace))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(id.String()))
	return int64(h.Sum64())
}

/* =========================
   Kelas
========================= */

// GetClass mengembalikan gorm.ErrRecordNotFound (terbungkus) kalau tidak ada.
func (r *Repository) GetClass(ctx context.Context, classID uuid.UUID) (*classModel.ClassModel, error) {
	var c classModel.ClassModel
	if err := r.db(ctx).Where("class_id = ?", classID).Take(&c).Error; err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	return &c, nil
}

func (r *Repository) UpdateClassEndDate(ctx context.Context, classID uuid.UUID, end time.Time) error {
	res := r.db(ctx).Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Update("class_end_date", end)
	if res.Error != nil {
		return fmt.Errorf("update class end date: %w", res.Error)
	}
	return nil
}

// ListPlannedWeeklyClassIDs: kelas WEEKLY yang sudah punya class_blocks (kandidat top-up horizon).
func (r *Repository) ListPlannedWeeklyClassIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db(ctx).Model(&classModel.ClassModel{}).
		Where("class_type = ?", classModel.ClassTypeWeekly).
		Where("EXISTS (SELECT 1 FROM class_blocks cb WHERE cb.class_block_class_id = classes.class_id)").
		Order("class_id").
		Pluck("class_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list planned classes: %w", err)
	}
	return ids, nil
}

/* =========================
   Kurikulum
========================= */

// ListCurriculumBlocks: block per level + lesson template, urut order_index lalu id.
func (r *Repository) ListCurriculumBlocks(ctx context.Context, levelID uuid.UUID) ([]CurriculumBlock, error) {
	var blocks []curModel.BlockModel
	if err := r.db(ctx).
		Where("block_level_id = ?", levelID).
		Order("block_order_index ASC, block_id ASC").
		Find(&blocks).Error; err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.BlockID)
	}
	var lessons []curModel.LessonTemplateModel
	if err := r.db(ctx).
		Where("lesson_template_block_id IN ?", ids).
		Order("lesson_template_order_index ASC, lesson_template_id ASC").
		Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("list lesson templates: %w", err)
	}

	byBlock := make(map[uuid.UUID][]curModel.LessonTemplateModel, len(blocks))
	for _, l := range lessons {
		byBlock[l.LessonTemplateBlockID] = append(byBlock[l.LessonTemplateBlockID], l)
	}
	out := make([]CurriculumBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, CurriculumBlock{Block: b, Lessons: byBlock[b.BlockID]})
	}
	return out, nil
}

// GetEkskulPlan: plan aktif + lesson-nya. Plan tidak aktif dianggap tidak ada.
func (r *Repository) GetEkskulPlan(ctx context.Context, planID uuid.UUID) (*curModel.EkskulLessonPlanModel, []curModel.EkskulLessonModel, error) {
	var plan curModel.EkskulLessonPlanModel
	err := r.db(ctx).
		Where("ekskul_lesson_plan_id = ? AND ekskul_lesson_plan_is_active = ?", planID, true).
		Take(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get ekskul plan: %w", err)
	}

	var lessons []curModel.EkskulLessonModel
	if err := r.db(ctx).
		Where("ekskul_lesson_plan_id = ?", planID).
		Order("ekskul_lesson_order_index ASC, ekskul_lesson_id ASC").
		Find(&lessons).Error; err != nil {
		return nil, nil, fmt.Errorf("list ekskul lessons: %w", err)
	}
	return &plan, lessons, nil
}

/* =========================
   Class blocks & lessons
========================= */

func (r *Repository) CountClassBlocks(ctx context.Context, classID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db(ctx).Model(&classModel.ClassBlockModel{}).
		Where("class_block_class_id = ?", classID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count class blocks: %w", err)
	}
	return n, nil
}

func (r *Repository) CreateClassBlock(ctx context.Context, m *classModel.ClassBlockModel) error {
	if err := r.db(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create class block: %w", err)
	}
	return nil
}

func (r *Repository) CreateClassLessons(ctx context.Context, rows []classModel.ClassLessonModel) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db(ctx).CreateInBatches(&rows, 200).Error; err != nil {
		return fmt.Errorf("create class lessons: %w", err)
	}
	return nil
}

// LatestClassBlockEnd: tanggal akhir kurikulum kelas (nil kalau belum di-plan).
func (r *Repository) LatestClassBlockEnd(ctx context.Context, classID uuid.UUID) (*time.Time, error) {
	var cb classModel.ClassBlockModel
	err := r.db(ctx).
		Where("class_block_class_id = ?", classID).
		Order("class_block_end_date DESC").
		Take(&cb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest class block: %w", err)
	}
	end := cb.ClassBlockEndDate
	return &end, nil
}

/* =========================
   Sessions
========================= */

func (r *Repository) CountSessions(ctx context.Context, classID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db(ctx).Model(&classModel.SessionModel{}).
		Where("session_class_id = ?", classID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// CreateSessions: ON CONFLICT (class_id, date_time) DO NOTHING.
// Mengembalikan jumlah baris yang benar-benar masuk.
func (r *Repository) CreateSessions(ctx context.Context, rows []classModel.SessionModel) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := r.db(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_class_id"}, {Name: "session_date_time"}},
			DoNothing: true,
		}).
		CreateInBatches(&rows, 200)
	if res.Error != nil {
		return 0, fmt.Errorf("create sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// LatestSession: nil kalau kelas belum punya sesi.
func (r *Repository) LatestSession(ctx context.Context, classID uuid.UUID) (*classModel.SessionModel, error) {
	var s classModel.SessionModel
	err := r.db(ctx).
		Where("session_class_id = ?", classID).
		Order("session_date_time DESC").
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest session: %w", err)
	}
	return &s, nil
}

/* =========================
   Audit
========================= */

func (r *Repository) InsertPlanningRun(ctx context.Context, m *classModel.ClassPlanningRunModel) error {
	if err := r.db(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert planning run: %w", err)
	}
	return nil
}
