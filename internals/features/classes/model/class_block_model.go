// file: internals/features/classes/model/class_block_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassBlockStatus string

const (
	ClassBlockUpcoming  ClassBlockStatus = "UPCOMING"
	ClassBlockCurrent   ClassBlockStatus = "CURRENT"
	ClassBlockCompleted ClassBlockStatus = "COMPLETED"
)

/* =========================
   ClassBlock: satu per (kelas, block kurikulum)
   uq_class_blocks_class_block menjaga agar satu block tidak diinstansiasi dua kali
========================= */

type ClassBlockModel struct {
	ClassBlockID      uuid.UUID        `json:"class_block_id"       gorm:"column:class_block_id;type:uuid;primaryKey"`
	ClassBlockClassID uuid.UUID        `json:"class_block_class_id" gorm:"column:class_block_class_id;type:uuid;not null;uniqueIndex:uq_class_blocks_class_block,priority:1"`
	ClassBlockBlockID uuid.UUID        `json:"class_block_block_id" gorm:"column:class_block_block_id;type:uuid;not null;uniqueIndex:uq_class_blocks_class_block,priority:2"`
	ClassBlockStatus  ClassBlockStatus `json:"class_block_status"   gorm:"column:class_block_status;type:varchar(16);not null;default:'UPCOMING'"`

	ClassBlockStartDate       time.Time `json:"class_block_start_date"        gorm:"column:class_block_start_date;type:date;not null"`
	ClassBlockEndDate         time.Time `json:"class_block_end_date"          gorm:"column:class_block_end_date;type:date;not null"`
	ClassBlockPitchingDayDate time.Time `json:"class_block_pitching_day_date" gorm:"column:class_block_pitching_day_date;type:date;not null"`

	ClassBlockCreatedAt time.Time `json:"class_block_created_at" gorm:"column:class_block_created_at;autoCreateTime"`
	ClassBlockUpdatedAt time.Time `json:"class_block_updated_at" gorm:"column:class_block_updated_at;autoUpdateTime"`
}

func (ClassBlockModel) TableName() string { return "class_blocks" }

func (m *ClassBlockModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassBlockID == uuid.Nil {
		m.ClassBlockID = uuid.New()
	}
	return nil
}

/* =========================
   ClassLesson: unit pertemuan hasil ekspansi lesson template
========================= */

type ClassLessonModel struct {
	ClassLessonID               uuid.UUID `json:"class_lesson_id"                 gorm:"column:class_lesson_id;type:uuid;primaryKey"`
	ClassLessonClassBlockID     uuid.UUID `json:"class_lesson_class_block_id"     gorm:"column:class_lesson_class_block_id;type:uuid;not null;index"`
	ClassLessonLessonTemplateID uuid.UUID `json:"class_lesson_lesson_template_id" gorm:"column:class_lesson_lesson_template_id;type:uuid;not null;index"`

	ClassLessonTitle      string `json:"class_lesson_title"       gorm:"column:class_lesson_title;type:varchar(240);not null"`
	ClassLessonOrderIndex int    `json:"class_lesson_order_index" gorm:"column:class_lesson_order_index;not null"`

	ClassLessonSummary    *string `json:"class_lesson_summary,omitempty"     gorm:"column:class_lesson_summary;type:text"`
	ClassLessonSlideURL   *string `json:"class_lesson_slide_url,omitempty"   gorm:"column:class_lesson_slide_url;type:text"`
	ClassLessonExampleURL *string `json:"class_lesson_example_url,omitempty" gorm:"column:class_lesson_example_url;type:text"`

	// diisi rebalancer
	ClassLessonSessionID *uuid.UUID `json:"class_lesson_session_id,omitempty" gorm:"column:class_lesson_session_id;type:uuid;index"`
	ClassLessonUnlockAt  *time.Time `json:"class_lesson_unlock_at,omitempty"  gorm:"column:class_lesson_unlock_at"`

	ClassLessonCreatedAt time.Time `json:"class_lesson_created_at" gorm:"column:class_lesson_created_at;autoCreateTime"`
	ClassLessonUpdatedAt time.Time `json:"class_lesson_updated_at" gorm:"column:class_lesson_updated_at;autoUpdateTime"`
}

func (ClassLessonModel) TableName() string { return "class_lessons" }

func (m *ClassLessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassLessonID == uuid.Nil {
		m.ClassLessonID = uuid.New()
	}
	return nil
}
