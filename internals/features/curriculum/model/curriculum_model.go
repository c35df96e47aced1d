// file: internals/features/curriculum/model/curriculum_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Level → Block → LessonTemplate
   (reference data, dikelola lewat admin CRUD)
========================= */

type LevelModel struct {
	LevelID         uuid.UUID `json:"level_id"          gorm:"column:level_id;type:uuid;primaryKey"`
	LevelName       string    `json:"level_name"        gorm:"column:level_name;type:varchar(160);not null"`
	LevelOrderIndex int       `json:"level_order_index" gorm:"column:level_order_index;not null;default:0"`

	LevelCreatedAt time.Time      `json:"level_created_at"           gorm:"column:level_created_at;autoCreateTime"`
	LevelUpdatedAt time.Time      `json:"level_updated_at"           gorm:"column:level_updated_at;autoUpdateTime"`
	LevelDeletedAt gorm.DeletedAt `json:"level_deleted_at,omitempty" gorm:"column:level_deleted_at;index"`
}

func (LevelModel) TableName() string { return "levels" }

func (m *LevelModel) BeforeCreate(tx *gorm.DB) error {
	if m.LevelID == uuid.Nil {
		m.LevelID = uuid.New()
	}
	return nil
}

type BlockModel struct {
	BlockID         uuid.UUID `json:"block_id"          gorm:"column:block_id;type:uuid;primaryKey"`
	BlockLevelID    uuid.UUID `json:"block_level_id"    gorm:"column:block_level_id;type:uuid;not null;index"`
	BlockName       string    `json:"block_name"        gorm:"column:block_name;type:varchar(160);not null"`
	BlockOrderIndex int       `json:"block_order_index" gorm:"column:block_order_index;not null;default:0"`

	// NULL → diturunkan dari jumlah lesson template
	BlockEstimatedSessions *int `json:"block_estimated_sessions,omitempty" gorm:"column:block_estimated_sessions"`

	BlockCreatedAt time.Time      `json:"block_created_at"           gorm:"column:block_created_at;autoCreateTime"`
	BlockUpdatedAt time.Time      `json:"block_updated_at"           gorm:"column:block_updated_at;autoUpdateTime"`
	BlockDeletedAt gorm.DeletedAt `json:"block_deleted_at,omitempty" gorm:"column:block_deleted_at;index"`
}

func (BlockModel) TableName() string { return "blocks" }

func (m *BlockModel) BeforeCreate(tx *gorm.DB) error {
	if m.BlockID == uuid.Nil {
		m.BlockID = uuid.New()
	}
	return nil
}

type LessonTemplateModel struct {
	LessonTemplateID         uuid.UUID `json:"lesson_template_id"          gorm:"column:lesson_template_id;type:uuid;primaryKey"`
	LessonTemplateBlockID    uuid.UUID `json:"lesson_template_block_id"    gorm:"column:lesson_template_block_id;type:uuid;not null;index"`
	LessonTemplateTitle      string    `json:"lesson_template_title"       gorm:"column:lesson_template_title;type:varchar(200);not null"`
	LessonTemplateOrderIndex int       `json:"lesson_template_order_index" gorm:"column:lesson_template_order_index;not null;default:0"`

	// jumlah pertemuan yang dibutuhkan satu lesson (>= 1)
	LessonTemplateEstimatedMeetingCount int `json:"lesson_template_estimated_meeting_count" gorm:"column:lesson_template_estimated_meeting_count;not null;default:1"`

	LessonTemplateSummary    *string `json:"lesson_template_summary,omitempty"     gorm:"column:lesson_template_summary;type:text"`
	LessonTemplateSlideURL   *string `json:"lesson_template_slide_url,omitempty"   gorm:"column:lesson_template_slide_url;type:text"`
	LessonTemplateExampleURL *string `json:"lesson_template_example_url,omitempty" gorm:"column:lesson_template_example_url;type:text"`

	LessonTemplateCreatedAt time.Time      `json:"lesson_template_created_at"           gorm:"column:lesson_template_created_at;autoCreateTime"`
	LessonTemplateUpdatedAt time.Time      `json:"lesson_template_updated_at"           gorm:"column:lesson_template_updated_at;autoUpdateTime"`
	LessonTemplateDeletedAt gorm.DeletedAt `json:"lesson_template_deleted_at,omitempty" gorm:"column:lesson_template_deleted_at;index"`
}

func (LessonTemplateModel) TableName() string { return "lesson_templates" }

func (m *LessonTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonTemplateID == uuid.Nil {
		m.LessonTemplateID = uuid.New()
	}
	return nil
}

// MeetingCount: jumlah pertemuan efektif, minimal 1.
func (m LessonTemplateModel) MeetingCount() int {
	if m.LessonTemplateEstimatedMeetingCount < 1 {
		return 1
	}
	return m.LessonTemplateEstimatedMeetingCount
}
