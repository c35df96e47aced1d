// file: internals/features/curriculum/model/ekskul_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Ekskul: rencana pelajaran datar (tanpa level/block)
========================= */

type EkskulLessonPlanModel struct {
	EkskulLessonPlanID       uuid.UUID `json:"ekskul_lesson_plan_id"        gorm:"column:ekskul_lesson_plan_id;type:uuid;primaryKey"`
	EkskulLessonPlanName     string    `json:"ekskul_lesson_plan_name"      gorm:"column:ekskul_lesson_plan_name;type:varchar(160);not null"`
	EkskulLessonPlanIsActive bool      `json:"ekskul_lesson_plan_is_active" gorm:"column:ekskul_lesson_plan_is_active;not null"`

	EkskulLessonPlanCreatedAt time.Time      `json:"ekskul_lesson_plan_created_at"           gorm:"column:ekskul_lesson_plan_created_at;autoCreateTime"`
	EkskulLessonPlanUpdatedAt time.Time      `json:"ekskul_lesson_plan_updated_at"           gorm:"column:ekskul_lesson_plan_updated_at;autoUpdateTime"`
	EkskulLessonPlanDeletedAt gorm.DeletedAt `json:"ekskul_lesson_plan_deleted_at,omitempty" gorm:"column:ekskul_lesson_plan_deleted_at;index"`
}

func (EkskulLessonPlanModel) TableName() string { return "ekskul_lesson_plans" }

func (m *EkskulLessonPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.EkskulLessonPlanID == uuid.Nil {
		m.EkskulLessonPlanID = uuid.New()
	}
	return nil
}

type EkskulLessonModel struct {
	EkskulLessonID         uuid.UUID `json:"ekskul_lesson_id"          gorm:"column:ekskul_lesson_id;type:uuid;primaryKey"`
	EkskulLessonPlanID     uuid.UUID `json:"ekskul_lesson_plan_id"     gorm:"column:ekskul_lesson_plan_id;type:uuid;not null;index"`
	EkskulLessonTitle      string    `json:"ekskul_lesson_title"       gorm:"column:ekskul_lesson_title;type:varchar(200);not null"`
	EkskulLessonOrderIndex int       `json:"ekskul_lesson_order_index" gorm:"column:ekskul_lesson_order_index;not null;default:0"`

	EkskulLessonEstimatedMeetings int `json:"ekskul_lesson_estimated_meetings" gorm:"column:ekskul_lesson_estimated_meetings;not null;default:1"`

	EkskulLessonCreatedAt time.Time      `json:"ekskul_lesson_created_at"           gorm:"column:ekskul_lesson_created_at;autoCreateTime"`
	EkskulLessonUpdatedAt time.Time      `json:"ekskul_lesson_updated_at"           gorm:"column:ekskul_lesson_updated_at;autoUpdateTime"`
	EkskulLessonDeletedAt gorm.DeletedAt `json:"ekskul_lesson_deleted_at,omitempty" gorm:"column:ekskul_lesson_deleted_at;index"`
}

func (EkskulLessonModel) TableName() string { return "ekskul_lessons" }

func (m *EkskulLessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.EkskulLessonID == uuid.Nil {
		m.EkskulLessonID = uuid.New()
	}
	return nil
}

func (m EkskulLessonModel) MeetingCount() int {
	if m.EkskulLessonEstimatedMeetings < 1 {
		return 1
	}
	return m.EkskulLessonEstimatedMeetings
}
