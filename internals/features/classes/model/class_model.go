// file: internals/features/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/helpers/dbtime"
)

/* =========================
   Enum
========================= */

type ClassType string

const (
	ClassTypeWeekly ClassType = "WEEKLY"
	ClassTypeEkskul ClassType = "EKSKUL"
)

/* =========================
   Model: ClassModel
   Dibuat oleh flow pembuatan kelas; engine hanya membaca & kadang memperpanjang end_date.
========================= */

type ClassModel struct {
	ClassID   uuid.UUID `json:"class_id"   gorm:"column:class_id;type:uuid;primaryKey"`
	ClassName string    `json:"class_name" gorm:"column:class_name;type:varchar(200);not null"`
	ClassType ClassType `json:"class_type" gorm:"column:class_type;type:varchar(16);not null"`

	// WEEKLY → level, EKSKUL → rencana pelajaran
	ClassLevelID      *uuid.UUID `json:"class_level_id,omitempty"       gorm:"column:class_level_id;type:uuid;index"`
	ClassEkskulPlanID *uuid.UUID `json:"class_ekskul_plan_id,omitempty" gorm:"column:class_ekskul_plan_id;type:uuid;index"`

	// Pola mingguan
	ClassScheduleDay  string     `json:"class_schedule_day"  gorm:"column:class_schedule_day;type:varchar(32);not null"`
	ClassScheduleTime dbtime.Tod `json:"class_schedule_time" gorm:"column:class_schedule_time;type:time;not null"`

	ClassMeetingLink string `json:"class_meeting_link" gorm:"column:class_meeting_link;type:text;not null;default:''"`

	// Batas berlaku
	ClassStartDate *time.Time `json:"class_start_date,omitempty" gorm:"column:class_start_date;type:date"`
	ClassEndDate   *time.Time `json:"class_end_date,omitempty"   gorm:"column:class_end_date;type:date"`

	ClassCreatedAt time.Time      `json:"class_created_at"           gorm:"column:class_created_at;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at"           gorm:"column:class_updated_at;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
