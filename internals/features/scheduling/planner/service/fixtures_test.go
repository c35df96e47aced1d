package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classModel "kelasku_backend/internals/features/classes/model"
	curModel "kelasku_backend/internals/features/curriculum/model"
	"kelasku_backend/internals/helpers/dbtime"
	"kelasku_backend/internals/helpers/testutil"
)

// jauh sebelum tanggal mulai kelas di test → top-up horizon tidak menambah apa-apa
var earlyClock = dbtime.FixedClock{T: time.Date(2025, 12, 1, 8, 0, 0, 0, testutil.WIB)}

type lessonSeed struct {
	title    string
	meetings int
}

type blockSeed struct {
	name      string
	estimated *int
	lessons   []lessonSeed
}

type seededLevel struct {
	LevelID uuid.UUID
	Blocks  []curModel.BlockModel
	Lessons [][]curModel.LessonTemplateModel
}

func seedLevel(t *testing.T, db *gorm.DB, blocks ...blockSeed) seededLevel {
	t.Helper()
	lvl := curModel.LevelModel{LevelName: "Level 1", LevelOrderIndex: 1}
	require.NoError(t, db.Create(&lvl).Error)

	out := seededLevel{LevelID: lvl.LevelID}
	for i, bs := range blocks {
		b := curModel.BlockModel{
			BlockLevelID:           lvl.LevelID,
			BlockName:              bs.name,
			BlockOrderIndex:        i + 1,
			BlockEstimatedSessions: bs.estimated,
		}
		require.NoError(t, db.Create(&b).Error)

		var lessons []curModel.LessonTemplateModel
		for j, ls := range bs.lessons {
			l := curModel.LessonTemplateModel{
				LessonTemplateBlockID:               b.BlockID,
				LessonTemplateTitle:                 ls.title,
				LessonTemplateOrderIndex:            j + 1,
				LessonTemplateEstimatedMeetingCount: ls.meetings,
			}
			require.NoError(t, db.Create(&l).Error)
			lessons = append(lessons, l)
		}
		out.Blocks = append(out.Blocks, b)
		out.Lessons = append(out.Lessons, lessons)
	}
	return out
}

type classOpt func(*classModel.ClassModel)

func withEndDate(d time.Time) classOpt {
	return func(c *classModel.ClassModel) { c.ClassEndDate = &d }
}

func withStartDate(d time.Time) classOpt {
	return func(c *classModel.ClassModel) { c.ClassStartDate = &d }
}

func withDay(day string) classOpt {
	return func(c *classModel.ClassModel) { c.ClassScheduleDay = day }
}

func seedWeeklyClass(t *testing.T, db *gorm.DB, levelID *uuid.UUID, opts ...classOpt) classModel.ClassModel {
	t.Helper()
	start := testutil.Date(2026, time.March, 2) // Monday
	c := classModel.ClassModel{
		ClassName:         "Coding Kids A",
		ClassType:         classModel.ClassTypeWeekly,
		ClassLevelID:      levelID,
		ClassScheduleDay:  "MONDAY",
		ClassScheduleTime: dbtime.MustTod("16:00"),
		ClassMeetingLink:  "https://meet.example/a",
		ClassStartDate:    &start,
	}
	for _, o := range opts {
		o(&c)
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedEkskulPlan(t *testing.T, db *gorm.DB, active bool, meetings ...int) curModel.EkskulLessonPlanModel {
	t.Helper()
	plan := curModel.EkskulLessonPlanModel{EkskulLessonPlanName: "Robotik", EkskulLessonPlanIsActive: active}
	require.NoError(t, db.Create(&plan).Error)
	for i, m := range meetings {
		require.NoError(t, db.Create(&curModel.EkskulLessonModel{
			EkskulLessonPlanID:            plan.EkskulLessonPlanID,
			EkskulLessonTitle:             "Sesi",
			EkskulLessonOrderIndex:        i + 1,
			EkskulLessonEstimatedMeetings: m,
		}).Error)
	}
	return plan
}

func seedEkskulClass(t *testing.T, db *gorm.DB, planID *uuid.UUID, opts ...classOpt) classModel.ClassModel {
	t.Helper()
	start := testutil.Date(2026, time.March, 4) // Wednesday
	c := classModel.ClassModel{
		ClassName:         "Ekskul Robotik",
		ClassType:         classModel.ClassTypeEkskul,
		ClassEkskulPlanID: planID,
		ClassScheduleDay:  "Monday",
		ClassScheduleTime: dbtime.MustTod("15:30"),
		ClassMeetingLink:  "https://meet.example/ekskul",
		ClassStartDate:    &start,
	}
	for _, o := range opts {
		o(&c)
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func newTestService(t *testing.T, db *gorm.DB, clock dbtime.Clock) *Service {
	t.Helper()
	return New(db, nil, clock, testutil.Logger(t), Config{
		HorizonWeeks: 12,
		Concurrency:  4,
		Location:     testutil.WIB,
	})
}

func sessionsOf(t *testing.T, db *gorm.DB, classID uuid.UUID) []classModel.SessionModel {
	t.Helper()
	var rows []classModel.SessionModel
	require.NoError(t, db.Where("session_class_id = ?", classID).
		Order("session_date_time ASC").Find(&rows).Error)
	return rows
}

func classBlocksOf(t *testing.T, db *gorm.DB, classID uuid.UUID) []classModel.ClassBlockModel {
	t.Helper()
	var rows []classModel.ClassBlockModel
	require.NoError(t, db.Where("class_block_class_id = ?", classID).
		Order("class_block_start_date ASC").Find(&rows).Error)
	return rows
}

func classLessonsOf(t *testing.T, db *gorm.DB, classID uuid.UUID) []classModel.ClassLessonModel {
	t.Helper()
	var rows []classModel.ClassLessonModel
	require.NoError(t, db.Table("class_lessons").
		Joins("JOIN class_blocks ON class_blocks.class_block_id = class_lessons.class_lesson_class_block_id").
		Where("class_blocks.class_block_class_id = ?", classID).
		Order("class_blocks.class_block_start_date ASC, class_lessons.class_lesson_order_index ASC").
		Select("class_lessons.*").
		Find(&rows).Error)
	return rows
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func wib(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, testutil.WIB)
}

func intPtr(n int) *int { return &n }
