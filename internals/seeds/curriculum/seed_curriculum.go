package curriculum

import (
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	curModel "kelasku_backend/internals/features/curriculum/model"
)

type LessonSeed struct {
	Title                 string `json:"title"`
	EstimatedMeetingCount int    `json:"estimated_meeting_count"`
}

type BlockSeed struct {
	BlockName         string       `json:"block_name"`
	BlockOrderIndex   int          `json:"block_order_index"`
	EstimatedSessions *int         `json:"estimated_sessions"`
	Lessons           []LessonSeed `json:"lessons"`
}

type LevelSeed struct {
	LevelName       string      `json:"level_name"`
	LevelOrderIndex int         `json:"level_order_index"`
	Blocks          []BlockSeed `json:"blocks"`
}

type EkskulLessonSeed struct {
	Title             string `json:"title"`
	EstimatedMeetings int    `json:"estimated_meetings"`
}

type EkskulPlanSeed struct {
	Name     string             `json:"name"`
	IsActive bool               `json:"is_active"`
	Lessons  []EkskulLessonSeed `json:"lessons"`
}

type CurriculumSeed struct {
	Levels      []LevelSeed      `json:"levels"`
	EkskulPlans []EkskulPlanSeed `json:"ekskul_plans"`
}

// SeedCurriculumFromJSON: level/plan yang namanya sudah ada dilewati, jadi aman dijalankan ulang.
func SeedCurriculumFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file kurikulum:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var seed CurriculumSeed
	if err := sonic.Unmarshal(file, &seed); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return SeedCurriculum(db, seed)
}

func SeedCurriculum(db *gorm.DB, seed CurriculumSeed) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, lv := range seed.Levels {
			var n int64
			if err := tx.Model(&curModel.LevelModel{}).Where("level_name = ?", lv.LevelName).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				log.Printf("ℹ️ Level '%s' sudah ada, dilewati.", lv.LevelName)
				continue
			}
			if err := seedLevel(tx, lv); err != nil {
				return fmt.Errorf("level %q: %w", lv.LevelName, err)
			}
			log.Printf("✅ Berhasil insert level '%s' (%d block)", lv.LevelName, len(lv.Blocks))
		}

		for _, p := range seed.EkskulPlans {
			var n int64
			if err := tx.Model(&curModel.EkskulLessonPlanModel{}).Where("ekskul_lesson_plan_name = ?", p.Name).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				log.Printf("ℹ️ Ekskul plan '%s' sudah ada, dilewati.", p.Name)
				continue
			}
			if err := seedEkskulPlan(tx, p); err != nil {
				return fmt.Errorf("ekskul plan %q: %w", p.Name, err)
			}
			log.Printf("✅ Berhasil insert ekskul plan '%s'", p.Name)
		}
		return nil
	})
}

func seedLevel(tx *gorm.DB, lv LevelSeed) error {
	level := curModel.LevelModel{LevelName: lv.LevelName, LevelOrderIndex: lv.LevelOrderIndex}
	if err := tx.Create(&level).Error; err != nil {
		return err
	}
	for _, bs := range lv.Blocks {
		block := curModel.BlockModel{
			BlockLevelID:           level.LevelID,
			BlockName:              bs.BlockName,
			BlockOrderIndex:        bs.BlockOrderIndex,
			BlockEstimatedSessions: bs.EstimatedSessions,
		}
		if err := tx.Create(&block).Error; err != nil {
			return err
		}
		if len(bs.Lessons) == 0 {
			continue
		}
		rows := make([]curModel.LessonTemplateModel, 0, len(bs.Lessons))
		for i, ls := range bs.Lessons {
			rows = append(rows, curModel.LessonTemplateModel{
				LessonTemplateBlockID:               block.BlockID,
				LessonTemplateTitle:                 ls.Title,
				LessonTemplateOrderIndex:            i + 1,
				LessonTemplateEstimatedMeetingCount: ls.EstimatedMeetingCount,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedEkskulPlan(tx *gorm.DB, p EkskulPlanSeed) error {
	plan := curModel.EkskulLessonPlanModel{EkskulLessonPlanName: p.Name, EkskulLessonPlanIsActive: p.IsActive}
	if err := tx.Create(&plan).Error; err != nil {
		return err
	}
	if len(p.Lessons) == 0 {
		return nil
	}
	rows := make([]curModel.EkskulLessonModel, 0, len(p.Lessons))
	for i, l := range p.Lessons {
		rows = append(rows, curModel.EkskulLessonModel{
			EkskulLessonPlanID:            plan.EkskulLessonPlanID,
			EkskulLessonTitle:             l.Title,
			EkskulLessonOrderIndex:        i + 1,
			EkskulLessonEstimatedMeetings: l.EstimatedMeetings,
		})
	}
	return tx.Create(&rows).Error
}
