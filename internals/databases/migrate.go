package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	classModel "kelasku_backend/internals/features/classes/model"
	curModel "kelasku_backend/internals/features/curriculum/model"
)

// Models: semua tabel yang dibaca/ditulis engine penjadwalan.
func Models() []any {
	return []any{
		&curModel.LevelModel{},
		&curModel.BlockModel{},
		&curModel.LessonTemplateModel{},
		&curModel.EkskulLessonPlanModel{},
		&curModel.EkskulLessonModel{},
		&classModel.ClassModel{},
		&classModel.ClassBlockModel{},
		&classModel.ClassLessonModel{},
		&classModel.SessionModel{},
		&classModel.ClassPlanningRunModel{},
	}
}

// ClassCreatedChannel: channel NOTIFY yang didengar listener scheduling
const ClassCreatedChannel = "class_created"

const classCreatedTriggerSQL = `
CREATE OR REPLACE FUNCTION notify_class_created() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + ClassCreatedChannel + `', NEW.class_id::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_class_created ON classes;
CREATE TRIGGER trg_class_created
	AFTER INSERT ON classes
	FOR EACH ROW EXECUTE FUNCTION notify_class_created();
`

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	// trigger hanya untuk postgres (sqlite di test tidak punya pg_notify)
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(classCreatedTriggerSQL).Error; err != nil {
			return fmt.Errorf("create class_created trigger: %w", err)
		}
	}
	log.Println("✅ AutoMigrate selesai.")
	return nil
}
