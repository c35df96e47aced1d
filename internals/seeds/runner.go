package seeds

import (
	"log"

	"gorm.io/gorm"

	curriculum "kelasku_backend/internals/seeds/curriculum"
)

func RunAllSeeds(db *gorm.DB) {
	//* Kurikulum (level → block → lesson template) + ekskul plan
	if err := curriculum.SeedCurriculumFromJSON(db, "internals/seeds/curriculum/data_curriculum.json"); err != nil {
		log.Fatalf("❌ Gagal seed kurikulum: %v", err)
	}
}
