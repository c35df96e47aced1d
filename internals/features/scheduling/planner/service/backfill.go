// file: internals/features/scheduling/planner/service/backfill.go
package service

import (
	"github.com/google/uuid"

	"kelasku_backend/internals/features/scheduling/planner/repository"
)

// Target: posisi kurikulum yang dianggap "sedang berjalan".
// LessonID mengalahkan BlockID; keduanya nil → mulai dari awal.
type Target struct {
	BlockID  *uuid.UUID
	LessonID *uuid.UUID
}

func (t Target) empty() bool {
	return t.BlockID == nil && t.LessonID == nil
}

// Backfill: jumlah pertemuan (Σ max(1, meeting count)) sebelum target.
// found=false kalau target diberikan tapi tidak ada di kurikulum; count=0 dalam kasus itu.
func Backfill(blocks []repository.CurriculumBlock, target Target) (count int, found bool) {
	if target.empty() {
		return 0, true
	}

	past := 0
	for _, b := range blocks {
		if target.LessonID == nil && b.Block.BlockID == *target.BlockID {
			return past, true
		}
		for _, l := range b.Lessons {
			if target.LessonID != nil && l.LessonTemplateID == *target.LessonID {
				return past, true
			}
			past += l.MeetingCount()
		}
	}
	return 0, false
}
