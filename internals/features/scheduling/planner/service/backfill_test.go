package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	curModel "kelasku_backend/internals/features/curriculum/model"
	"kelasku_backend/internals/features/scheduling/planner/repository"
)

func lessonTpl(blockID uuid.UUID, title string, meetings int) curModel.LessonTemplateModel {
	return curModel.LessonTemplateModel{
		LessonTemplateID:                    uuid.New(),
		LessonTemplateBlockID:               blockID,
		LessonTemplateTitle:                 title,
		LessonTemplateEstimatedMeetingCount: meetings,
	}
}

func curriculumBlock(order int, lessons ...curModel.LessonTemplateModel) repository.CurriculumBlock {
	id := uuid.New()
	for i := range lessons {
		lessons[i].LessonTemplateBlockID = id
		lessons[i].LessonTemplateOrderIndex = i + 1
	}
	return repository.CurriculumBlock{
		Block:   curModel.BlockModel{BlockID: id, BlockOrderIndex: order, BlockName: "Block"},
		Lessons: lessons,
	}
}

func TestBackfill(t *testing.T) {
	b1 := curriculumBlock(1, lessonTpl(uuid.Nil, "L1", 2), lessonTpl(uuid.Nil, "L2", 1))
	b2 := curriculumBlock(2, lessonTpl(uuid.Nil, "L3", 0), lessonTpl(uuid.Nil, "L4", 3))
	blocks := []repository.CurriculumBlock{b1, b2}

	ptr := func(id uuid.UUID) *uuid.UUID { return &id }
	missing := uuid.New()

	cases := []struct {
		name   string
		target Target
		want   int
		found  bool
	}{
		{"no target", Target{}, 0, true},
		{"first block", Target{BlockID: ptr(b1.Block.BlockID)}, 0, true},
		{"second block", Target{BlockID: ptr(b2.Block.BlockID)}, 3, true},
		{"first lesson", Target{LessonID: ptr(b1.Lessons[0].LessonTemplateID)}, 0, true},
		{"second lesson", Target{LessonID: ptr(b1.Lessons[1].LessonTemplateID)}, 2, true},
		// L3 punya meeting count 0 → dihitung 1
		{"lesson after zero-count lesson", Target{LessonID: ptr(b2.Lessons[1].LessonTemplateID)}, 4, true},
		{"lesson wins over block", Target{BlockID: ptr(b1.Block.BlockID), LessonID: ptr(b2.Lessons[1].LessonTemplateID)}, 4, true},
		{"unknown lesson", Target{LessonID: ptr(missing)}, 0, false},
		{"unknown block", Target{BlockID: ptr(missing)}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := Backfill(blocks, tc.target)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.found, found)
		})
	}
}

// Total pertemuan = backfill sebelum lesson + sisa pertemuan mulai lesson tersebut.
func TestBackfillConservesMeetings(t *testing.T) {
	blocks := []repository.CurriculumBlock{
		curriculumBlock(1, lessonTpl(uuid.Nil, "A", 2), lessonTpl(uuid.Nil, "B", 1)),
		curriculumBlock(2, lessonTpl(uuid.Nil, "C", 3)),
		curriculumBlock(3, lessonTpl(uuid.Nil, "D", 1), lessonTpl(uuid.Nil, "E", 2)),
	}
	total := 0
	var all []curModel.LessonTemplateModel
	for _, b := range blocks {
		for _, l := range b.Lessons {
			total += l.MeetingCount()
			all = append(all, l)
		}
	}

	for i, l := range all {
		id := l.LessonTemplateID
		past, found := Backfill(blocks, Target{LessonID: &id})
		assert.True(t, found)

		rest := 0
		for _, r := range all[i:] {
			rest += r.MeetingCount()
		}
		assert.Equal(t, total, past+rest, "lesson %s", l.LessonTemplateTitle)
	}
}
