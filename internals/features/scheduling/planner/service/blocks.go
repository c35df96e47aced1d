// file: internals/features/scheduling/planner/service/blocks.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	classModel "kelasku_backend/internals/features/classes/model"
	curModel "kelasku_backend/internals/features/curriculum/model"
	"kelasku_backend/internals/features/scheduling/planner/repository"
	"kelasku_backend/internals/helpers/dbtime"
)

// BlockPlan: satu class_block beserta lesson hasil ekspansinya.
type BlockPlan struct {
	ClassBlock classModel.ClassBlockModel
	Lessons    []classModel.ClassLessonModel
	// jumlah pertemuan yang dialokasikan ke block ini
	SessionsRequired int
}

// sessionsRequiredFor: estimated_sessions → Σ pertemuan lesson template → 1.
// Fallback kedua harus sama dengan jumlah class_lesson hasil ExpandLessons.
func sessionsRequiredFor(b repository.CurriculumBlock) int {
	if b.Block.BlockEstimatedSessions != nil && *b.Block.BlockEstimatedSessions > 0 {
		return *b.Block.BlockEstimatedSessions
	}
	total := 0
	for _, tpl := range b.Lessons {
		total += tpl.MeetingCount()
	}
	if total > 0 {
		return total
	}
	return 1
}

// blockStatusFor membandingkan rentang indeks sesi [acc, acc+required) dengan past.
// Rentang yang mulai tepat di batas (acc == past) dianggap CURRENT: kelas akan memulai block ini.
func blockStatusFor(acc, required, past int) classModel.ClassBlockStatus {
	switch {
	case acc+required <= past:
		return classModel.ClassBlockCompleted
	case acc > past:
		return classModel.ClassBlockUpcoming
	default:
		return classModel.ClassBlockCurrent
	}
}

// weeklyDates: n tanggal berurutan berjarak 7 hari mulai dari start.
func weeklyDates(start time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, dbtime.AddWeeks(start, i))
	}
	return out
}

// PlanBlocks menyusun class_blocks dari kurikulum (belum disimpan).
// start = tanggal sesi pertama yang sudah di-backdate & sejajar hari jadwal.
func PlanBlocks(classID uuid.UUID, blocks []repository.CurriculumBlock, start time.Time, past int) []BlockPlan {
	plans := make([]BlockPlan, 0, len(blocks))
	current := start
	acc := 0

	for _, b := range blocks {
		required := sessionsRequiredFor(b)
		dates := weeklyDates(current, required)
		first, last := dates[0], dates[len(dates)-1]

		cb := classModel.ClassBlockModel{
			ClassBlockID:              uuid.New(),
			ClassBlockClassID:         classID,
			ClassBlockBlockID:         b.Block.BlockID,
			ClassBlockStatus:          blockStatusFor(acc, required, past),
			ClassBlockStartDate:       dbtime.CivilDate(first, time.UTC),
			ClassBlockEndDate:         dbtime.CivilDate(last, time.UTC),
			ClassBlockPitchingDayDate: dbtime.CivilDate(last, time.UTC),
		}

		plans = append(plans, BlockPlan{
			ClassBlock:       cb,
			Lessons:          ExpandLessons(cb.ClassBlockID, b.Lessons),
			SessionsRequired: required,
		})

		current = dbtime.AddWeeks(last, 1)
		acc += required
	}
	return plans
}

// ExpandLessons: satu class_lesson per pertemuan; judul "(Part N)" bila lebih dari satu.
// order_index lokal per block, mulai 1.
func ExpandLessons(classBlockID uuid.UUID, templates []curModel.LessonTemplateModel) []classModel.ClassLessonModel {
	var out []classModel.ClassLessonModel
	order := 0
	for _, tpl := range templates {
		n := tpl.MeetingCount()
		for part := 1; part <= n; part++ {
			order++
			title := tpl.LessonTemplateTitle
			if n > 1 {
				title = fmt.Sprintf("%s (Part %d)", tpl.LessonTemplateTitle, part)
			}
			out = append(out, classModel.ClassLessonModel{
				ClassLessonID:               uuid.New(),
				ClassLessonClassBlockID:     classBlockID,
				ClassLessonLessonTemplateID: tpl.LessonTemplateID,
				ClassLessonTitle:            title,
				ClassLessonOrderIndex:       order,
				ClassLessonSummary:          tpl.LessonTemplateSummary,
				ClassLessonSlideURL:         tpl.LessonTemplateSlideURL,
				ClassLessonExampleURL:       tpl.LessonTemplateExampleURL,
			})
		}
	}
	return out
}
