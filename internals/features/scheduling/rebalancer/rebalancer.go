// file: internals/features/scheduling/rebalancer/rebalancer.go
package rebalancer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "kelasku_backend/internals/features/classes/model"
)

// LessonRef: satu class_lesson plus urutan block kurikulumnya.
type LessonRef struct {
	ClassLessonID   uuid.UUID  `gorm:"column:class_lesson_id"`
	OrderIndex      int        `gorm:"column:class_lesson_order_index"`
	BlockOrderIndex int        `gorm:"column:block_order_index"`
	SessionID       *uuid.UUID `gorm:"column:class_lesson_session_id"`
	UnlockAt        *time.Time `gorm:"column:class_lesson_unlock_at"`
}

type SessionRef struct {
	SessionID uuid.UUID
	DateTime  time.Time
}

type Assignment struct {
	ClassLessonID uuid.UUID
	SessionID     *uuid.UUID
	UnlockAt      *time.Time
}

type Stats struct {
	Assigned   int
	Unassigned int
	Updated    int
}

// SortLessons: urutan kurikulum (block → lesson → id), bukan urutan tanggal.
func SortLessons(lessons []LessonRef) {
	sort.SliceStable(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		if a.BlockOrderIndex != b.BlockOrderIndex {
			return a.BlockOrderIndex < b.BlockOrderIndex
		}
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		return a.ClassLessonID.String() < b.ClassLessonID.String()
	})
}

// Assign memetakan lesson ke-i ke sesi ke-i. Sisa lesson dilepas (session & unlock_at nil).
// lessons harus sudah urut (SortLessons), sessions urut waktu.
func Assign(lessons []LessonRef, sessions []SessionRef) []Assignment {
	out := make([]Assignment, 0, len(lessons))
	for i, l := range lessons {
		a := Assignment{ClassLessonID: l.ClassLessonID}
		if i < len(sessions) {
			sid := sessions[i].SessionID
			at := sessions[i].DateTime
			a.SessionID = &sid
			a.UnlockAt = &at
		}
		out = append(out, a)
	}
	return out
}

// ReassignLessonsToSessions menjalankan Assign terhadap DB (pakai tx bila di dalam pipeline).
func ReassignLessonsToSessions(ctx context.Context, db *gorm.DB, classID uuid.UUID) (Stats, error) {
	var st Stats
	q := db.WithContext(ctx)

	var lessons []LessonRef
	if err := q.Table("class_lessons AS cl").
		Select(`cl.class_lesson_id, cl.class_lesson_order_index, b.block_order_index,
			cl.class_lesson_session_id, cl.class_lesson_unlock_at`).
		Joins("JOIN class_blocks cb ON cb.class_block_id = cl.class_lesson_class_block_id").
		Joins("JOIN blocks b ON b.block_id = cb.class_block_block_id").
		Where("cb.class_block_class_id = ?", classID).
		Scan(&lessons).Error; err != nil {
		return st, fmt.Errorf("rebalance: list lessons: %w", err)
	}
	if len(lessons) == 0 {
		return st, nil
	}
	SortLessons(lessons)

	var sessions []classModel.SessionModel
	if err := q.
		Where("session_class_id = ? AND session_status <> ?", classID, classModel.SessionCancelled).
		Order("session_date_time ASC").
		Find(&sessions).Error; err != nil {
		return st, fmt.Errorf("rebalance: list sessions: %w", err)
	}
	refs := make([]SessionRef, 0, len(sessions))
	for _, s := range sessions {
		refs = append(refs, SessionRef{SessionID: s.SessionID, DateTime: s.SessionDateTime})
	}

	current := make(map[uuid.UUID]LessonRef, len(lessons))
	for _, l := range lessons {
		current[l.ClassLessonID] = l
	}

	for _, a := range Assign(lessons, refs) {
		if a.SessionID != nil {
			st.Assigned++
		} else {
			st.Unassigned++
		}
		if sameAssignment(current[a.ClassLessonID], a) {
			continue
		}
		if err := q.Model(&classModel.ClassLessonModel{}).
			Where("class_lesson_id = ?", a.ClassLessonID).
			Updates(map[string]any{
				"class_lesson_session_id": a.SessionID,
				"class_lesson_unlock_at":  a.UnlockAt,
			}).Error; err != nil {
			return st, fmt.Errorf("rebalance: update lesson %s: %w", a.ClassLessonID, err)
		}
		st.Updated++
	}
	return st, nil
}

func sameAssignment(l LessonRef, a Assignment) bool {
	switch {
	case l.SessionID == nil && a.SessionID == nil:
		return true
	case l.SessionID == nil || a.SessionID == nil:
		return false
	case *l.SessionID != *a.SessionID:
		return false
	}
	if l.UnlockAt == nil || a.UnlockAt == nil {
		return l.UnlockAt == a.UnlockAt
	}
	return l.UnlockAt.Equal(*a.UnlockAt)
}
