// file: internals/features/scheduling/planner/service/sessions.go
package service

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/features/scheduling/weekday"
	"kelasku_backend/internals/helpers/dbtime"
)

var ErrStartAfterEnd = errors.New("start date must be on or before end date")

type GenerateSessionsInput struct {
	ClassID uuid.UUID
	// tanggal sipil (jam diabaikan), inklusif
	StartDate time.Time
	EndDate   time.Time
	Day       weekday.Day
	Time      dbtime.Tod
	// zona jam sipil kelas
	Location *time.Location

	// nil → pakai link kelas
	MeetingLinkSnapshot *string
	ClassMeetingLink    string
}

// GenerateSessions: satu sesi SCHEDULED per tanggal di [start, end] yang harinya cocok.
// date_time disimpan dalam UTC. Tidak ada cek eksistensi di sini.
func GenerateSessions(in GenerateSessionsInput) ([]classModel.SessionModel, error) {
	start := dbtime.CivilDate(in.StartDate, time.UTC)
	end := dbtime.CivilDate(in.EndDate, time.UTC)
	if start.After(end) {
		return nil, ErrStartAfterEnd
	}

	link := in.ClassMeetingLink
	if in.MeetingLinkSnapshot != nil {
		link = *in.MeetingLinkSnapshot
	}

	var out []classModel.SessionModel
	for d := dbtime.AlignToWeekday(start, in.Day.Index); !d.After(end); d = dbtime.AddWeeks(d, 1) {
		out = append(out, classModel.SessionModel{
			SessionID:                  uuid.New(),
			SessionClassID:             in.ClassID,
			SessionDateTime:            in.Time.On(d, in.Location).UTC(),
			SessionStatus:              classModel.SessionScheduled,
			SessionMeetingLinkSnapshot: link,
		})
	}
	return out, nil
}

// ReconcileStatuses: tandai COMPLETED tepat `past` sesi pertama (kronologis).
// Slice diurutkan in-place.
func ReconcileStatuses(sessions []classModel.SessionModel, past int) int {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].SessionDateTime.Before(sessions[j].SessionDateTime)
	})
	n := 0
	for i := range sessions {
		if n >= past {
			break
		}
		sessions[i].SessionStatus = classModel.SessionCompleted
		n++
	}
	return n
}
