package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/features/scheduling/weekday"
	"kelasku_backend/internals/helpers/dbtime"
	"kelasku_backend/internals/helpers/testutil"
)

func mustDay(t *testing.T, s string) weekday.Day {
	t.Helper()
	d, ok := weekday.Normalize(s)
	require.True(t, ok)
	return d
}

func TestGenerateSessionsWeeklyCadence(t *testing.T) {
	classID := uuid.New()
	got, err := GenerateSessions(GenerateSessionsInput{
		ClassID:          classID,
		StartDate:        testutil.Date(2026, time.March, 2),
		EndDate:          testutil.Date(2026, time.March, 31),
		Day:              mustDay(t, "MONDAY"),
		Time:             dbtime.MustTod("16:00"),
		Location:         testutil.WIB,
		ClassMeetingLink: "https://meet.example/kelas",
	})
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i, s := range got {
		local := s.SessionDateTime.In(testutil.WIB)
		assert.Equal(t, time.Monday, local.Weekday())
		assert.Equal(t, 16, local.Hour())
		assert.Equal(t, time.UTC, s.SessionDateTime.Location())
		assert.Equal(t, 9, s.SessionDateTime.Hour())
		assert.Equal(t, classModel.SessionScheduled, s.SessionStatus)
		assert.Equal(t, "https://meet.example/kelas", s.SessionMeetingLinkSnapshot)
		assert.Equal(t, classID, s.SessionClassID)
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, s.SessionDateTime.Sub(got[i-1].SessionDateTime))
		}
	}
	assert.Equal(t, 2, got[0].SessionDateTime.In(testutil.WIB).Day())
	assert.Equal(t, 30, got[4].SessionDateTime.In(testutil.WIB).Day())
}

func TestGenerateSessionsAlignsToWeekday(t *testing.T) {
	link := "https://meet.example/override"
	got, err := GenerateSessions(GenerateSessionsInput{
		StartDate:           testutil.Date(2026, time.March, 4), // Wednesday
		EndDate:             testutil.Date(2026, time.March, 20),
		Day:                 mustDay(t, "fri"),
		Time:                dbtime.MustTod("08:30"),
		Location:            testutil.WIB,
		MeetingLinkSnapshot: &link,
		ClassMeetingLink:    "https://meet.example/kelas",
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 6, got[0].SessionDateTime.In(testutil.WIB).Day())
	assert.Equal(t, 20, got[2].SessionDateTime.In(testutil.WIB).Day())
	assert.Equal(t, link, got[0].SessionMeetingLinkSnapshot)
}

func TestGenerateSessionsEdges(t *testing.T) {
	in := GenerateSessionsInput{
		StartDate: testutil.Date(2026, time.March, 3), // Tuesday
		EndDate:   testutil.Date(2026, time.March, 3),
		Day:       mustDay(t, "TU"),
		Time:      dbtime.MustTod("10:00"),
		Location:  testutil.WIB,
	}
	got, err := GenerateSessions(in)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	in.Day = mustDay(t, "WE")
	got, err = GenerateSessions(in)
	require.NoError(t, err)
	assert.Empty(t, got)

	in.StartDate = testutil.Date(2026, time.March, 4)
	_, err = GenerateSessions(in)
	assert.ErrorIs(t, err, ErrStartAfterEnd)
}

func TestReconcileStatuses(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	mk := func(weeks ...int) []classModel.SessionModel {
		out := make([]classModel.SessionModel, 0, len(weeks))
		for _, w := range weeks {
			out = append(out, classModel.SessionModel{
				SessionDateTime: dbtime.AddWeeks(base, w),
				SessionStatus:   classModel.SessionScheduled,
			})
		}
		return out
	}

	sessions := mk(3, 0, 2, 1)
	n := ReconcileStatuses(sessions, 2)
	assert.Equal(t, 2, n)
	for i, s := range sessions {
		assert.Equal(t, dbtime.AddWeeks(base, i), s.SessionDateTime)
		if i < 2 {
			assert.Equal(t, classModel.SessionCompleted, s.SessionStatus)
		} else {
			assert.Equal(t, classModel.SessionScheduled, s.SessionStatus)
		}
	}

	sessions = mk(0, 1)
	assert.Equal(t, 2, ReconcileStatuses(sessions, 5))

	sessions = mk(0, 1)
	assert.Equal(t, 0, ReconcileStatuses(sessions, 0))
	assert.Equal(t, classModel.SessionScheduled, sessions[0].SessionStatus)
}
