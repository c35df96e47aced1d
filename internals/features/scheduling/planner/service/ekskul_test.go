package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/helpers/testutil"
)

func TestPlanEkskulScenarioC(t *testing.T) {
	db := testutil.DB(t)
	plan := seedEkskulPlan(t, db, true, 1, 2)
	class := seedEkskulClass(t, db, &plan.EkskulLessonPlanID)
	svc := newTestService(t, db, earlyClock)
	ctx := context.Background()

	res, err := svc.PlanClass(ctx, class.ClassID, Hint{})
	require.NoError(t, err)
	planned, ok := res.(Planned)
	require.True(t, ok, "got %#v", res)
	assert.Nil(t, planned.BlockID)
	assert.Equal(t, 3, planned.SessionsCreated)

	// mulai Rabu 4 Maret, hari jadwal Senin → 9, 16, 23 Maret
	sessions := sessionsOf(t, db, class.ClassID)
	require.Len(t, sessions, 3)
	for i, s := range sessions {
		assert.True(t, s.SessionDateTime.Equal(wib(2026, time.March, 9+7*i, 15, 30)), "session %d at %s", i, s.SessionDateTime)
		assert.Equal(t, classModel.SessionScheduled, s.SessionStatus)
		assert.Equal(t, "https://meet.example/ekskul", s.SessionMeetingLinkSnapshot)
	}
	assert.Zero(t, countRows(t, db, &classModel.ClassBlockModel{}))

	res, err = svc.PlanEkskulClass(ctx, class.ClassID)
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: ReasonAlreadyHasSession}, res)
	assert.Len(t, sessionsOf(t, db, class.ClassID), 3)
}

func TestPlanEkskulSkipReasons(t *testing.T) {
	db := testutil.DB(t)
	svc := newTestService(t, db, earlyClock)
	ctx := context.Background()

	cases := []struct {
		name  string
		setup func(t *testing.T, db *gorm.DB) classModel.ClassModel
		want  string
	}{
		{
			name: "no plan assigned",
			setup: func(t *testing.T, db *gorm.DB) classModel.ClassModel {
				return seedEkskulClass(t, db, nil)
			},
			want: ReasonNoLessonPlan,
		},
		{
			name: "inactive plan",
			setup: func(t *testing.T, db *gorm.DB) classModel.ClassModel {
				p := seedEkskulPlan(t, db, false, 1)
				return seedEkskulClass(t, db, &p.EkskulLessonPlanID)
			},
			want: ReasonPlanNotFound,
		},
		{
			name: "empty plan",
			setup: func(t *testing.T, db *gorm.DB) classModel.ClassModel {
				p := seedEkskulPlan(t, db, true)
				return seedEkskulClass(t, db, &p.EkskulLessonPlanID)
			},
			want: ReasonPlanEmpty,
		},
		{
			name: "invalid day",
			setup: func(t *testing.T, db *gorm.DB) classModel.ClassModel {
				p := seedEkskulPlan(t, db, true, 1)
				return seedEkskulClass(t, db, &p.EkskulLessonPlanID, withDay("Funday"))
			},
			want: `Invalid schedule day "Funday"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.setup(t, db)
			res, err := svc.PlanEkskulClass(ctx, c.ClassID)
			require.NoError(t, err)
			assert.Equal(t, Skipped{Reason: tc.want}, res)
			assert.Empty(t, sessionsOf(t, db, c.ClassID))
		})
	}

	lvl := seedLevel(t, db, scenarioCurriculum())
	weekly := seedWeeklyClass(t, db, &lvl.LevelID)
	res, err := svc.PlanEkskulClass(ctx, weekly.ClassID)
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: ReasonNotEkskul}, res)
}
