package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/helpers/testutil"
)

func scenarioCurriculum() blockSeed {
	return blockSeed{name: "Scratch Dasar", lessons: []lessonSeed{{"X", 2}, {"Y", 1}}}
}

func TestPlanWeeklyScenarioA(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)

	res, err := svc.PlanClass(context.Background(), class.ClassID, Hint{})
	require.NoError(t, err)
	planned, ok := res.(Planned)
	require.True(t, ok, "got %#v", res)
	assert.Equal(t, 3, planned.SessionsCreated)
	assert.Equal(t, 0, planned.PastSessionCount)

	blocks := classBlocksOf(t, db, class.ClassID)
	require.Len(t, blocks, 1)
	assert.Equal(t, *planned.BlockID, blocks[0].ClassBlockID)
	assert.Equal(t, classModel.ClassBlockCurrent, blocks[0].ClassBlockStatus)
	assert.Equal(t, testutil.Date(2026, time.March, 2), blocks[0].ClassBlockStartDate.UTC())
	assert.Equal(t, testutil.Date(2026, time.March, 16), blocks[0].ClassBlockEndDate.UTC())

	lessons := classLessonsOf(t, db, class.ClassID)
	require.Len(t, lessons, 3)
	assert.Equal(t, "X (Part 1)", lessons[0].ClassLessonTitle)
	assert.Equal(t, "X (Part 2)", lessons[1].ClassLessonTitle)
	assert.Equal(t, "Y", lessons[2].ClassLessonTitle)

	sessions := sessionsOf(t, db, class.ClassID)
	require.Len(t, sessions, 3)
	for i, s := range sessions {
		assert.True(t, s.SessionDateTime.Equal(wib(2026, time.March, 2+7*i, 16, 0)), "session %d at %s", i, s.SessionDateTime)
		assert.Equal(t, classModel.SessionScheduled, s.SessionStatus)
		assert.Equal(t, "https://meet.example/a", s.SessionMeetingLinkSnapshot)

		// lesson ke-i terpasang ke sesi ke-i
		require.NotNil(t, lessons[i].ClassLessonSessionID)
		assert.Equal(t, s.SessionID, *lessons[i].ClassLessonSessionID)
		require.NotNil(t, lessons[i].ClassLessonUnlockAt)
		assert.True(t, lessons[i].ClassLessonUnlockAt.Equal(s.SessionDateTime))
	}

	var run classModel.ClassPlanningRunModel
	require.NoError(t, db.Where("class_planning_run_class_id = ?", class.ClassID).Take(&run).Error)
	assert.Equal(t, classModel.ClassTypeWeekly, run.ClassPlanningRunKind)
	assert.Equal(t, 3, run.ClassPlanningRunSessionsCreated)
	assert.Equal(t, "MO", run.ClassPlanningRunDetails.Data().ScheduleDay)
	assert.Equal(t, "2026-03-02", run.ClassPlanningRunDetails.Data().EffectiveStartDate)
}

func TestPlanWeeklyScenarioBBackfillFromLesson(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)

	lessonY := lvl.Lessons[0][1].LessonTemplateID
	res, err := svc.PlanClass(context.Background(), class.ClassID, Hint{PreferredStartLessonID: &lessonY})
	require.NoError(t, err)
	planned, ok := res.(Planned)
	require.True(t, ok, "got %#v", res)
	assert.Equal(t, 2, planned.PastSessionCount)
	assert.Equal(t, 3, planned.SessionsCreated)

	blocks := classBlocksOf(t, db, class.ClassID)
	require.Len(t, blocks, 1)
	assert.Equal(t, classModel.ClassBlockCurrent, blocks[0].ClassBlockStatus)
	// mundur 2 minggu dari 2 Maret
	assert.Equal(t, testutil.Date(2026, time.February, 16), blocks[0].ClassBlockStartDate.UTC())

	sessions := sessionsOf(t, db, class.ClassID)
	require.Len(t, sessions, 3)
	assert.True(t, sessions[0].SessionDateTime.Equal(wib(2026, time.February, 16, 16, 0)))
	assert.Equal(t, classModel.SessionCompleted, sessions[0].SessionStatus)
	assert.Equal(t, classModel.SessionCompleted, sessions[1].SessionStatus)
	assert.Equal(t, classModel.SessionScheduled, sessions[2].SessionStatus)
	assert.True(t, sessions[2].SessionDateTime.Equal(wib(2026, time.March, 2, 16, 0)))
}

func TestPlanWeeklyBackfillAcrossBlocks(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db,
		blockSeed{name: "B1", lessons: []lessonSeed{{"A", 1}, {"B", 1}}},
		blockSeed{name: "B2", lessons: []lessonSeed{{"C", 2}}},
	)
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)

	b2 := lvl.Blocks[1].BlockID
	res, err := svc.PlanClass(context.Background(), class.ClassID, Hint{PreferredStartBlockID: &b2})
	require.NoError(t, err)
	planned := res.(Planned)
	assert.Equal(t, 2, planned.PastSessionCount)

	blocks := classBlocksOf(t, db, class.ClassID)
	require.Len(t, blocks, 2)
	assert.Equal(t, classModel.ClassBlockCompleted, blocks[0].ClassBlockStatus)
	assert.Equal(t, classModel.ClassBlockCurrent, blocks[1].ClassBlockStatus)
	assert.Equal(t, *planned.BlockID, blocks[0].ClassBlockID)

	// B2: "C" 2 pertemuan → 2 sesi, setiap lesson kebagian sesi
	lessons := classLessonsOf(t, db, class.ClassID)
	require.Len(t, lessons, 4)
	assert.Equal(t, "C (Part 2)", lessons[3].ClassLessonTitle)

	sessions := sessionsOf(t, db, class.ClassID)
	require.Len(t, sessions, 4)
	assert.Equal(t, 4, planned.SessionsCreated)
	for i, l := range lessons {
		require.NotNil(t, l.ClassLessonSessionID, "lesson %d", i)
		assert.Equal(t, sessions[i].SessionID, *l.ClassLessonSessionID)
	}
	// sesi terakhir = akhir B2 = tanggal mulai kelas + 1 minggu
	assert.True(t, sessions[3].SessionDateTime.Equal(wib(2026, time.March, 9, 16, 0)))
	assert.Equal(t, testutil.Date(2026, time.March, 9), blocks[1].ClassBlockEndDate.UTC())
	completed := 0
	for _, s := range sessions {
		if s.SessionStatus == classModel.SessionCompleted {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
}

func TestPlanWeeklyIgnoresForeignPreferredBlock(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	other := seedLevel(t, db, blockSeed{name: "Lain", lessons: []lessonSeed{{"Z", 1}}})
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)

	foreign := other.Blocks[0].BlockID
	res, err := svc.PlanClass(context.Background(), class.ClassID, Hint{PreferredStartBlockID: &foreign})
	require.NoError(t, err)
	assert.Equal(t, 0, res.(Planned).PastSessionCount)
}

func TestPlanWeeklyScenarioDInvalidDay(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	class := seedWeeklyClass(t, db, &lvl.LevelID, withDay("Someday"))
	svc := newTestService(t, db, earlyClock)

	res, err := svc.PlanClass(context.Background(), class.ClassID, Hint{})
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: `Invalid schedule day "Someday"`}, res)

	assert.Zero(t, countRows(t, db, &classModel.ClassBlockModel{}))
	assert.Zero(t, countRows(t, db, &classModel.ClassLessonModel{}))
	assert.Zero(t, countRows(t, db, &classModel.SessionModel{}))
	assert.Zero(t, countRows(t, db, &classModel.ClassPlanningRunModel{}))
}

func TestPlanWeeklyIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)
	ctx := context.Background()

	_, err := svc.PlanClass(ctx, class.ClassID, Hint{})
	require.NoError(t, err)
	before := sessionsOf(t, db, class.ClassID)

	res, err := svc.PlanClass(ctx, class.ClassID, Hint{})
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: ReasonAlreadyPlanned}, res)

	after := sessionsOf(t, db, class.ClassID)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].SessionID, after[i].SessionID)
	}
	assert.Equal(t, int64(1), countRows(t, db, &classModel.ClassBlockModel{}))
	assert.Equal(t, int64(1), countRows(t, db, &classModel.ClassPlanningRunModel{}))
}

func TestPlanClassConcurrentCallsPlanOnce(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)

	const n = 6
	results := make([]Result, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.PlanClass(context.Background(), class.ClassID, Hint{})
		}(i)
	}
	wg.Wait()

	planned := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		switch r := results[i].(type) {
		case Planned:
			planned++
		case Skipped:
			assert.Equal(t, ReasonAlreadyPlanned, r.Reason)
		}
	}
	assert.Equal(t, 1, planned)
	assert.Len(t, sessionsOf(t, db, class.ClassID), 3)
}

func TestPlanWeeklySkipReasons(t *testing.T) {
	db := testutil.DB(t)
	svc := newTestService(t, db, earlyClock)
	ctx := context.Background()

	noLevel := seedWeeklyClass(t, db, nil)
	res, err := svc.PlanClass(ctx, noLevel.ClassID, Hint{})
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: ReasonMissingLevel}, res)

	emptyLevel := seedLevel(t, db)
	noBlocks := seedWeeklyClass(t, db, &emptyLevel.LevelID)
	res, err = svc.PlanClass(ctx, noBlocks.ClassID, Hint{})
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: ReasonNoBlocks}, res)

	plan := seedEkskulPlan(t, db, true, 1)
	ekskul := seedEkskulClass(t, db, &plan.EkskulLessonPlanID)
	res, err = svc.PlanWeeklyClass(ctx, ekskul.ClassID, Hint{})
	require.NoError(t, err)
	assert.Equal(t, Skipped{Reason: ReasonNotWeekly}, res)

	_, err = svc.PlanClass(ctx, uuid.New(), Hint{})
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestPlanWeeklyExtendsEndDate(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	class := seedWeeklyClass(t, db, &lvl.LevelID, withEndDate(testutil.Date(2026, time.March, 9)))
	svc := newTestService(t, db, earlyClock)

	_, err := svc.PlanClass(context.Background(), class.ClassID, Hint{})
	require.NoError(t, err)

	var got classModel.ClassModel
	require.NoError(t, db.Where("class_id = ?", class.ClassID).Take(&got).Error)
	require.NotNil(t, got.ClassEndDate)
	assert.Equal(t, testutil.Date(2026, time.March, 16), got.ClassEndDate.UTC())
}

func TestPlanWeeklyUsesEstimatedSessions(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, blockSeed{name: "B", estimated: intPtr(4), lessons: []lessonSeed{{"X", 1}}})
	class := seedWeeklyClass(t, db, &lvl.LevelID)
	svc := newTestService(t, db, earlyClock)

	res, err := svc.PlanClass(context.Background(), class.ClassID, Hint{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.(Planned).SessionsCreated)

	blocks := classBlocksOf(t, db, class.ClassID)
	require.Len(t, blocks, 1)
	assert.Equal(t, testutil.Date(2026, time.March, 23), blocks[0].ClassBlockEndDate.UTC())
}

func TestPlanBatch(t *testing.T) {
	db := testutil.DB(t)
	lvl := seedLevel(t, db, scenarioCurriculum())
	good := seedWeeklyClass(t, db, &lvl.LevelID)
	bad := seedWeeklyClass(t, db, &lvl.LevelID, withDay("Someday"))
	missing := uuid.New()
	svc := newTestService(t, db, earlyClock)

	lessonY := lvl.Lessons[0][1].LessonTemplateID
	out := svc.PlanBatch(context.Background(), []BatchItem{
		{ClassID: good.ClassID, Hint: Hint{PreferredStartLessonID: &lessonY}},
		{ClassID: missing},
		{ClassID: bad.ClassID},
	})
	require.Len(t, out, 3)

	assert.Equal(t, good.ClassID, out[0].ClassID)
	require.NoError(t, out[0].Err)
	assert.Equal(t, 2, out[0].Result.(Planned).PastSessionCount)

	assert.Equal(t, missing, out[1].ClassID)
	assert.ErrorIs(t, out[1].Err, ErrClassNotFound)
	assert.Nil(t, out[1].Result)

	require.NoError(t, out[2].Err)
	assert.Equal(t, Skipped{Reason: `Invalid schedule day "Someday"`}, out[2].Result)
}
