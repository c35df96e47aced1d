// file: internals/features/scheduling/planner/service/ekskul.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	classModel "kelasku_backend/internals/features/classes/model"
	"kelasku_backend/internals/features/scheduling/planner/repository"
	"kelasku_backend/internals/features/scheduling/weekday"
	"kelasku_backend/internals/helpers/dbtime"
)

// PlanEkskulClass: rencana datar → sesi mingguan. Tanpa block, backfill, maupun rekonsiliasi status.
func (s *Service) PlanEkskulClass(ctx context.Context, classID uuid.UUID) (Result, error) {
	var res Result
	err := s.withClass(ctx, classID, func(tx *repository.Repository, c *classModel.ClassModel) error {
		var err error
		res, err = s.planEkskul(ctx, tx, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) planEkskul(ctx context.Context, tx *repository.Repository, c *classModel.ClassModel) (Result, error) {
	if c.ClassType != classModel.ClassTypeEkskul {
		return Skipped{Reason: ReasonNotEkskul}, nil
	}
	kind, reason := kindOf(c)
	if reason != "" {
		return Skipped{Reason: reason}, nil
	}
	ekskul := kind.(EkskulKind)

	n, err := tx.CountSessions(ctx, c.ClassID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return Skipped{Reason: ReasonAlreadyHasSession}, nil
	}

	day, ok := weekday.Normalize(c.ClassScheduleDay)
	if !ok {
		return Skipped{Reason: reasonInvalidDay(c.ClassScheduleDay)}, nil
	}

	plan, lessons, err := tx.GetEkskulPlan(ctx, ekskul.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return Skipped{Reason: ReasonPlanNotFound}, nil
	}
	if len(lessons) == 0 {
		return Skipped{Reason: ReasonPlanEmpty}, nil
	}

	meetings := 0
	for _, l := range lessons {
		meetings += l.MeetingCount()
	}

	start := dbtime.AlignToWeekday(s.classStartDate(c), day.Index)
	last := dbtime.AddWeeks(start, meetings-1)

	sessions, err := GenerateSessions(GenerateSessionsInput{
		ClassID:          c.ClassID,
		StartDate:        start,
		EndDate:          last,
		Day:              day,
		Time:             c.ClassScheduleTime,
		Location:         s.Cfg.Location,
		ClassMeetingLink: c.ClassMeetingLink,
	})
	if err != nil {
		return nil, fmt.Errorf("generate ekskul sessions: %w", err)
	}
	created, err := tx.CreateSessions(ctx, sessions)
	if err != nil {
		return nil, err
	}

	if err := tx.InsertPlanningRun(ctx, &classModel.ClassPlanningRunModel{
		ClassPlanningRunClassID:         c.ClassID,
		ClassPlanningRunKind:            classModel.ClassTypeEkskul,
		ClassPlanningRunSessionsCreated: int(created),
		ClassPlanningRunDetails: datatypes.NewJSONType(classModel.PlanningRunDetails{
			ScheduleDay:        day.Code,
			EffectiveStartDate: dbtime.FormatDate(start),
			LastSessionDate:    dbtime.FormatDate(last),
			LessonCount:        len(lessons),
		}),
	}); err != nil {
		return nil, err
	}

	s.Log.Info("ekskul class planned",
		"class_id", c.ClassID.String(),
		"plan", plan.EkskulLessonPlanName,
		"sessions_created", created)

	return Planned{SessionsCreated: int(created)}, nil
}
