package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/scheduler/dto"
	"golang-asset-analytics/internal/scheduler/repository"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"

	"github.com/robfig/cron/v3"
)

// ErrInvalidCronExpression is returned when a schedule's cron expression
// cannot be parsed by the dispatcher's five-field parser.
var ErrInvalidCronExpression = errors.New("invalid cron expression")

// ScheduleService manages the cron schedules that drive the analytics
// pipeline jobs. Expressions are validated with the same parser the
// dispatcher runs, and the first fire time is stamped on write so a new
// schedule is picked up on the next polling tick.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetScheduleByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error)
	GetAllSchedules(ctx context.Context) ([]*dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id uint) error
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo repository.TaskScheduleRepository, logger *logger.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

type scheduleService struct {
	scheduleRepo repository.TaskScheduleRepository
	logger       *logger.Logger
	cronParser   cron.Parser
}

// CreateSchedule validates the cron expression, computes the first fire
// time and persists a new schedule for the given pipeline job.
func (s *scheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	next, err := s.nextFireTime(req.CronExpression)
	if err != nil {
		return nil, err
	}

	schedule := &entity.TaskSchedule{
		JobID:          req.JobID,
		CronExpression: req.CronExpression,
		IsActive:       req.IsActive,
		NextExecution:  next,
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		s.logger.Error("Failed to create schedule", logger.ErrorField(err), logger.Field("job_id", req.JobID))
		return nil, err
	}

	s.logger.Info("Schedule created",
		logger.Field("schedule_id", schedule.ID),
		logger.Field("job_id", schedule.JobID),
		logger.StringField("cron", schedule.CronExpression))
	return s.mapToScheduleResponse(schedule), nil
}

// GetScheduleByID retrieves a schedule by its ID.
func (s *scheduleService) GetScheduleByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}
	return s.mapToScheduleResponse(schedule), nil
}

// GetAllSchedules retrieves every schedule across all pipeline jobs.
func (s *scheduleService) GetAllSchedules(ctx context.Context) ([]*dto.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list schedules", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		responses = append(responses, s.mapToScheduleResponse(&schedules[i]))
	}
	return responses, nil
}

// UpdateSchedule replaces the cron expression and active flag of an
// existing schedule. The next fire time is recomputed from the new
// expression so a tightened cadence takes effect immediately.
func (s *scheduleService) UpdateSchedule(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	next, err := s.nextFireTime(req.CronExpression)
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find schedule for update", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}

	schedule.CronExpression = req.CronExpression
	schedule.IsActive = req.IsActive
	schedule.NextExecution = next

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		s.logger.Error("Failed to update schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return nil, err
	}

	s.logger.Info("Schedule updated",
		logger.Field("schedule_id", id),
		logger.StringField("cron", schedule.CronExpression))
	return s.mapToScheduleResponse(schedule), nil
}

// DeleteSchedule removes a schedule. The owning job and its execution
// history are left untouched.
func (s *scheduleService) DeleteSchedule(ctx context.Context, id uint) error {
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete schedule", logger.ErrorField(err), logger.Field("schedule_id", id))
		return err
	}
	s.logger.Info("Schedule deleted", logger.Field("schedule_id", id))
	return nil
}

// nextFireTime parses expr and returns the next UTC time it fires.
func (s *scheduleService) nextFireTime(expr string) (sql.NullTime, error) {
	sched, err := s.cronParser.Parse(expr)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("%w: %q: %v", ErrInvalidCronExpression, expr, err)
	}
	return sql.NullTime{Time: sched.Next(utils.TimeNowUTC()), Valid: true}, nil
}

func (s *scheduleService) mapToScheduleResponse(schedule *entity.TaskSchedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:             schedule.ID,
		JobID:          schedule.JobID,
		CronExpression: schedule.CronExpression,
		IsActive:       schedule.IsActive,
		NextExecution:  schedule.NextExecution,
		LastExecution:  schedule.LastExecution,
		CreatedAt:      schedule.CreatedAt,
		UpdatedAt:      schedule.UpdatedAt,
	}
}
