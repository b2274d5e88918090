package service

import (
	"context"
	"testing"
	"time"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/scheduler/dto"
	"golang-asset-analytics/pkg/logger"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeScheduleRepo struct {
	schedules map[uint]*entity.TaskSchedule
	nextID    uint
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: map[uint]*entity.TaskSchedule{}, nextID: 1}
}

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *entity.TaskSchedule) error {
	schedule.ID = r.nextID
	r.nextID++
	copied := *schedule
	r.schedules[schedule.ID] = &copied
	return nil
}

func (r *fakeScheduleRepo) FindByID(_ context.Context, id uint) (*entity.TaskSchedule, error) {
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *schedule
	return &copied, nil
}

func (r *fakeScheduleRepo) FindAll(_ context.Context) ([]entity.TaskSchedule, error) {
	var out []entity.TaskSchedule
	for _, schedule := range r.schedules {
		out = append(out, *schedule)
	}
	return out, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, schedule *entity.TaskSchedule) error {
	copied := *schedule
	r.schedules[schedule.ID] = &copied
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id uint) error {
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) FindSchedulesToRun(_ context.Context) ([]entity.TaskSchedule, error) {
	return nil, nil
}

func newTestScheduleService(t *testing.T) (ScheduleService, *fakeScheduleRepo) {
	t.Helper()
	log, err := logger.New("error", "console")
	assert.NoError(t, err)
	repo := newFakeScheduleRepo()
	return NewScheduleService(repo, log), repo
}

func TestScheduleService_CreateStampsNextExecution(t *testing.T) {
	svc, repo := newTestScheduleService(t)

	resp, err := svc.CreateSchedule(context.Background(), &dto.CreateScheduleRequest{
		JobID:          7,
		CronExpression: "*/5 * * * *",
		IsActive:       true,
	})
	assert.NoError(t, err)
	assert.True(t, resp.NextExecution.Valid)
	assert.True(t, resp.NextExecution.Time.After(time.Now().UTC().Add(-time.Minute)))

	stored, err := repo.FindByID(context.Background(), resp.ID)
	assert.NoError(t, err)
	assert.True(t, stored.NextExecution.Valid)
}

func TestScheduleService_RejectsInvalidCron(t *testing.T) {
	svc, repo := newTestScheduleService(t)

	_, err := svc.CreateSchedule(context.Background(), &dto.CreateScheduleRequest{
		JobID:          7,
		CronExpression: "every day at noon",
	})
	assert.ErrorIs(t, err, ErrInvalidCronExpression)
	assert.Empty(t, repo.schedules)

	// Six-field expressions are rejected too, the dispatcher parses five.
	_, err = svc.CreateSchedule(context.Background(), &dto.CreateScheduleRequest{
		JobID:          7,
		CronExpression: "0 0 12 * * *",
	})
	assert.ErrorIs(t, err, ErrInvalidCronExpression)
}

func TestScheduleService_UpdateRecomputesNextExecution(t *testing.T) {
	svc, _ := newTestScheduleService(t)

	created, err := svc.CreateSchedule(context.Background(), &dto.CreateScheduleRequest{
		JobID:          3,
		CronExpression: "0 0 * * *",
		IsActive:       true,
	})
	assert.NoError(t, err)

	updated, err := svc.UpdateSchedule(context.Background(), created.ID, &dto.UpdateScheduleRequest{
		CronExpression: "* * * * *",
		IsActive:       false,
	})
	assert.NoError(t, err)
	assert.Equal(t, "* * * * *", updated.CronExpression)
	assert.False(t, updated.IsActive)
	// An every-minute cadence fires sooner than the midnight one it replaced.
	assert.True(t, updated.NextExecution.Time.Before(created.NextExecution.Time))

	_, err = svc.UpdateSchedule(context.Background(), created.ID, &dto.UpdateScheduleRequest{
		CronExpression: "not cron",
	})
	assert.ErrorIs(t, err, ErrInvalidCronExpression)
}
