package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// JobType identifies the worker strategy that executes a job.
type JobType string

const (
	JobTypePriceIngestion       JobType = "price_ingestion"
	JobTypeNewsIngestion        JobType = "news_ingestion"
	JobTypePredictionGeneration JobType = "prediction_generation"
	JobTypeSentimentGeneration  JobType = "sentiment_generation"
	JobTypeStatsRecompute       JobType = "stats_recompute"
)

// Task execution statuses.
const (
	StatusPending = "PENDING"
	StatusRunning = "RUNNING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Job is a configured background task with one or more cron schedules.
type Job struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Type        JobType        `gorm:"type:varchar(50);not null" json:"type"`
	Payload     datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	Timeout     int            `gorm:"not null;default:300" json:"timeout"`
	Schedules   []TaskSchedule `gorm:"foreignKey:JobID" json:"schedules"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Job model.
func (Job) TableName() string {
	return "jobs"
}

// TaskSchedule is one cron expression attached to a job.
type TaskSchedule struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	JobID          uint         `gorm:"not null;index" json:"job_id"`
	CronExpression string       `gorm:"type:varchar(100);not null" json:"cron_expression"`
	IsActive       bool         `gorm:"not null;default:true" json:"is_active"`
	NextExecution  sql.NullTime `json:"next_execution"`
	LastExecution  sql.NullTime `json:"last_execution"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the TaskSchedule model.
func (TaskSchedule) TableName() string {
	return "task_schedules"
}

// TaskExecutionHistory records one execution of a scheduled job.
type TaskExecutionHistory struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JobID        uint           `gorm:"not null;index" json:"job_id"`
	ScheduleID   uint           `gorm:"not null;index" json:"schedule_id"`
	Status       string         `gorm:"type:varchar(20);not null" json:"status"`
	Output       string         `gorm:"type:text" json:"output"`
	ErrorMessage sql.NullString `json:"error_message"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
}

// TableName specifies the table name for the TaskExecutionHistory model.
func (TaskExecutionHistory) TableName() string {
	return "task_execution_history"
}
