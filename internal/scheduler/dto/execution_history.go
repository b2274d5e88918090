package dto

import (
	"time"
)

// ExecutionHistoryResponse is the DTO for API responses containing execution
// history details.
type ExecutionHistoryResponse struct {
	ID           uint       `json:"id"`
	JobID        uint       `json:"job_id"`
	ScheduleID   uint       `json:"schedule_id"`
	Status       string     `json:"status"`
	Output       string     `json:"output"`
	ErrorMessage string     `json:"error_message,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
