package common

const (
	RedisStreamSchedulerTaskExecution = "schedule.task.execution"

	RedisStreamGroup    = "worker-group"
	RedisStreamConsumer = "worker-consumer"
)

// SchedulerTaskExecutionEventName is the stream the scheduler publishes due
// tasks to and the worker consumes from.
const SchedulerTaskExecutionEventName = RedisStreamSchedulerTaskExecution
