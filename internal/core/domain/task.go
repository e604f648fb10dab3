package domain

import "time"

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether the status is one of the defined task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone, TaskCancelled:
		return true
	}
	return false
}

// Task is a unit of work assigned to an employee.
type Task struct {
	TaskID      string     `json:"taskID"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assigneeID"`
	Department  string     `json:"department"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AuditFields
}
