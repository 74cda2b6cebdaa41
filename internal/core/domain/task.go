package domain

import (
	"errors"
	"time"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var ErrTaskNotFound = errors.New("task not found")

// Task is a single to-do item owned by one user.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	UserID      string     `json:"user_id" bson:"user_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Priority    string     `json:"priority" bson:"priority"`
	Category    string     `json:"category" bson:"category"`
	Completed   bool       `json:"completed" bson:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}
