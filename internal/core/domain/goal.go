package domain

import (
	"errors"
	"time"
)

var ErrGoalNotFound = errors.New("goal not found")

// Goal is a long-running objective with a progress percentage and an
// ordered list of milestone labels.
type Goal struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category"`
	Progress    int       `json:"progress" bson:"progress"`
	Milestones  []string  `json:"milestones" bson:"milestones"`
	TargetDate  time.Time `json:"target_date" bson:"target_date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
