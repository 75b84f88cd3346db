package domain

import (
	"time"
)

type Task struct {
	ID          int64     `json:"id" db:"id"`
	GoalID      int64     `json:"goal_id" db:"goal_id"`
	Title       string    `json:"title" db:"title" validate:"required,max=255"`
	Description *string   `json:"description" db:"description"`
	Completed   Flag      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (t Task) SameContent(other Task) bool {
	return t.Title == other.Title &&
		equalStringPtr(t.Description, other.Description) &&
		t.Completed == other.Completed
}

func (t *Task) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":       t.Title,
		"description": NullableString(t.Description),
		"completed":   t.Completed.Bool(),
	}
}

// NullableString turns a missing text value into SQL NULL.
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}

	return *s
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
