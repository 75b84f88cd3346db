package domain

import (
	"time"
)

type Goal struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" validate:"required,max=255"`
	StartDate      *Date     `json:"start_date" db:"start_date"`
	PlannedEndDate *Date     `json:"planned_end_date" db:"planned_end_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SameContent reports whether the user-editable columns of both goals match.
func (g Goal) SameContent(other Goal) bool {
	return g.Name == other.Name &&
		g.StartDate.Equal(other.StartDate) &&
		g.PlannedEndDate.Equal(other.PlannedEndDate)
}

func (g *Goal) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"name":             g.Name,
		"start_date":       g.StartDate.Nullable(),
		"planned_end_date": g.PlannedEndDate.Nullable(),
	}
}
