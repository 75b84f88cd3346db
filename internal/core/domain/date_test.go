package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("should accept calendar dates", func(t *testing.T) {
		d, err := ParseDate("2025-03-09")

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-09", d.String())
	})

	t.Run("should drop the time of day", func(t *testing.T) {
		d, err := ParseDate("2025-03-09T18:30:00Z")

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-09", d.String())
	})

	t.Run("should reject malformed input with ErrDateFormat", func(t *testing.T) {
		for _, input := range []string{"09/03/2025", "2025-13-01", "tomorrow"} {
			_, err := ParseDate(input)
			assert.True(t, errors.Is(err, ErrDateFormat), input)
		}
	})
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("  ")

	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2024-01-31")

	assert.NoError(t, err)
	assert.Equal(t, "2024-01-31", d.String())
}

func TestDate_Equal(t *testing.T) {
	a := NewDate(2024, time.May, 1)
	b := NewDate(2024, time.May, 1)
	c := NewDate(2024, time.May, 2)

	var none *Date

	assert.True(t, a.Equal(&b))
	assert.False(t, a.Equal(&c))
	assert.False(t, a.Equal(nil))
	assert.True(t, none.Equal(nil))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	assert.NoError(t, d.Scan(time.Date(2024, time.June, 7, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-07", d.String())

	assert.NoError(t, d.Scan([]byte("2024-06-08")))
	assert.Equal(t, "2024-06-08", d.String())

	assert.Error(t, d.Scan(int64(3)))
}

func TestGoal_JSON(t *testing.T) {
	start := NewDate(2024, time.January, 2)

	data, err := json.Marshal(Goal{ID: 7, Name: "Learn Go", StartDate: &start})

	assert.NoError(t, err)
	assert.Contains(t, string(data), `"start_date":"2024-01-02"`)
	assert.Contains(t, string(data), `"planned_end_date":null`)
}

func TestGoal_SameContent(t *testing.T) {
	start := NewDate(2024, time.January, 2)
	same := NewDate(2024, time.January, 2)

	a := Goal{Name: "A", StartDate: &start}
	b := Goal{Name: "A", StartDate: &same, UpdatedAt: time.Now()}

	assert.True(t, a.SameContent(b))

	b.PlannedEndDate = &same
	assert.False(t, a.SameContent(b))
}

func TestTask_SameContentDescription(t *testing.T) {
	desc := "details"

	a := Task{Title: "T", Description: &desc}
	b := Task{Title: "T", Description: &desc, Completed: true}

	assert.False(t, a.SameContent(b))

	b.Completed = false
	assert.True(t, a.SameContent(b))

	b.Description = nil
	assert.False(t, a.SameContent(b))
}
