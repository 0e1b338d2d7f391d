package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/dayplan/internal/model"
)

func TestNormalizeAssignedDate_FixedTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 10, 8, 15, 42, 0, time.UTC)
	evening := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, model.NormalizeAssignedDate(morning), model.NormalizeAssignedDate(evening))
	assert.Equal(t, 12, model.NormalizeAssignedDate(morning).Hour())
	assert.Equal(t, time.UTC, model.NormalizeAssignedDate(morning).Location())
}

func TestNormalizeAssignedDate_ConvertsToUTCFirst(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2024, 3, 11, 2, 0, 0, 0, loc) // 2024-03-10 21:00 UTC

	got := model.NormalizeAssignedDate(local)
	assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), got)
}

func TestDayRange_IsHalfOpen(t *testing.T) {
	at := time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC)
	start, end := model.DayRange(at)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestYearRange(t *testing.T) {
	start, end := model.YearRange(2024)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestReminderDateRoundTrip(t *testing.T) {
	due := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	r := model.Reminder{Date: model.FormatReminderDate(due)}

	parsed, err := r.DueAt()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(due))
}

func TestReminderDateOrdering_Lexicographic(t *testing.T) {
	// The range scan compares stored strings, so encoding order must
	// match chronological order.
	earlier := model.FormatReminderDate(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	later := model.FormatReminderDate(time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC))

	assert.Less(t, earlier, later)
}
