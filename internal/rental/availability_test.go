package rental

import (
	"testing"
	"time"

	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                   string
		a1, a2, b1, b2         time.Time
		want                   bool
	}{
		{"partial overlap", day(2024, 6, 1), day(2024, 6, 3), day(2024, 6, 2), day(2024, 6, 4), true},
		{"contained", day(2024, 6, 1), day(2024, 6, 10), day(2024, 6, 3), day(2024, 6, 4), true},
		{"touching endpoints", day(2024, 6, 1), day(2024, 6, 3), day(2024, 6, 3), day(2024, 6, 5), true},
		{"single shared day", day(2024, 6, 3), day(2024, 6, 3), day(2024, 6, 3), day(2024, 6, 3), true},
		{"disjoint", day(2024, 6, 1), day(2024, 6, 3), day(2024, 6, 4), day(2024, 6, 6), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RangesOverlap(tc.a1, tc.a2, tc.b1, tc.b2))
			// Symmetric: overlaps(A,B) == overlaps(B,A)
			assert.Equal(t, tc.want, RangesOverlap(tc.b1, tc.b2, tc.a1, tc.a2))
		})
	}
}

func TestRangesOverlapIgnoresTimeOfDay(t *testing.T) {
	a1 := time.Date(2024, 6, 3, 23, 0, 0, 0, time.UTC)
	b2 := time.Date(2024, 6, 3, 1, 0, 0, 0, time.UTC)
	assert.True(t, RangesOverlap(a1, day(2024, 6, 5), day(2024, 6, 1), b2))
}

func TestExpandBlockedDates(t *testing.T) {
	bookings := []models.Bid{
		{StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 3)},
	}

	days := ExpandBlockedDates(bookings)
	require.Len(t, days, 3)
	assert.Equal(t, day(2024, 3, 1), days[0])
	assert.Equal(t, day(2024, 3, 2), days[1])
	assert.Equal(t, day(2024, 3, 3), days[2])
}

func TestExpandBlockedDatesReturnsIndependentLists(t *testing.T) {
	bookings := []models.Bid{
		{StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 3)},
	}

	first := ExpandBlockedDates(bookings)
	second := ExpandBlockedDates(bookings)
	require.Len(t, second, 3)

	// Mutating one result must not corrupt the other
	first[0] = first[0].AddDate(1, 0, 0)
	first[1] = first[1].AddDate(1, 0, 0)

	assert.Equal(t, day(2024, 3, 1), second[0])
	assert.Equal(t, day(2024, 3, 2), second[1])
	assert.Equal(t, day(2024, 3, 3), second[2])
}

func TestExpandBlockedDatesSingleDayBooking(t *testing.T) {
	days := ExpandBlockedDates([]models.Bid{
		{StartDate: day(2024, 7, 15), EndDate: day(2024, 7, 15)},
	})
	require.Len(t, days, 1)
	assert.Equal(t, day(2024, 7, 15), days[0])
}
