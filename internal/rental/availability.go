package rental

import (
	"time"

	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/driveshare/driveshare-backend/pkg/utils"
)

// BlockingTripStatuses are the trip states whose date ranges hold the
// vehicle. Pending and rejected bids never block: competing pending bids
// over the same range coexist until one is approved.
var BlockingTripStatuses = []models.TripStatus{
	models.TripStatusApproved,
	models.TripStatusStarted,
	models.TripStatusEnded,
	models.TripStatusReviewed,
}

// RangesOverlap tests two inclusive day ranges: [a1,a2] and [b1,b2]
// overlap iff a1 <= b2 and b1 <= a2. Dates are normalized to midnight
// first so time-of-day cannot skew the comparison.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	a1 := utils.StartOfDay(aStart)
	a2 := utils.StartOfDay(aEnd)
	b1 := utils.StartOfDay(bStart)
	b2 := utils.StartOfDay(bEnd)
	return !a1.After(b2) && !b1.After(a2)
}

// BidOverlaps reports whether a bid's range overlaps the given range.
func BidOverlaps(b *models.Bid, start, end time.Time) bool {
	return RangesOverlap(b.StartDate, b.EndDate, start, end)
}

// ExpandBlockedDates flattens bookings into individual calendar days,
// inclusive of both endpoints, for calendar UIs. Each appended day is an
// independent value, so callers may mutate the result freely.
func ExpandBlockedDates(bookings []models.Bid) []time.Time {
	var days []time.Time
	for i := range bookings {
		cursor := utils.StartOfDay(bookings[i].StartDate)
		end := utils.StartOfDay(bookings[i].EndDate)
		for !cursor.After(end) {
			days = append(days, cursor)
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return days
}
