package rental

import (
	"fmt"

	"github.com/driveshare/driveshare-backend/internal/models"
)

// allowBidTransition defines the bid state machine. Approved and rejected
// are terminal: re-touching them is a conflict, never a no-op, so callers
// learn the underlying state changed.
var allowBidTransition = map[models.BidStatus][]models.BidStatus{
	models.BidStatusPending:  {models.BidStatusApproved, models.BidStatusRejected},
	models.BidStatusApproved: {},
	models.BidStatusRejected: {},
}

// allowTripTransition defines the trip state machine of an approved
// booking. No skipping: each state is reachable only from its predecessor.
var allowTripTransition = map[models.TripStatus][]models.TripStatus{
	models.TripStatusApproved: {models.TripStatusStarted},
	models.TripStatusStarted:  {models.TripStatusEnded},
	models.TripStatusEnded:    {models.TripStatusReviewed},
	models.TripStatusReviewed: {},
}

// CanTransitionBid reports whether from -> to is an allowed bid transition.
func CanTransitionBid(from, to models.BidStatus) bool {
	for _, s := range allowBidTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionTrip reports whether from -> to is an allowed trip transition.
func CanTransitionTrip(from, to models.TripStatus) bool {
	for _, s := range allowTripTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyBidTransition moves a bid to the target status. Approval also seeds
// the trip state, turning the bid into a booking.
func ApplyBidTransition(b *models.Bid, to models.BidStatus) error {
	if b == nil {
		return fmt.Errorf("bid is nil")
	}
	if !CanTransitionBid(b.Status, to) {
		return &ConflictError{Reason: fmt.Sprintf("bid %d is already %s", b.ID, b.Status)}
	}
	b.Status = to
	if to == models.BidStatusApproved && b.TripStatus == "" {
		b.TripStatus = models.TripStatusApproved
	}
	return nil
}

// ApplyTripTransition moves an approved booking through its trip states.
func ApplyTripTransition(b *models.Bid, to models.TripStatus) error {
	if b == nil {
		return fmt.Errorf("bid is nil")
	}
	if b.Status != models.BidStatusApproved {
		return &InvalidStateError{Reason: fmt.Sprintf("bid %d is not an approved booking", b.ID)}
	}
	if !CanTransitionTrip(b.TripStatus, to) {
		return &InvalidStateError{Reason: fmt.Sprintf("booking %d cannot go from %s to %s", b.ID, b.TripStatus, to)}
	}
	b.TripStatus = to
	return nil
}
