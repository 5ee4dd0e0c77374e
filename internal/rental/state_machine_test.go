package rental

import (
	"errors"
	"testing"

	"github.com/driveshare/driveshare-backend/internal/models"
)

func TestBidTransitions(t *testing.T) {
	if !CanTransitionBid(models.BidStatusPending, models.BidStatusApproved) {
		t.Fatalf("expected pending -> approved allowed")
	}
	if !CanTransitionBid(models.BidStatusPending, models.BidStatusRejected) {
		t.Fatalf("expected pending -> rejected allowed")
	}
	if CanTransitionBid(models.BidStatusApproved, models.BidStatusRejected) {
		t.Fatalf("expected approved to be terminal")
	}
	if CanTransitionBid(models.BidStatusRejected, models.BidStatusApproved) {
		t.Fatalf("expected rejected to be terminal")
	}
	if CanTransitionBid(models.BidStatusApproved, models.BidStatusApproved) {
		t.Fatalf("expected re-approval to be disallowed, not a no-op")
	}
}

func TestApplyBidTransitionSeedsTripState(t *testing.T) {
	b := &models.Bid{Status: models.BidStatusPending}
	if err := ApplyBidTransition(b, models.BidStatusApproved); err != nil {
		t.Fatalf("ApplyBidTransition: %v", err)
	}
	if b.Status != models.BidStatusApproved {
		t.Fatalf("expected status approved, got %s", b.Status)
	}
	if b.TripStatus != models.TripStatusApproved {
		t.Fatalf("expected trip status approved, got %s", b.TripStatus)
	}

	err := ApplyBidTransition(b, models.BidStatusRejected)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError on terminal bid, got %v", err)
	}
}

func TestTripTransitionsDoNotSkip(t *testing.T) {
	if !CanTransitionTrip(models.TripStatusApproved, models.TripStatusStarted) {
		t.Fatalf("expected approved -> started allowed")
	}
	if CanTransitionTrip(models.TripStatusApproved, models.TripStatusEnded) {
		t.Fatalf("expected approved -> ended disallowed")
	}
	if CanTransitionTrip(models.TripStatusStarted, models.TripStatusReviewed) {
		t.Fatalf("expected started -> reviewed disallowed")
	}
	if CanTransitionTrip(models.TripStatusReviewed, models.TripStatusStarted) {
		t.Fatalf("expected reviewed to be terminal")
	}
}

func TestApplyTripTransitionRequiresApprovedBid(t *testing.T) {
	b := &models.Bid{Status: models.BidStatusPending}
	err := ApplyTripTransition(b, models.TripStatusStarted)
	var invalid *InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError for pending bid, got %v", err)
	}

	b = &models.Bid{Status: models.BidStatusApproved, TripStatus: models.TripStatusApproved}
	if err := ApplyTripTransition(b, models.TripStatusStarted); err != nil {
		t.Fatalf("ApplyTripTransition: %v", err)
	}
	if err := ApplyTripTransition(b, models.TripStatusReviewed); err == nil {
		t.Fatalf("expected shortcut started -> reviewed to fail")
	}
}
