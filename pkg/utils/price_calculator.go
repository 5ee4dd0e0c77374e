package utils

import (
	"math"
	"time"
)

// SettlementResult contains the calculated settlement and breakdown
type SettlementResult struct {
	Total     float64             `json:"total"`
	Breakdown SettlementBreakdown `json:"breakdown"`
}

// SettlementBreakdown provides detailed settlement breakdown
type SettlementBreakdown struct {
	RentalAmount float64 `json:"rentalAmount"`
	OverageFine  float64 `json:"overageFine"`
	AddOnTotal   float64 `json:"addOnTotal"`
	PlatformFee  float64 `json:"platformFee"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

const (
	// Platform bid bounds in KES
	MinBidAmount = 500.0
	MaxBidAmount = 100000.0

	// Trip distance allowance and per-km fine beyond it
	DistanceAllowanceKm = 300.0
	OverageFinePerKm    = 10.0

	millisPerDay = 86400000
)

// RentalDays returns the number of charged days for an inclusive date
// range. A single-day rental (start == end) charges one day, not zero.
// Returns 0 for missing dates or end before start.
func RentalDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	s := StartOfDay(start)
	e := StartOfDay(end)
	if e.Before(s) {
		return 0
	}
	days := int(math.Ceil(float64(e.Sub(s).Milliseconds()) / float64(millisPerDay)))
	return days + 1
}

// CalculateRentalAmount computes the day-inclusive rental total. It never
// fails: missing dates or a non-finite rate yield 0, because the UI calls
// this speculatively while booking forms are incomplete.
func CalculateRentalAmount(start, end time.Time, dailyRate float64) float64 {
	if math.IsNaN(dailyRate) || math.IsInf(dailyRate, 0) {
		return 0
	}
	days := RentalDays(start, end)
	if days == 0 {
		return 0
	}
	return float64(days) * dailyRate
}

// CalculateOverageFine charges for trip distance beyond the allowance.
// Unset readings (negative start) or an end below start yield 0; the
// lifecycle validates readings before settlement.
func CalculateOverageFine(startOdometer, endOdometer float64) float64 {
	if startOdometer < 0 || endOdometer < startOdometer {
		return 0
	}
	distance := endOdometer - startOdometer
	if distance <= DistanceAllowanceKm {
		return 0
	}
	return (distance - DistanceAllowanceKm) * OverageFinePerKm
}

// CalculateSettlement applies the canonical charge order:
// subtotal(rental + fine) -> +add-ons -> x(1+fee%) -> x(1+tax%).
// Both the price preview endpoint and trip finalization call this exact
// function so the quoted and charged totals cannot diverge.
func CalculateSettlement(rentalAmount, overageFine float64, addOnPrices []float64, feePercent, taxPercent float64) SettlementResult {
	var addOnTotal float64
	for _, p := range addOnPrices {
		addOnTotal += p
	}

	subtotal := rentalAmount + overageFine + addOnTotal
	fee := subtotal * feePercent / 100
	tax := (subtotal + fee) * taxPercent / 100
	total := subtotal + fee + tax

	// Round to 2 decimal places
	round := func(v float64) float64 { return math.Round(v*100) / 100 }

	return SettlementResult{
		Total: round(total),
		Breakdown: SettlementBreakdown{
			RentalAmount: round(rentalAmount),
			OverageFine:  round(overageFine),
			AddOnTotal:   round(addOnTotal),
			PlatformFee:  round(fee),
			Tax:          round(tax),
			Total:        round(total),
		},
	}
}
