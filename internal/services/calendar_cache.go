package services

import (
	"context"
	"log"
	"time"
)

// RedisCalendarCache adapts the Redis blocked-date cache to the rental
// engine. Misses and errors both read as cold cache; the index is always
// recomputable from the store.
type RedisCalendarCache struct{}

func (RedisCalendarCache) Get(ctx context.Context, vehicleID uint) ([]time.Time, bool) {
	days, err := GetCachedBlockedDates(ctx, vehicleID)
	if err != nil {
		return nil, false
	}
	return days, true
}

func (RedisCalendarCache) Set(ctx context.Context, vehicleID uint, days []time.Time) {
	if err := SetCachedBlockedDates(ctx, vehicleID, days); err != nil {
		log.Printf("Failed to cache calendar for vehicle %d: %v", vehicleID, err)
	}
}

func (RedisCalendarCache) Invalidate(ctx context.Context, vehicleID uint) {
	if err := InvalidateBlockedDates(ctx, vehicleID); err != nil {
		log.Printf("Failed to invalidate calendar for vehicle %d: %v", vehicleID, err)
	}
}
