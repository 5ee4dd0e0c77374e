package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

const (
	calendarTTL = time.Hour
	presenceTTL = 2 * time.Hour
)

func calendarKey(vehicleID uint) string {
	return fmt.Sprintf("vehicle:calendar:%d", vehicleID)
}

// SetCachedBlockedDates stores a vehicle's blocked-date list
func SetCachedBlockedDates(ctx context.Context, vehicleID uint, days []time.Time) error {
	data, err := json.Marshal(days)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, calendarKey(vehicleID), data, calendarTTL).Err()
}

// GetCachedBlockedDates retrieves a vehicle's blocked-date list
func GetCachedBlockedDates(ctx context.Context, vehicleID uint) ([]time.Time, error) {
	data, err := RedisClient.Get(ctx, calendarKey(vehicleID)).Result()
	if err != nil {
		return nil, err
	}

	var days []time.Time
	if err := json.Unmarshal([]byte(data), &days); err != nil {
		return nil, err
	}
	return days, nil
}

// InvalidateBlockedDates drops the cached calendar. The cache lives in
// Redis itself, so deleting the key invalidates for every instance.
func InvalidateBlockedDates(ctx context.Context, vehicleID uint) error {
	return RedisClient.Del(ctx, calendarKey(vehicleID)).Err()
}

// SetUserOnline records user presence, keyed by user rather than held in
// process memory so every instance sees the same state
func SetUserOnline(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("presence:user:%d", userID)
	return RedisClient.Set(ctx, key, "online", presenceTTL).Err()
}

// SetUserOffline clears user presence
func SetUserOffline(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("presence:user:%d", userID)
	return RedisClient.Del(ctx, key).Err()
}

// IsUserOnline checks user presence
func IsUserOnline(ctx context.Context, userID uint) (bool, error) {
	key := fmt.Sprintf("presence:user:%d", userID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result == "online", nil
}

// PublishBookingUpdate publishes booking state changes to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bidID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"bidId":     bidID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}
