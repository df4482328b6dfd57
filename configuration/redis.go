package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the redis server with a few retries and returns the
// client for injection into the controllers.
func InitRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	var client *redis.Client
	var err error
	MaxRetries := 5
	RetryDelay := time.Second * 5
	for i := 0; i < MaxRetries; i++ {
		client = redis.NewClient(&redis.Options{
			Network:  "tcp",
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})

		_, err = client.Ping(context.Background()).Result()
		if err == nil {
			return client, nil
		}

		fmt.Printf("Failed to connect to Redis (Attempt %d/%d): %s\n", i+1, MaxRetries, err.Error())
		time.Sleep(RetryDelay)
	}
	return nil, fmt.Errorf("failed to connect to Redis after multiple attempts: %w", err)
}
