package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	session_constants "Tally/constants/session"
	"Tally/models"
	redis_utils "Tally/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Save stores the full code->session mapping as one JSON snapshot.
// Key: "sessions:snapshot", TTL: the session retention window, so the data
// of an abandoned deployment ages out on its own.
func (rc *RedisClient) Save(sessions map[string]*models.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("error marshaling session snapshot: %v", err)
	}
	key := redis_utils.FormatSnapshotKey()
	return rc.Client.Set(rc.Ctx, key, data, session_constants.SessionTTL).Err()
}

// Load retrieves the last-written snapshot. A missing key is not an error,
// it just means a fresh deployment: an empty mapping is returned.
func (rc *RedisClient) Load() (map[string]*models.Session, error) {
	key := redis_utils.FormatSnapshotKey()
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return make(map[string]*models.Session), nil
		}
		return nil, fmt.Errorf("error getting session snapshot: %v", err)
	}

	var sessions map[string]*models.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("error unmarshaling session snapshot: %v", err)
	}
	if sessions == nil {
		sessions = make(map[string]*models.Session)
	}
	return sessions, nil
}

// DeleteSnapshot removes the persisted snapshot key.
func (rc *RedisClient) DeleteSnapshot() error {
	key := redis_utils.FormatSnapshotKey()
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting session snapshot: %v", err)
	}
	return nil
}
