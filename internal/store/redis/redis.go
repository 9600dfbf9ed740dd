// Package redis implements an attribute store backed by Redis. It acts as a
// shared side-table for instances whose cached attributes must be visible
// across processes; each instance gets its own key prefix.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vnykmshr/propcache-go/internal/store"
)

// Encoding selects how attribute values are serialized for Redis.
type Encoding string

const (
	// EncodingJSON serializes values with encoding/json (default).
	EncodingJSON Encoding = "json"

	// EncodingMsgpack serializes values with msgpack, which is denser and
	// round-trips more Go types than JSON.
	EncodingMsgpack Encoding = "msgpack"
)

// Config holds Redis store configuration.
type Config struct {
	// Client is the Redis client to use.
	Client redis.Cmdable

	// KeyPrefix is prepended to all attribute names. It should identify both
	// the class and the owning instance, e.g. "propcache:Player:<id>:".
	KeyPrefix string

	// Encoding selects the value serialization. Default: EncodingJSON.
	Encoding Encoding

	// Context for Redis operations.
	Context context.Context
}

// serializedAttr is an attribute value as stored in Redis.
type serializedAttr struct {
	Value     any       `json:"value" msgpack:"value"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}

// Store implements a Redis-backed attribute store.
type Store struct {
	client    redis.Cmdable
	keyPrefix string
	encoding  Encoding
	ctx       context.Context
}

// New creates a new Redis attribute store with the given configuration.
func New(config *Config) (*Store, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}

	encoding := config.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}
	if encoding != EncodingJSON && encoding != EncodingMsgpack {
		return nil, fmt.Errorf("unsupported encoding: %q", encoding)
	}

	keyPrefix := config.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "propcache:"
	}

	return &Store{
		client:    config.Client,
		keyPrefix: keyPrefix,
		encoding:  encoding,
		ctx:       ctx,
	}, nil
}

// Get retrieves the cached value for an attribute name.
func (s *Store) Get(name string) (any, bool) {
	result := s.client.Get(s.ctx, s.buildKey(name))
	if result.Err() != nil {
		// redis.Nil and transport errors are both treated as a miss;
		// the descriptor will recompute.
		return nil, false
	}

	data, err := result.Bytes()
	if err != nil {
		return nil, false
	}

	attr, err := s.decode(data)
	if err != nil {
		// Remove the corrupted key so it does not shadow future writes.
		s.client.Del(s.ctx, s.buildKey(name))
		return nil, false
	}

	return attr.Value, true
}

// Set caches a value under an attribute name.
func (s *Store) Set(name string, value any) error {
	data, err := s.encode(&serializedAttr{Value: value, CreatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to serialize attribute %q: %w", name, err)
	}

	return s.client.Set(s.ctx, s.buildKey(name), data, 0).Err()
}

// Delete removes the cached value for an attribute name.
func (s *Store) Delete(name string) error {
	return s.client.Del(s.ctx, s.buildKey(name)).Err()
}

// Keys returns the attribute names currently cached for this instance prefix.
func (s *Store) Keys() []string {
	result := s.client.Keys(s.ctx, s.buildKey("*"))
	if result.Err() != nil {
		return []string{}
	}

	redisKeys, err := result.Result()
	if err != nil {
		return []string{}
	}

	names := make([]string, 0, len(redisKeys))
	for _, redisKey := range redisKeys {
		if name := s.extractName(redisKey); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of cached attributes.
func (s *Store) Len() int {
	return len(s.Keys())
}

// Clear removes every cached attribute under this instance prefix.
func (s *Store) Clear() error {
	result := s.client.Keys(s.ctx, s.buildKey("*"))
	if result.Err() != nil {
		return result.Err()
	}

	keys, err := result.Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return s.client.Del(s.ctx, keys...).Err()
	}
	return nil
}

// Close clears the store's data. Client lifecycle is owned by the caller.
func (s *Store) Close() error {
	return s.Clear()
}

// buildKey creates a Redis key with the configured instance prefix.
func (s *Store) buildKey(name string) string {
	return s.keyPrefix + name
}

// extractName extracts the attribute name from a Redis key.
func (s *Store) extractName(redisKey string) string {
	if !strings.HasPrefix(redisKey, s.keyPrefix) {
		return ""
	}
	return strings.TrimPrefix(redisKey, s.keyPrefix)
}

func (s *Store) encode(attr *serializedAttr) ([]byte, error) {
	if s.encoding == EncodingMsgpack {
		return msgpack.Marshal(attr)
	}
	return json.Marshal(attr)
}

func (s *Store) decode(data []byte) (*serializedAttr, error) {
	var attr serializedAttr
	var err error
	if s.encoding == EncodingMsgpack {
		err = msgpack.Unmarshal(data, &attr)
	} else {
		err = json.Unmarshal(data, &attr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize attribute: %w", err)
	}
	return &attr, nil
}

var _ store.Store = (*Store)(nil)
