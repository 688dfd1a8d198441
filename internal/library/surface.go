package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	redis "github.com/redis/go-redis/v9"

	"github.com/ziadkadry99/poe2genie/internal/db"
)

//go:generate mockgen -destination=mock/mock_surface.go -package=librarymock github.com/ziadkadry99/poe2genie/internal/library Surface

// Surface is a string key-value store. ok is false when the key was never
// written.
type Surface interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemorySurface keeps values in process memory.
type MemorySurface struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySurface returns an empty in-memory surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{values: make(map[string]string)}
}

func (m *MemorySurface) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySurface) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SQLiteSurface stores values in the kv_store table.
type SQLiteSurface struct {
	db *db.DB
}

// NewSQLiteSurface returns a surface backed by database.
func NewSQLiteSurface(database *db.DB) *SQLiteSurface {
	return &SQLiteSurface{db: database}
}

func (s *SQLiteSurface) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteSurface) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// RedisSurface stores values as plain Redis strings without expiry.
type RedisSurface struct {
	client redis.UniversalClient
}

// NewRedisSurface returns a surface backed by client.
func NewRedisSurface(client redis.UniversalClient) *RedisSurface {
	return &RedisSurface{client: client}
}

func (r *RedisSurface) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisSurface) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
