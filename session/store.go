package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"blog-service/models"

	"github.com/umakantv/go-utils/cache"
)

const sessionKeyPrefix = "session:"

// ErrNoSession is returned when a session id is unknown or expired
var ErrNoSession = errors.New("session not found")

// Store persists the identity behind a session id
type Store interface {
	Save(ctx context.Context, id string, identity models.Identity, ttl time.Duration) error
	Load(ctx context.Context, id string) (models.Identity, error)
	Delete(ctx context.Context, id string) error
}

// CacheStore keeps sessions in the shared cache (redis in production)
type CacheStore struct {
	cache cache.Cache
}

// NewCacheStore wraps an initialized cache
func NewCacheStore(c cache.Cache) *CacheStore {
	return &CacheStore{cache: c}
}

// Save stores the identity as JSON under session:<id>
func (s *CacheStore) Save(ctx context.Context, id string, identity models.Identity, ttl time.Duration) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(sessionKeyPrefix+id, string(payload), ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Load reads the identity back. The cache hands the JSON string back as a
// string; a payload written as an object by another writer comes back as a map.
func (s *CacheStore) Load(ctx context.Context, id string) (models.Identity, error) {
	raw, err := s.cache.Get(sessionKeyPrefix + id)
	if errors.Is(err, cache.ErrKeyNotFound) || (err == nil && raw == nil) {
		return models.Identity{}, ErrNoSession
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("read session: %w", err)
	}

	var identity models.Identity
	switch v := raw.(type) {
	case string:
		err = json.Unmarshal([]byte(v), &identity)
	case []byte:
		err = json.Unmarshal(v, &identity)
	case map[string]interface{}:
		identity, err = identityFromMap(v)
	default:
		err = fmt.Errorf("unexpected session type %T", raw)
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("decode session: %w", err)
	}
	if identity.UserID == 0 {
		return models.Identity{}, ErrNoSession
	}
	return identity, nil
}

// Delete drops the session key
func (s *CacheStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(sessionKeyPrefix + id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func identityFromMap(m map[string]interface{}) (models.Identity, error) {
	var identity models.Identity
	switch uid := m["user_id"].(type) {
	case float64:
		identity.UserID = int64(uid)
	case int:
		identity.UserID = int64(uid)
	case int64:
		identity.UserID = uid
	case json.Number:
		n, err := uid.Int64()
		if err != nil {
			return models.Identity{}, err
		}
		identity.UserID = n
	default:
		return models.Identity{}, errors.New("invalid user_id in session")
	}
	identity.Email, _ = m["email"].(string)
	return identity, nil
}

type memoryEntry struct {
	identity models.Identity
	expires  time.Time
}

// MemoryStore keeps sessions in a map for the lifetime of the process
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates an empty in-process session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, id string, identity models.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{identity: identity, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return models.Identity{}, ErrNoSession
	}
	if !s.now().Before(entry.expires) {
		delete(s.sessions, id)
		return models.Identity{}, ErrNoSession
	}
	return entry.identity, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
