package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/vmihailenco/msgpack/v5"
)

type (
	// MemoryStore keeps msgpack encoded records in bigcache. Strings are kept
	// byte for byte, invalid utf-8 included.
	MemoryStore struct {
		cache *bigcache.BigCache
	}
)

var (
	// records live as long as the process does
	forever = 100 * 365 * 24 * time.Hour
)

func NewMemoryStore() (*MemoryStore, error) {
	cfg := bigcache.DefaultConfig(forever)
	cfg.CleanWindow = 0
	cfg.HardMaxCacheSize = 0
	// a demo holds a handful of users, no need for the 1024 default shards
	cfg.Shards = 16
	cfg.MaxEntriesInWindow = 1024
	cfg.MaxEntrySize = 256
	cfg.Verbose = false
	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate memory store, cause %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

func (m *MemoryStore) Put(_ context.Context, rec UserRecord) error {
	buf, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("unable to encode user %v, cause %w", rec.ID, err)
	}
	return m.cache.Set(string(rec.ID), buf)
}

func (m *MemoryStore) Get(_ context.Context, id Token) (UserRecord, bool, error) {
	buf, err := m.cache.Get(string(id))
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return UserRecord{}, false, nil
	} else if err != nil {
		return UserRecord{}, false, fmt.Errorf("unable to lookup user %v, cause %w", id, err)
	}
	var rec UserRecord
	if err := msgpack.Unmarshal(buf, &rec); err != nil {
		return UserRecord{}, false, fmt.Errorf("unable to decode user %v, cause %w", id, err)
	}
	if rec.ID != id {
		// bigcache keys on a 64bit hash of the token, a different token
		// sharing the hash is not the one we are looking for
		return UserRecord{}, false, nil
	}
	return rec, true, nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (UserRecord, bool, error) {
	return m.scan(ctx, func(u UserRecord) bool {
		return u.Email == email
	})
}

func (m *MemoryStore) FindByCredentials(ctx context.Context, email, password string) (UserRecord, bool, error) {
	return m.scan(ctx, func(u UserRecord) bool {
		return u.Email == email && u.Password == password
	})
}

func (m *MemoryStore) Delete(_ context.Context, id Token) error {
	err := m.cache.Delete(string(id))
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("unable to delete user %v, cause %w", id, err)
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]UserRecord, error) {
	var out []UserRecord
	_, _, err := m.scan(ctx, func(u UserRecord) bool {
		out = append(out, u)
		return false
	})
	return out, err
}

func (m *MemoryStore) Close() error {
	return m.cache.Close()
}

// scan walks every entry until match returns true
func (m *MemoryStore) scan(_ context.Context, match func(UserRecord) bool) (UserRecord, bool, error) {
	it := m.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			// entry removed while iterating
			continue
		}
		var rec UserRecord
		if err := msgpack.Unmarshal(entry.Value(), &rec); err != nil {
			return UserRecord{}, false, fmt.Errorf("unable to decode entry %v, cause %w", entry.Key(), err)
		}
		if match(rec) {
			return rec, true, nil
		}
	}
	return UserRecord{}, false, nil
}
