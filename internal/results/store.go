package results

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/flashquiz/internal/store"
)

// MaxRecords is how many records are kept per user; older ones are dropped.
const MaxRecords = 50

const (
	keyPrefix = "quizRecords_"
	legacyKey = "quizRecords"
)

// UserResolver resolves the current user's identifier.
type UserResolver interface {
	UserID(ctx context.Context) (string, bool)
}

// Store keeps each user's quiz history in device-local storage as a JSON
// array, newest last. Failures are logged and reported as empty/false
// because history is not required for playing.
type Store struct {
	kv     store.KV
	users  UserResolver
	logger *slog.Logger
}

// NewStore creates a Store. A nil logger discards log output.
func NewStore(kv store.KV, users UserResolver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, users: users, logger: logger}
}

// Key returns the storage key for userID.
func Key(userID string) string {
	return keyPrefix + userID
}

// Append adds rec to the end of the current user's list, keeping only the
// most recent MaxRecords. It reports whether the write succeeded.
func (s *Store) Append(ctx context.Context, rec Record) bool {
	userID, ok := s.users.UserID(ctx)
	if !ok {
		s.logger.Warn("quiz record not saved: no signed-in user", "set", rec.SetID)
		return false
	}

	records, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Error("quiz record not saved: history unreadable", "user", userID, "set", rec.SetID, "err", err)
		return false
	}
	records = append(records, rec)
	if len(records) > MaxRecords {
		records = records[len(records)-MaxRecords:]
	}

	if err := s.write(ctx, Key(userID), records); err != nil {
		s.logger.Error("save quiz record", "user", userID, "set", rec.SetID, "err", err)
		return false
	}
	s.logger.Info("quiz record saved", "user", userID, "id", rec.ID, "count", len(records))
	return true
}

// LoadAll returns the current user's records, oldest first. If the user has
// no list yet and a list from before records were kept per user exists, that
// list is moved into the user's slot first.
func (s *Store) LoadAll(ctx context.Context) []Record {
	userID, ok := s.users.UserID(ctx)
	if !ok {
		return []Record{}
	}
	records, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Error("load quiz records", "user", userID, "err", err)
		return []Record{}
	}
	return records
}

// load reads userID's records, migrating the legacy list when the user has
// none. Read failures are returned so callers never overwrite a list they
// could not read.
func (s *Store) load(ctx context.Context, userID string) ([]Record, error) {
	key := Key(userID)
	raw, found, err := s.kv.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if found {
		return s.decode(raw, key), nil
	}
	return s.migrateLegacy(ctx, key)
}

// Clear removes the current user's records.
func (s *Store) Clear(ctx context.Context) bool {
	userID, ok := s.users.UserID(ctx)
	if !ok {
		return false
	}
	if err := s.kv.RemoveItem(ctx, Key(userID)); err != nil {
		s.logger.Error("clear quiz records", "user", userID, "err", err)
		return false
	}
	return true
}

// ClearAll removes every user's records and the legacy shared list. It
// returns how many lists were removed and whether all removals succeeded.
func (s *Store) ClearAll(ctx context.Context) (int, bool) {
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		s.logger.Error("list quiz record keys", "err", err)
		return 0, false
	}
	if _, found, err := s.kv.GetItem(ctx, legacyKey); err == nil && found {
		keys = append(keys, legacyKey)
	}

	removed, ok := 0, true
	for _, key := range keys {
		if err := s.kv.RemoveItem(ctx, key); err != nil {
			s.logger.Error("clear quiz records", "key", key, "err", err)
			ok = false
			continue
		}
		removed++
	}
	s.logger.Info("cleared all quiz records", "count", removed)
	return removed, ok
}

func (s *Store) migrateLegacy(ctx context.Context, key string) ([]Record, error) {
	raw, found, err := s.kv.GetItem(ctx, legacyKey)
	if err != nil {
		return nil, fmt.Errorf("read legacy records: %w", err)
	}
	if !found {
		return []Record{}, nil
	}

	records := s.decode(raw, legacyKey)
	if err := s.write(ctx, key, records); err != nil {
		s.logger.Error("migrate legacy quiz records", "err", err)
		return records, nil
	}
	if err := s.kv.RemoveItem(ctx, legacyKey); err != nil {
		s.logger.Error("remove legacy quiz records", "err", err)
	}
	s.logger.Info("migrated legacy quiz records", "key", key, "count", len(records))
	return records, nil
}

func (s *Store) decode(raw, key string) []Record {
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Error("decode quiz records", "key", key, "err", err)
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

func (s *Store) write(ctx context.Context, key string, records []Record) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.SetItem(ctx, key, string(b))
}
