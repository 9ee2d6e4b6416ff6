// Package moodlog reads and writes the app's collections in the key-value
// store: mood history, completed exercises, custom exercises and the trusted
// contact. Display reads never fail; corrupt or missing data comes back
// empty and is logged. Writes return wrapped errors, and a write whose base
// cannot be read is not attempted.
package moodlog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sadopc/calma/internal/contact"
	"github.com/sadopc/calma/internal/exercise"
	"github.com/sadopc/calma/internal/mood"
	"github.com/sadopc/calma/internal/store"
	"go.uber.org/zap"
)

// Storage keys.
const (
	KeyHistory         = "emotionHistory"
	KeyCompleted       = "completedExercises"
	KeyCustomExercises = "customExercises"
	KeyTrustedName     = "trustedName"
	KeyTrustedPhone    = "trustedPhone"
)

// Log is the typed adapter over a store.KV. Every read-modify-write of a key
// holds that key's lock, so concurrent callers never lose each other's
// writes.
type Log struct {
	kv  store.KV
	log *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(kv store.KV, log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{kv: kv, log: log, locks: make(map[string]*sync.Mutex)}
}

func (l *Log) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// read returns the raw value for key. Missing keys and backend failures both
// come back as ok=false; failures are logged.
func (l *Log) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		l.log.Warn("read failed, using empty value", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

// readBase is the read half of a read-modify-write: a backend failure is
// returned instead of being treated as an empty collection.
func (l *Log) readBase(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return v, ok, nil
}

func (l *Log) writeJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := l.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// decodeArray splits a stored JSON array into its elements. A document that
// is not an array yields nil.
func (l *Log) decodeArray(key, raw string) []json.RawMessage {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		l.log.Warn("malformed collection, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return elems
}

// ==================== Mood history ====================

// LoadHistory returns the stored history in stored order. Elements with a bad
// date or unknown emotion are dropped; for duplicate dates the first wins.
func (l *Log) LoadHistory(ctx context.Context) []mood.Entry {
	raw, ok := l.read(ctx, KeyHistory)
	return l.parseHistory(raw, ok)
}

func (l *Log) parseHistory(raw string, ok bool) []mood.Entry {
	if !ok {
		return []mood.Entry{}
	}
	elems := l.decodeArray(KeyHistory, raw)
	out := make([]mood.Entry, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for i, el := range elems {
		var e mood.Entry
		if err := json.Unmarshal(el, &e); err != nil {
			l.log.Warn("dropping history element", zap.Int("index", i), zap.Error(err))
			continue
		}
		if _, err := time.Parse(mood.DateLayout, e.Date); err != nil {
			l.log.Warn("dropping history element with bad date", zap.Int("index", i), zap.String("date", e.Date))
			continue
		}
		if !e.Emotion.Valid() {
			l.log.Warn("dropping history element with unknown emotion", zap.Int("index", i), zap.String("emotion", string(e.Emotion)))
			continue
		}
		if seen[e.Date] {
			l.log.Warn("dropping duplicate history date", zap.String("date", e.Date))
			continue
		}
		seen[e.Date] = true
		out = append(out, e)
	}
	return out
}

// UpsertToday replaces any entry for today with emotion, puts it first and
// persists the whole collection. It returns the updated history.
func (l *Log) UpsertToday(ctx context.Context, emotion mood.Emotion, today string) ([]mood.Entry, error) {
	if !emotion.Valid() {
		return nil, fmt.Errorf("upsert entry: %w: %q", mood.ErrUnknownEmotion, emotion)
	}
	if _, err := time.Parse(mood.DateLayout, today); err != nil {
		return nil, fmt.Errorf("upsert entry: bad date %q: %w", today, err)
	}

	unlock := l.lock(KeyHistory)
	defer unlock()

	raw, ok, err := l.readBase(ctx, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}
	current := l.parseHistory(raw, ok)
	updated := make([]mood.Entry, 0, len(current)+1)
	updated = append(updated, mood.Entry{Date: today, Emotion: emotion})
	for _, e := range current {
		if e.Date != today {
			updated = append(updated, e)
		}
	}
	if err := l.writeJSON(ctx, KeyHistory, updated); err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}
	l.log.Info("mood recorded", zap.String("date", today), zap.String("emotion", string(emotion)))
	return updated, nil
}

// ClearAll deletes the whole mood history. Completed exercises are kept.
func (l *Log) ClearAll(ctx context.Context) error {
	unlock := l.lock(KeyHistory)
	defer unlock()
	if err := l.kv.Remove(ctx, KeyHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	l.log.Info("mood history cleared")
	return nil
}

// ==================== Completed exercises ====================

// LoadCompleted returns completed exercise ids in completion order.
func (l *Log) LoadCompleted(ctx context.Context) []string {
	raw, ok := l.read(ctx, KeyCompleted)
	return l.parseCompleted(raw, ok)
}

func (l *Log) parseCompleted(raw string, ok bool) []string {
	if !ok {
		return []string{}
	}
	elems := l.decodeArray(KeyCompleted, raw)
	out := make([]string, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for i, el := range elems {
		var id string
		if err := json.Unmarshal(el, &id); err != nil || id == "" {
			l.log.Warn("dropping completed exercise element", zap.Int("index", i))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// MarkExerciseCompleted adds id to the completed set. Adding an id that is
// already present does not write.
func (l *Log) MarkExerciseCompleted(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("mark completed: %w: empty id", exercise.ErrUnknownExercise)
	}
	unlock := l.lock(KeyCompleted)
	defer unlock()

	raw, ok, err := l.readBase(ctx, KeyCompleted)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	ids := l.parseCompleted(raw, ok)
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	if err := l.writeJSON(ctx, KeyCompleted, append(ids, id)); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	l.log.Info("exercise completed", zap.String("id", id))
	return nil
}

// ==================== Custom exercises ====================

// LoadCustomExercises returns the user's exercises, skipping any that no
// longer validate.
func (l *Log) LoadCustomExercises(ctx context.Context) []exercise.Custom {
	raw, ok := l.read(ctx, KeyCustomExercises)
	return l.parseCustom(raw, ok)
}

func (l *Log) parseCustom(raw string, ok bool) []exercise.Custom {
	if !ok {
		return []exercise.Custom{}
	}
	elems := l.decodeArray(KeyCustomExercises, raw)
	out := make([]exercise.Custom, 0, len(elems))
	for i, el := range elems {
		var c exercise.Custom
		if err := json.Unmarshal(el, &c); err != nil {
			l.log.Warn("dropping custom exercise element", zap.Int("index", i), zap.Error(err))
			continue
		}
		if err := c.Validate(); err != nil {
			l.log.Warn("dropping invalid custom exercise", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, c)
	}
	return out
}

// SaveCustomExercise validates c and appends it.
func (l *Log) SaveCustomExercise(ctx context.Context, c exercise.Custom) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("save custom exercise: %w", err)
	}
	unlock := l.lock(KeyCustomExercises)
	defer unlock()

	raw, ok, err := l.readBase(ctx, KeyCustomExercises)
	if err != nil {
		return fmt.Errorf("save custom exercise: %w", err)
	}
	all := append(l.parseCustom(raw, ok), c)
	if err := l.writeJSON(ctx, KeyCustomExercises, all); err != nil {
		return fmt.Errorf("save custom exercise: %w", err)
	}
	l.log.Info("custom exercise saved", zap.String("id", c.ID), zap.String("title", c.Title))
	return nil
}

// FindCustomExercise looks up a custom exercise by id.
func (l *Log) FindCustomExercise(ctx context.Context, id string) (exercise.Custom, bool) {
	for _, c := range l.LoadCustomExercises(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return exercise.Custom{}, false
}

// ==================== Trusted contact ====================

func (l *Log) lockContact() func() {
	unlockName := l.lock(KeyTrustedName)
	unlockPhone := l.lock(KeyTrustedPhone)
	return func() {
		unlockPhone()
		unlockName()
	}
}

// LoadContact returns the trusted contact. ok is false unless both fields
// are stored.
func (l *Log) LoadContact(ctx context.Context) (contact.Contact, bool) {
	unlock := l.lockContact()
	defer unlock()

	name, okName := l.read(ctx, KeyTrustedName)
	phone, okPhone := l.read(ctx, KeyTrustedPhone)
	if !okName || !okPhone {
		return contact.Contact{}, false
	}
	return contact.Contact{Name: name, Phone: phone}, true
}

// SaveContact validates c before touching the store, then writes both
// fields together.
func (l *Log) SaveContact(ctx context.Context, c contact.Contact) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	unlock := l.lockContact()
	defer unlock()

	err := l.kv.SetMany(ctx, map[string]string{
		KeyTrustedName:  c.Name,
		KeyTrustedPhone: c.Phone,
	})
	if err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	l.log.Info("trusted contact saved")
	return nil
}

// ClearContact removes both contact fields in one call.
func (l *Log) ClearContact(ctx context.Context) error {
	unlock := l.lockContact()
	defer unlock()
	if err := l.kv.RemoveMany(ctx, KeyTrustedName, KeyTrustedPhone); err != nil {
		return fmt.Errorf("clear contact: %w", err)
	}
	l.log.Info("trusted contact cleared")
	return nil
}
