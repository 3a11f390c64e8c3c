package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("entity not found")

// Entity is the minimal contract a persisted record must satisfy.
type Entity interface {
	EntityID() string
	EntityDate() string
}

// Collection stores one entity type as a single JSON array under one key of
// the medium. Every mutation is a full read-modify-write cycle, so a failed
// write leaves the durable state exactly as it was.
//
// Insertion order of the persisted array is an implementation detail;
// callers must not rely on List preserving it across save/load cycles.
type Collection[T Entity] struct {
	medium Medium
	key    string
	withID func(T, string) T
	newID  func() string
}

// NewCollection creates a collection persisted under the given key. withID
// must return a copy of the entity with the id set; the collection never
// mutates entities in place.
func NewCollection[T Entity](medium Medium, key string, withID func(T, string) T) *Collection[T] {
	return &Collection[T]{
		medium: medium,
		key:    key,
		withID: withID,
		newID:  uuid.NewString,
	}
}

// List returns all entities in the collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// Add assigns a fresh unique id, appends the entity, and persists the
// collection. The stored entity is returned.
func (c *Collection[T]) Add(ctx context.Context, entity T) (T, error) {
	var zero T
	entities, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	stored := c.withID(entity, c.newID())
	if err := c.save(ctx, append(entities, stored)); err != nil {
		return zero, err
	}
	return stored, nil
}

// Update replaces the whole record with the same id and persists. Returns
// ErrNotFound when no entity with that id exists.
func (c *Collection[T]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	entities, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	found := false
	for i, existing := range entities {
		if existing.EntityID() == entity.EntityID() {
			entities[i] = entity
			found = true
			break
		}
	}
	if !found {
		return zero, fmt.Errorf("update %q: %w", entity.EntityID(), ErrNotFound)
	}

	if err := c.save(ctx, entities); err != nil {
		return zero, err
	}
	return entity, nil
}

// Delete removes the entity with the given id and persists. Returns
// ErrNotFound when the id is absent.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	entities, err := c.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]T, 0, len(entities))
	found := false
	for _, existing := range entities {
		if existing.EntityID() == id {
			found = true
			continue
		}
		remaining = append(remaining, existing)
	}
	if !found {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}

	return c.save(ctx, remaining)
}

// FindByDate returns all entities on the given YYYY-MM-DD day.
func (c *Collection[T]) FindByDate(ctx context.Context, date string) ([]T, error) {
	return c.FindByDateRange(ctx, date, date)
}

// FindByDateRange returns all entities whose day falls within [from, to],
// inclusive. YYYY-MM-DD strings compare correctly as plain strings.
func (c *Collection[T]) FindByDateRange(ctx context.Context, from, to string) ([]T, error) {
	entities, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]T, 0, len(entities))
	for _, entity := range entities {
		if date := entity.EntityDate(); date >= from && date <= to {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.medium.Read(ctx, c.key)
	if err != nil {
		pe := &PersistenceError{Op: "read", Key: c.key, Err: err}
		log.Error(pe)
		return nil, pe
	}
	if !ok {
		return []T{}, nil
	}

	var entities []T
	if err := json.Unmarshal([]byte(raw), &entities); err != nil {
		pe := &PersistenceError{Op: "decode", Key: c.key, Err: err}
		log.Error(pe)
		return nil, pe
	}
	if entities == nil {
		entities = []T{}
	}
	return entities, nil
}

func (c *Collection[T]) save(ctx context.Context, entities []T) error {
	raw, err := json.Marshal(entities)
	if err != nil {
		pe := &PersistenceError{Op: "encode", Key: c.key, Err: err}
		log.Error(pe)
		return pe
	}
	if err := c.medium.Write(ctx, c.key, string(raw)); err != nil {
		pe := &PersistenceError{Op: "write", Key: c.key, Err: err}
		log.Error(pe)
		return pe
	}
	return nil
}
