package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound indicates the cart session does not exist or has expired.
var ErrNotFound = errors.New("cart: not found")

// Store persists cart sessions in Redis as JSON. Every save refreshes the
// session TTL.
type Store struct {
	R   *redis.Client
	TTL time.Duration
	Now func() time.Time
}

func (s Store) ttl() time.Duration {
	if s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func cartKey(id string) string {
	return "cart:session:" + id
}

// Create initialises an empty cart session.
func (s Store) Create(ctx context.Context) (State, error) {
	if s.R == nil {
		return State{}, errors.New("cart: store not configured")
	}
	now := s.now()
	state := State{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := s.save(ctx, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Get loads a cart session.
func (s Store) Get(ctx context.Context, id string) (State, error) {
	if s.R == nil {
		return State{}, errors.New("cart: store not configured")
	}
	data, err := s.R.Get(ctx, cartKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return State{}, ErrNotFound
		}
		return State{}, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Save writes the session back, stamping UpdatedAt and refreshing the TTL.
func (s Store) Save(ctx context.Context, state *State) error {
	if s.R == nil {
		return errors.New("cart: store not configured")
	}
	return s.save(ctx, state)
}

func (s Store) save(ctx context.Context, state *State) error {
	state.UpdatedAt = s.now()
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, cartKey(state.ID), data, s.ttl()).Err()
}

// Delete removes a session outright.
func (s Store) Delete(ctx context.Context, id string) error {
	if s.R == nil {
		return errors.New("cart: store not configured")
	}
	return s.R.Del(ctx, cartKey(id)).Err()
}
