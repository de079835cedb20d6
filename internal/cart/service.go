package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brewlinehq/storefront-backend/internal/catalog"
	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
	"github.com/brewlinehq/storefront-backend/pkg/redis"
)

// Store is the key-value persistence port the cart writes through on every
// mutation. Injected so tests can swap the Redis client for a map.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Service owns the in-session cart. Reads are forgiving: a missing or
// malformed payload is treated as an empty cart, never surfaced as an error.
// Mutations are not: a store outage during the read-modify-write fails the
// mutation instead of persisting an empty view over the saved lines.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddLine(ctx context.Context, sessionID string, product catalog.Product, quantity int, color string) (*Cart, error)
	RemoveLine(ctx context.Context, sessionID string, productID int) (*Cart, error)
	SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store Store
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds the cart store over the given persistence port.
func NewService(store Store, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store, ttl: ttl, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		// A read outage renders as an empty cart; nothing is written back.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "cart store unreachable, serving empty cart")
		}
		return &Cart{Lines: []Line{}}, nil
	}
	return cart, nil
}

func (s *service) AddLine(ctx context.Context, sessionID string, product catalog.Product, quantity int, color string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.addLine(product, quantity, color)

	if err := s.persist(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveLine(ctx context.Context, sessionID string, productID int) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.removeLine(productID)

	if err := s.persist(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.setQuantity(productID, quantity)

	if err := s.persist(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := s.store.Del(ctx, s.store.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to clear cart")
	}
	return nil
}

// load reads the persisted cart. A missing key or corrupt payload is an
// empty cart; a transport error is surfaced so callers decide whether an
// empty view is safe to act on.
func (s *service) load(ctx context.Context, sessionID string) (*Cart, error) {
	cart := &Cart{Lines: []Line{}}

	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to read cart")
	}
	if raw == "" {
		return cart, nil
	}

	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		// Corrupt persisted state is discarded, not surfaced.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "discarding malformed cart payload")
		}
		return &Cart{Lines: []Line{}}, nil
	}
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	return cart, nil
}

func (s *service) persist(ctx context.Context, sessionID string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to persist cart")
	}
	return nil
}
