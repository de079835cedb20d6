package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
)

// Store is the key-value port the draft repository persists through.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DraftKey(sessionID string) string
}

// DraftRepo holds the in-flight order between checkout and payment. A draft
// survives until payment succeeds or the TTL reaps it.
type DraftRepo interface {
	Save(ctx context.Context, sessionID string, draft *Draft) error
	Load(ctx context.Context, sessionID string) (*Draft, error)
	Clear(ctx context.Context, sessionID string) error
}

type draftRepo struct {
	store Store
	ttl   time.Duration
}

// NewDraftRepo builds the draft repository over the given persistence port.
func NewDraftRepo(store Store, ttl time.Duration) (DraftRepo, error) {
	if store == nil {
		return nil, fmt.Errorf("draft store required")
	}
	return &draftRepo{store: store, ttl: ttl}, nil
}

func (r *draftRepo) Save(ctx context.Context, sessionID string, draft *Draft) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if draft == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order draft required")
	}
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode order draft")
	}
	if err := r.store.Set(ctx, r.store.DraftKey(sessionID), string(payload), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to persist order draft")
	}
	return nil
}

func (r *draftRepo) Load(ctx context.Context, sessionID string) (*Draft, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	raw, err := r.store.Get(ctx, r.store.DraftKey(sessionID))
	if err != nil || raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no pending order for this session")
	}
	draft := &Draft{}
	if err := json.Unmarshal([]byte(raw), draft); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no pending order for this session")
	}
	return draft, nil
}

func (r *draftRepo) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := r.store.Del(ctx, r.store.DraftKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to clear order draft")
	}
	return nil
}
