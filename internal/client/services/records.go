package services

import (
	"context"
	"errors"
	"sync"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// Records caches the signed-in user's tasting records. The cache is a plain
// mirror of the server list: every refresh replaces it wholesale in the
// server's order, there is no merging and no partial update.
type Records struct {
	client  api.Client
	session *Session
	log     logging.Logger

	mu    sync.RWMutex
	items []models.TastingRecord
}

// NewRecords constructs the record cache. The caller is expected to register
// Clear with session.OnReset so the cache empties with the session.
func NewRecords(client api.Client, session *Session, log logging.Logger) *Records {
	return &Records{client: client, session: session, log: log}
}

// Refresh fetches the full record list and replaces the cache with it.
// Without a session it is a no-op. A response that arrives after the session
// changed underneath it is discarded rather than applied. On a 401 the
// session is invalidated and the error returned; on any other failure the
// cache keeps its previous contents.
func (r *Records) Refresh(ctx context.Context) error {
	token, epoch := r.session.Snapshot()
	if token == "" {
		return nil
	}

	recs, err := r.client.ListRecords(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			r.session.Invalidate(ctx)
			return err
		}
		r.log.Error(ctx, "refreshing records failed", "error", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.session.EpochIs(epoch) {
		r.log.Info(ctx, "discarding record list from an ended session")
		return nil
	}
	r.items = recs
	r.log.Debug(ctx, "records refreshed", "count", len(recs))
	return nil
}

// All returns a copy of the cached records in server order.
func (r *Records) All() []models.TastingRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TastingRecord, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the cached record with the given id.
func (r *Records) Get(id int64) (models.TastingRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.items {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.TastingRecord{}, false
}

// Len returns the number of cached records.
func (r *Records) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clear empties the cache. Runs as a session reset hook.
func (r *Records) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
