package engine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"travelorbit/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionSnapshotPrefix  = "session:ctx:"
	correlationTokenPrefix = "session:correlate:"
	correlationTokenTTL    = 10 * time.Minute
)

// ErrUnknownCorrelation means a third-party callback arrived with a token
// no session ever issued, or one that already expired.
var ErrUnknownCorrelation = errors.New("unknown or expired correlation token")

// sessionSnapshot is the redis-persisted view of a session, so an evicted
// or restarted process can rehydrate a conversation mid-flow.
type sessionSnapshot struct {
	SessionID     string               `json:"sessionId"`
	TripRef       string               `json:"tripRef,omitempty"`
	Identity      models.Identity      `json:"identity"`
	State         ConversationState    `json:"state"`
	Pending       PendingAction        `json:"pending"`
	Auth          AuthScratch          `json:"auth"`
	Passengers    PassengerScratch     `json:"passengers"`
	Group         GroupScratch         `json:"group"`
	OrderID       string               `json:"orderId,omitempty"`
	FeedbackAsked bool                 `json:"feedbackAsked,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastActiveAt  time.Time            `json:"lastActiveAt"`
	Transcript    []models.ChatMessage `json:"transcript"`
}

// Registry is the process-wide map from session id to SessionContext.
// Access is safe under concurrent sessions; per-session step ordering is
// the session's own job.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*SessionContext

	cache     *redis.Client
	correlate *redis.Client
	idleTTL   time.Duration
	logger    *zap.Logger
}

// NewRegistry builds a registry. Either redis client may be nil, which
// disables snapshots or correlation tokens respectively (useful in tests).
func NewRegistry(cache, correlate *redis.Client, idleTTL time.Duration, logger *zap.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	return &Registry{
		sessions:  make(map[string]*SessionContext),
		cache:     cache,
		correlate: correlate,
		idleTTL:   idleTTL,
		logger:    logger,
	}
}

// Create registers a brand-new session and returns it.
func (r *Registry) Create() *SessionContext {
	sess := NewSessionContext(uuid.New().String())
	r.mu.Lock()
	r.sessions[sess.SessionID] = sess
	r.mu.Unlock()
	return sess
}

// Get returns the live session for id, rehydrating from redis if the
// process evicted it. A missing session returns nil.
func (r *Registry) Get(ctx context.Context, id string) *SessionContext {
	r.mu.RLock()
	sess := r.sessions[id]
	r.mu.RUnlock()
	if sess != nil {
		return sess
	}
	sess = r.rehydrate(ctx, id)
	if sess == nil {
		return nil
	}
	r.mu.Lock()
	// Another goroutine may have rehydrated first.
	if existing := r.sessions[id]; existing != nil {
		sess = existing
	} else {
		r.sessions[id] = sess
	}
	r.mu.Unlock()
	return sess
}

func (r *Registry) rehydrate(ctx context.Context, id string) *SessionContext {
	if r.cache == nil {
		return nil
	}
	data, err := r.cache.Get(ctx, sessionSnapshotPrefix+id).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		r.logger.Warn("session rehydrate failed", zap.String("sessionId", id), zap.Error(err))
		return nil
	}
	var snap sessionSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		r.logger.Warn("session snapshot corrupt", zap.String("sessionId", id), zap.Error(err))
		return nil
	}
	sess := &SessionContext{
		SessionID:     snap.SessionID,
		TripRef:       snap.TripRef,
		Identity:      snap.Identity,
		State:         snap.State,
		Pending:       snap.Pending,
		Auth:          snap.Auth,
		Passengers:    snap.Passengers,
		Group:         snap.Group,
		OrderID:       snap.OrderID,
		FeedbackAsked: snap.FeedbackAsked,
		CreatedAt:     snap.CreatedAt,
		LastActiveAt:  snap.LastActiveAt,
		Transcript:    NewTranscript(),
	}
	sess.Transcript.replace(snap.Transcript)
	return sess
}

// Snapshot persists the session to redis with the idle TTL. Called after
// every committed step; failures are logged, never fatal.
func (r *Registry) Snapshot(ctx context.Context, sess *SessionContext) {
	if r.cache == nil {
		return
	}
	snap := sessionSnapshot{
		SessionID:     sess.SessionID,
		TripRef:       sess.TripRef,
		Identity:      sess.Identity,
		State:         sess.State,
		Pending:       sess.Pending,
		Auth:          sess.Auth,
		Passengers:    sess.Passengers,
		Group:         sess.Group,
		OrderID:       sess.OrderID,
		FeedbackAsked: sess.FeedbackAsked,
		CreatedAt:     sess.CreatedAt,
		LastActiveAt:  sess.LastActiveAt,
		Transcript:    sess.Transcript.Messages(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Warn("session snapshot marshal failed", zap.String("sessionId", sess.SessionID), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, sessionSnapshotPrefix+sess.SessionID, data, r.idleTTL).Err(); err != nil {
		r.logger.Warn("session snapshot write failed", zap.String("sessionId", sess.SessionID), zap.Error(err))
	}
}

// Remove drops a session from the in-process map and its redis snapshot.
func (r *Registry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	if r.cache != nil {
		if err := r.cache.Del(ctx, sessionSnapshotPrefix+id).Err(); err != nil {
			r.logger.Warn("session snapshot delete failed", zap.String("sessionId", id), zap.Error(err))
		}
	}
}

// Len reports the number of live in-process sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle drops sessions idle past the TTL from the in-process map. Their
// redis snapshots keep expiring on their own, so a late client can still
// rehydrate until then.
func (r *Registry) EvictIdle() int {
	cutoff := time.Now().UTC().Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, sess := range r.sessions {
		if sess.LastActiveAt.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// StartSweeper evicts idle sessions on an interval until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.EvictIdle(); n > 0 {
					r.logger.Info("evicted idle sessions", zap.Int("count", n))
				}
			}
		}
	}()
}

// IssueCorrelationToken mints a token tying an outgoing third-party
// authorization request to the session that opened it.
func (r *Registry) IssueCorrelationToken(ctx context.Context, sessionID string) (string, error) {
	token := uuid.New().String()
	if r.correlate == nil {
		return "", errors.New("correlation store unavailable")
	}
	if err := r.correlate.Set(ctx, correlationTokenPrefix+token, sessionID, correlationTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveCorrelationToken maps a callback token back to its owning session
// and burns it.
func (r *Registry) ResolveCorrelationToken(ctx context.Context, token string) (string, error) {
	if r.correlate == nil {
		return "", ErrUnknownCorrelation
	}
	key := correlationTokenPrefix + token
	sessionID, err := r.correlate.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrUnknownCorrelation
	}
	if err != nil {
		return "", err
	}
	if err := r.correlate.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("correlation token delete failed", zap.Error(err))
	}
	return sessionID, nil
}
