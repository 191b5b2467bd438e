package engine

import (
	"strings"
	"sync"
	"time"

	"travelorbit/models"

	"github.com/google/uuid"
)

// PendingKind records why the authentication or passenger-collection
// sub-flow was entered, so the right continuation runs afterward.
type PendingKind string

const (
	PendingNone        PendingKind = "NONE"
	PendingDealBooking PendingKind = "DEAL_BOOKING"
	PendingPlanBooking PendingKind = "PLAN_BOOKING"
	PendingGroupPlan   PendingKind = "GROUP_PLAN"
)

// PendingAction is consumed exactly once when its continuation fires.
type PendingAction struct {
	Kind   PendingKind `json:"kind"`
	DealID string      `json:"dealId,omitempty"`
}

// AuthScratch holds transient fields filled while walking the
// authentication sub-flow. Cleared on completion or abandonment.
type AuthScratch struct {
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Name         string `json:"name,omitempty"`
	GoogleTempID string `json:"googleTempId,omitempty"`
}

// PassengerScratch accumulates travelers one line at a time. Collected
// never grows past ExpectedCount.
type PassengerScratch struct {
	ExpectedCount int                `json:"expectedCount"`
	Collected     []models.Passenger `json:"collected,omitempty"`
	ContactPhone  string             `json:"contactPhone,omitempty"`
}

// GroupScratch holds the answers gathered through the group sub-flow.
type GroupScratch struct {
	Name          string   `json:"name,omitempty"`
	SourceCity    string   `json:"sourceCity,omitempty"`
	ExpectedCount int      `json:"expectedCount,omitempty"`
	Options       []string `json:"options,omitempty"`
}

// SessionContext is the mutable record for one active conversation. All
// mutation happens inside a single engine step; the step lock serializes
// steps for the same session.
type SessionContext struct {
	SessionID     string            `json:"sessionId"`
	TripRef       string            `json:"tripRef,omitempty"`
	Identity      models.Identity   `json:"identity"`
	State         ConversationState `json:"state"`
	Pending       PendingAction     `json:"pending"`
	Auth          AuthScratch       `json:"auth"`
	Passengers    PassengerScratch  `json:"passengers"`
	Group         GroupScratch      `json:"group"`
	OrderID       string            `json:"orderId,omitempty"`
	FeedbackAsked bool              `json:"feedbackAsked,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastActiveAt  time.Time         `json:"lastActiveAt"`

	Transcript *Transcript `json:"-"`

	guard    sync.Mutex
	step     sync.Mutex
	inflight map[string]struct{}
}

// NewSessionContext creates an idle session with a generated guest
// identity.
func NewSessionContext(sessionID string) *SessionContext {
	now := time.Now().UTC()
	return &SessionContext{
		SessionID:    sessionID,
		Identity:     guestIdentity(),
		State:        StateIdle,
		Pending:      PendingAction{Kind: PendingNone},
		CreatedAt:    now,
		LastActiveAt: now,
		Transcript:   NewTranscript(),
	}
}

func guestIdentity() models.Identity {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return models.Identity{
		RegisterID:    "GUEST-" + short,
		Authenticated: false,
	}
}

// beginStep admits one event into the session. It returns false when the
// same event is already in flight or queued behind the running step; a
// different event blocks until the running step commits. The fingerprint
// is registered before blocking, so the second copy of a queued event is
// rejected even while another event holds the step lock.
func (s *SessionContext) beginStep(fingerprint string) bool {
	s.guard.Lock()
	if _, dup := s.inflight[fingerprint]; dup {
		s.guard.Unlock()
		return false
	}
	if s.inflight == nil {
		s.inflight = make(map[string]struct{})
	}
	s.inflight[fingerprint] = struct{}{}
	s.guard.Unlock()

	s.step.Lock()
	return true
}

func (s *SessionContext) endStep(fingerprint string) {
	s.guard.Lock()
	delete(s.inflight, fingerprint)
	s.guard.Unlock()
	s.step.Unlock()
}

// CurrentState reads the state without racing a running step.
func (s *SessionContext) CurrentState() ConversationState {
	s.step.Lock()
	defer s.step.Unlock()
	return s.State
}

func (s *SessionContext) touch() {
	s.LastActiveAt = time.Now().UTC()
}

// consumePending returns the pending action and resets it to NONE, so the
// continuation it names can fire at most once.
func (s *SessionContext) consumePending() PendingAction {
	p := s.Pending
	s.Pending = PendingAction{Kind: PendingNone}
	return p
}

func (s *SessionContext) clearAuthScratch() {
	s.Auth = AuthScratch{}
}

func (s *SessionContext) clearPassengerScratch() {
	s.Passengers = PassengerScratch{}
}

func (s *SessionContext) clearGroupScratch() {
	s.Group = GroupScratch{}
}

// resetToIdle abandons the current sub-flow but keeps the identity. Used
// when a stale reference makes continuation impossible.
func (s *SessionContext) resetToIdle() {
	s.State = StateIdle
	s.Pending = PendingAction{Kind: PendingNone}
	s.clearAuthScratch()
	s.clearPassengerScratch()
	s.clearGroupScratch()
}

// hardReset is the explicit "book again" operation. Scratch state, trip
// reference, and identity are all discarded.
func (s *SessionContext) hardReset() {
	s.resetToIdle()
	s.TripRef = ""
	s.OrderID = ""
	s.FeedbackAsked = false
	s.Identity = guestIdentity()
}
