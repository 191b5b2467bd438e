package engine

import (
	"context"
	"time"

	"travelorbit/models"
	"travelorbit/services/collab"

	"go.uber.org/zap"
)

// FeedbackNudger schedules a delayed feedback prompt after a confirmed
// booking. Implemented by the task queue; nil disables nudges.
type FeedbackNudger interface {
	ScheduleNudge(sessionID, tripID string, delay time.Duration) error
}

// Services bundles the collaborator adapters the engine drives.
type Services struct {
	TripPlan collab.TripPlanService
	Deals    collab.DealsService
	Auth     collab.AuthService
	Groups   collab.GroupsService
	Payments collab.PaymentsService
	Feedback collab.FeedbackService
	Nudger   FeedbackNudger
}

// Options are the conversation knobs read from configuration.
type Options struct {
	DefaultCountryCode string
	StrictPassengers   bool
	FeedbackNudgeDelay time.Duration
}

// Engine is the transition table owner. Processing one event is a
// transaction: the session reaches a new committed state and all derived
// messages are appended before the next event for that session runs.
type Engine struct {
	registry *Registry
	svc      Services
	opts     Options
	logger   *zap.Logger
}

func NewEngine(registry *Registry, svc Services, opts Options, logger *zap.Logger) *Engine {
	if opts.DefaultCountryCode == "" {
		opts.DefaultCountryCode = "+91"
	}
	return &Engine{registry: registry, svc: svc, opts: opts, logger: logger}
}

// Registry exposes the session registry for transport-layer lookups.
func (e *Engine) Registry() *Registry { return e.registry }

// StartSession creates a fresh idle session and greets the user.
func (e *Engine) StartSession(ctx context.Context) *SessionContext {
	sess := e.registry.Create()
	sess.Transcript.Prompt("Hi! I'm your trip planner. Tell me where you'd like to go, or say \"show deals\" to browse offers.")
	e.registry.Snapshot(ctx, sess)
	return sess
}

// StepResult is what one committed step produced: the state the session
// landed in and the transcript entries the step appended. Handlers read
// these instead of the shared session context, which a later step may
// already be mutating.
type StepResult struct {
	State    ConversationState
	Messages []models.ChatMessage
}

// HandleText records a user utterance, classifies it against the current
// state, and runs the resulting event through the transition table.
func (e *Engine) HandleText(ctx context.Context, sessionID, raw string) (*StepResult, error) {
	sess := e.registry.Get(ctx, sessionID)
	if sess == nil {
		return nil, collab.NewError(collab.NotFound, "engine.HandleText", "unknown session")
	}
	sess.Transcript.User(raw)
	return e.handle(ctx, sess, Classify(sess.State, raw))
}

// HandleEvent runs an already-typed event (a UI action or an out-of-band
// callback) through the transition table.
func (e *Engine) HandleEvent(ctx context.Context, sessionID string, ev Event) (*StepResult, error) {
	sess := e.registry.Get(ctx, sessionID)
	if sess == nil {
		return nil, collab.NewError(collab.NotFound, "engine.HandleEvent", "unknown session")
	}
	return e.handle(ctx, sess, ev)
}

// HandleThirdPartyCallback matches an out-of-band login result to the
// session that opened the authorization request.
func (e *Engine) HandleThirdPartyCallback(ctx context.Context, token string, ev ThirdPartyLoginEvent) (*StepResult, error) {
	sessionID, err := e.registry.ResolveCorrelationToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return e.HandleEvent(ctx, sessionID, ev)
}

// handle returns a nil result, without error, when the event was dropped
// as a duplicate of one already in flight or queued.
func (e *Engine) handle(ctx context.Context, sess *SessionContext, ev Event) (*StepResult, error) {
	if !sess.State.Known() {
		return nil, &FatalError{SessionID: sess.SessionID, State: sess.State, Message: "state outside the enumerated set"}
	}
	fp := ev.Fingerprint()
	if !sess.beginStep(fp) {
		e.logger.Debug("dropped duplicate event",
			zap.String("sessionId", sess.SessionID),
			zap.String("fingerprint", fp))
		return nil, nil
	}
	defer sess.endStep(fp)

	sess.touch()
	before := sess.Transcript.Len()
	if err := e.dispatch(ctx, sess, ev); err != nil {
		return nil, err
	}
	e.registry.Snapshot(ctx, sess)
	return &StepResult{State: sess.State, Messages: sess.Transcript.Since(before)}, nil
}

func (e *Engine) dispatch(ctx context.Context, sess *SessionContext, ev Event) error {
	// Reset works from any state.
	if _, ok := ev.(ResetEvent); ok {
		sess.hardReset()
		sess.Transcript.Confirm("All set for a fresh start. What trip can I plan for you?")
		return nil
	}

	switch sess.State {
	case StateIdle:
		return e.handleIdle(ctx, sess, ev)
	case StateAuthChoice:
		return e.handleAuthChoice(ctx, sess, ev)
	case StateAuthEmail:
		return e.handleAuthEmail(ctx, sess, ev)
	case StateAuthEmailOTP:
		return e.handleAuthEmailOTP(ctx, sess, ev)
	case StateAuthPhone:
		return e.handleAuthPhone(ctx, sess, ev)
	case StateAuthName:
		return e.handleAuthName(ctx, sess, ev)
	case StateAuthPhoneOTP:
		return e.handleAuthPhoneOTP(ctx, sess, ev)
	case StatePassengerCount:
		return e.handlePassengerCount(ctx, sess, ev)
	case StatePassengerDetails:
		return e.handlePassengerDetails(ctx, sess, ev)
	case StateAskFromCity:
		return e.handleAskFromCity(ctx, sess, ev)
	case StateGroupAskType:
		return e.handleGroupAskType(ctx, sess, ev)
	case StateGroupAskName:
		return e.handleGroupAskName(ctx, sess, ev)
	case StateGroupAskSource:
		return e.handleGroupAskSource(ctx, sess, ev)
	case StateGroupAskCount:
		return e.handleGroupAskCount(ctx, sess, ev)
	case StateGroupAskOptions:
		return e.handleGroupAskOptions(ctx, sess, ev)
	}
	return &FatalError{SessionID: sess.SessionID, State: sess.State, Message: "no handler for state"}
}

// reportFailure converts a collaborator failure into an output message.
// NotFound abandons the sub-flow; everything else keeps the state so the
// user can retry without losing progress.
func (e *Engine) reportFailure(sess *SessionContext, op string, err error) {
	e.logger.Warn("collaborator call failed",
		zap.String("op", op),
		zap.String("sessionId", sess.SessionID),
		zap.String("state", sess.State.String()),
		zap.Error(err))

	switch collab.KindOf(err) {
	case collab.NotFound:
		sess.Transcript.Error("Sorry, that booking reference is no longer available, so I can't continue with it. Let's start over. What trip can I plan for you?")
		sess.resetToIdle()
	case collab.Transient:
		sess.Transcript.Error("We hit a temporary problem reaching our servers. Please try that again in a moment.")
	case collab.Unauthorized:
		sess.Transcript.Error("That didn't verify. Please check it and try again.")
	case collab.ValidationFailed:
		sess.Transcript.Error("That doesn't look right to me. Please check it and try again.")
	default:
		sess.Transcript.Error("Something went wrong on our side. Please try again.")
	}
}

// promptExpectation re-emits what the current state is waiting for. Used
// when an event arrives that the state cannot process.
func (e *Engine) promptExpectation(sess *SessionContext) {
	switch sess.State {
	case StateAuthChoice:
		sess.Transcript.Prompt("Would you like to continue with Google, or with your email?")
	case StateAuthEmail:
		sess.Transcript.Prompt("Please enter your email address.")
	case StateAuthEmailOTP:
		sess.Transcript.Prompt("Please enter the OTP sent to your email.")
	case StateAuthPhone:
		sess.Transcript.Prompt("Please enter your phone number.")
	case StateAuthName:
		sess.Transcript.Prompt("Please tell me your name.")
	case StateAuthPhoneOTP:
		sess.Transcript.Prompt("Please enter the OTP sent to your phone.")
	case StatePassengerCount:
		sess.Transcript.Prompt("How many passengers are traveling?")
	case StatePassengerDetails:
		e.promptNextPassenger(sess)
	case StateAskFromCity:
		sess.Transcript.Prompt("Which city will you be traveling from?")
	case StateGroupAskType:
		sess.Transcript.Prompt("Are you planning this trip alone or with friends?")
	case StateGroupAskName:
		sess.Transcript.Prompt("What should we call your group?")
	case StateGroupAskSource:
		sess.Transcript.Prompt("Which city will the group start from?")
	case StateGroupAskCount:
		sess.Transcript.Prompt("How many people are in the group, including you?")
	case StateGroupAskOptions:
		sess.Transcript.Prompt("List at least two destination options, separated by commas.")
	default:
		sess.Transcript.Prompt("Tell me about the trip you'd like to plan.")
	}
}
