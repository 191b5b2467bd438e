package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"travelorbit/models"
	"travelorbit/services/collab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePlanner struct {
	mu           sync.Mutex
	startCalls   int
	sendCalls    int
	finalOnSend  bool
	inCall       chan struct{}
	block        chan struct{}
	saveErr      error
	saved        []models.Passenger
	savedContact string
}

func (f *fakePlanner) StartSession(ctx context.Context, identity models.Identity) (string, error) {
	f.mu.Lock()
	f.startCalls++
	f.mu.Unlock()
	return "trip-1", nil
}

func (f *fakePlanner) SendMessage(ctx context.Context, tripID string, identity models.Identity, text string) (*models.PlannerReply, error) {
	f.mu.Lock()
	f.sendCalls++
	f.mu.Unlock()
	if f.inCall != nil {
		f.inCall <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return &models.PlannerReply{TripID: tripID, AIMessage: "Sounds lovely!", IsFinalItinerary: f.finalOnSend}, nil
}

func (f *fakePlanner) GetTrip(ctx context.Context, tripID string) (*models.TripDetail, error) {
	return &models.TripDetail{ID: tripID, Status: "planned", Title: "Goa Getaway"}, nil
}

func (f *fakePlanner) SavePassengers(ctx context.Context, tripID string, passengers []models.Passenger, contactPhone string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	f.saved = passengers
	f.savedContact = contactPhone
	f.mu.Unlock()
	return nil
}

func (f *fakePlanner) ListPackages(ctx context.Context, tripID string) ([]models.Package, error) {
	return []models.Package{{ID: "comfort", Name: "Comfort"}}, nil
}

func (f *fakePlanner) SelectPackage(ctx context.Context, tripID, packageID string, identity models.Identity) (*models.Package, error) {
	return &models.Package{ID: packageID, Name: "Comfort"}, nil
}

func (f *fakePlanner) ApplyAddOns(ctx context.Context, tripID string, addOnIDs []string) (*models.AddOnQuote, error) {
	return &models.AddOnQuote{TripID: tripID, Applied: addOnIDs, TotalPrice: 20000, Currency: "INR"}, nil
}

type fakeAuth struct {
	emailLoginCalls int
	emailStatus     collab.EmailLoginStatus
	sentOTPPhone    string
	sentOTPEmail    string
	sentOTPName     string
}

func (f *fakeAuth) EmailLogin(ctx context.Context, email string) (collab.EmailLoginStatus, error) {
	f.emailLoginCalls++
	return f.emailStatus, nil
}

func (f *fakeAuth) EmailVerifyOTP(ctx context.Context, email, code string) (*models.Identity, error) {
	return &models.Identity{RegisterID: "REG-9", Email: email, Name: "Returning"}, nil
}

func (f *fakeAuth) ThirdPartyAuthURL(ctx context.Context) (string, error) {
	return "https://accounts.example.com/auth", nil
}

func (f *fakeAuth) PhoneSignupSendOTP(ctx context.Context, phone, email, name string) error {
	f.sentOTPPhone = phone
	f.sentOTPEmail = email
	f.sentOTPName = name
	return nil
}

func (f *fakeAuth) PhoneSignupVerifyOTP(ctx context.Context, phone, code string) (*models.Identity, error) {
	return &models.Identity{RegisterID: "REG-1", Phone: phone, Email: f.sentOTPEmail, Name: f.sentOTPName}, nil
}

func (f *fakeAuth) ThirdPartyPhoneSendOTP(ctx context.Context, tempID, phone string) (string, error) {
	return "temp-2", nil
}

func (f *fakeAuth) ThirdPartyPhoneVerifyOTP(ctx context.Context, tempID, code string) (*models.Identity, error) {
	return &models.Identity{RegisterID: "REG-G", Name: "Googler"}, nil
}

type fakeDeals struct {
	getDealErr error
}

func (f *fakeDeals) ListDeals(ctx context.Context) ([]models.DealSummary, error) {
	return []models.DealSummary{{ID: "d1", Title: "Goa Flash Sale"}}, nil
}

func (f *fakeDeals) GetDeal(ctx context.Context, dealID string) (*models.DealDetail, error) {
	if f.getDealErr != nil {
		return nil, f.getDealErr
	}
	return &models.DealDetail{DealSummary: models.DealSummary{ID: dealID, Title: "Goa Flash Sale"}}, nil
}

func (f *fakeDeals) StartPlanFromDeal(ctx context.Context, dealID string, identity models.Identity, passengers []models.Passenger, fromCity, contactPhone string) (*models.PlannerReply, error) {
	return &models.PlannerReply{TripID: "trip-deal", AIMessage: "Deal plan started"}, nil
}

type fakeGroups struct {
	createdName    string
	createdCount   int
	createdOptions []string
}

func (f *fakeGroups) CreateGroup(ctx context.Context, leader models.Identity, name, fromCity string, expectedCount int, options []string) (*models.GroupCreated, error) {
	f.createdName = name
	f.createdCount = expectedCount
	f.createdOptions = options
	return &models.GroupCreated{GroupID: "g1", ShareableLink: "https://x/vote/g1"}, nil
}

func (f *fakeGroups) GetResult(ctx context.Context, groupID string) (*models.GroupTally, error) {
	return &models.GroupTally{GroupID: groupID, MostVotedDestination: "Goa", TotalVotes: 4}, nil
}

func (f *fakeGroups) ConvertToTrip(ctx context.Context, groupID string) (string, error) {
	return "trip-group", nil
}

func (f *fakeGroups) SubmitVote(ctx context.Context, groupID string, voter models.VoterInfo, choices models.VoteChoices) error {
	return nil
}

type fakePayments struct{}

func (f *fakePayments) CreateOrder(ctx context.Context, tripID string) (*models.OrderDescriptor, error) {
	return &models.OrderDescriptor{OrderID: "order-1", Amount: 2000000, Currency: "INR", TripID: tripID}, nil
}

func (f *fakePayments) VerifyPayment(ctx context.Context, tripID string, proof models.PaymentProof) (*models.PaymentReceipt, error) {
	return &models.PaymentReceipt{BookingNumber: "BK-42", TripID: tripID, Amount: 20000, Currency: "INR"}, nil
}

type fakeFeedback struct {
	rating int
}

func (f *fakeFeedback) Submit(ctx context.Context, tripID string, rating int, comments string) error {
	f.rating = rating
	return nil
}

type fixtures struct {
	planner  *fakePlanner
	auth     *fakeAuth
	deals    *fakeDeals
	groups   *fakeGroups
	payments *fakePayments
	feedback *fakeFeedback
}

func newTestEngine(t *testing.T) (*Engine, *fixtures) {
	t.Helper()
	f := &fixtures{
		planner:  &fakePlanner{finalOnSend: true},
		auth:     &fakeAuth{emailStatus: collab.EmailNew},
		deals:    &fakeDeals{},
		groups:   &fakeGroups{},
		payments: &fakePayments{},
		feedback: &fakeFeedback{},
	}
	registry := NewRegistry(nil, nil, time.Hour, zap.NewNop())
	eng := NewEngine(registry, Services{
		TripPlan: f.planner,
		Deals:    f.deals,
		Auth:     f.auth,
		Groups:   f.groups,
		Payments: f.payments,
		Feedback: f.feedback,
	}, Options{DefaultCountryCode: "+91"}, zap.NewNop())
	return eng, f
}

func say(t *testing.T, eng *Engine, id, text string) {
	t.Helper()
	_, err := eng.HandleText(context.Background(), id, text)
	require.NoError(t, err)
}

func fire(t *testing.T, eng *Engine, id string, ev Event) {
	t.Helper()
	_, err := eng.HandleEvent(context.Background(), id, ev)
	require.NoError(t, err)
}

func TestEndToEndEmailSignupBooking(t *testing.T) {
	eng, f := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	assert.Equal(t, StateAuthChoice, sess.State, "final itinerary opens the auth gate")
	assert.Equal(t, "trip-1", sess.TripRef)
	assert.Equal(t, PendingPlanBooking, sess.Pending.Kind)

	say(t, eng, id, "email")
	assert.Equal(t, StateAuthEmail, sess.State)

	say(t, eng, id, "new@x.com")
	assert.Equal(t, StateAuthPhone, sess.State, "unknown email routes to signup")
	assert.Equal(t, 1, f.auth.emailLoginCalls)

	say(t, eng, id, "9876543210")
	assert.Equal(t, StateAuthName, sess.State)
	assert.Equal(t, "+919876543210", sess.Auth.Phone)

	say(t, eng, id, "Asha")
	assert.Equal(t, StateAuthPhoneOTP, sess.State)
	assert.Equal(t, "+919876543210", f.auth.sentOTPPhone)
	assert.Equal(t, "new@x.com", f.auth.sentOTPEmail)

	say(t, eng, id, "123456")
	assert.Equal(t, StatePassengerCount, sess.State)
	assert.True(t, sess.Identity.Authenticated)
	assert.Equal(t, "REG-1", sess.Identity.RegisterID)
	assert.Equal(t, AuthScratch{}, sess.Auth, "scratch cleared on login")

	say(t, eng, id, "2")
	assert.Equal(t, StatePassengerDetails, sess.State)
	assert.Equal(t, 2, sess.Passengers.ExpectedCount)
	assert.Empty(t, sess.Passengers.Collected)

	say(t, eng, id, "Asha, 30, 9876543210")
	assert.Equal(t, StatePassengerDetails, sess.State, "still collecting")
	assert.Len(t, sess.Passengers.Collected, 1)

	say(t, eng, id, "Raj, 32, 9123456789")
	assert.Equal(t, StateIdle, sess.State, "roster complete finalizes the plan booking")
	assert.Equal(t, PendingNone, sess.Pending.Kind)
	assert.Len(t, f.planner.saved, 2)
	assert.Equal(t, "+919876543210", f.planner.savedContact)
}

func TestPassengerCountRejectsInvalidInput(t *testing.T) {
	eng, _ := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	assert.Equal(t, StatePassengerCount, sess.State, "authenticated identity skips the auth gate")

	for _, bad := range []string{"0", "-1", "two"} {
		say(t, eng, id, bad)
		assert.Equal(t, StatePassengerCount, sess.State, "input %q must not advance", bad)
	}

	say(t, eng, id, "1")
	assert.Equal(t, StatePassengerDetails, sess.State)
}

func TestEmailGateRejectsWithoutCollaboratorCall(t *testing.T) {
	eng, f := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	say(t, eng, id, "email")
	require.Equal(t, StateAuthEmail, sess.State)

	say(t, eng, id, "not-an-email")
	assert.Equal(t, StateAuthEmail, sess.State)
	assert.Zero(t, f.auth.emailLoginCalls, "malformed email must never reach the collaborator")
}

func TestDuplicateInFlightEventIsDropped(t *testing.T) {
	eng, f := newTestEngine(t)
	f.planner.finalOnSend = false
	f.planner.inCall = make(chan struct{}, 1)
	f.planner.block = make(chan struct{})
	sess := eng.StartSession(context.Background())
	id := sess.SessionID

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = eng.HandleText(context.Background(), id, "hello")
	}()
	<-f.planner.inCall

	// Identical event while the first is still pending: dropped, no second
	// collaborator call.
	res, err := eng.HandleText(context.Background(), id, "hello")
	require.NoError(t, err)
	assert.Nil(t, res, "a dropped duplicate produces no step result")

	close(f.planner.block)
	wg.Wait()

	f.planner.mu.Lock()
	defer f.planner.mu.Unlock()
	assert.Equal(t, 1, f.planner.sendCalls)
	assert.Equal(t, 1, f.planner.startCalls)
}

func TestDuplicateQueuedEventIsDropped(t *testing.T) {
	eng, f := newTestEngine(t)
	f.planner.finalOnSend = false
	f.planner.inCall = make(chan struct{}, 2)
	f.planner.block = make(chan struct{})
	sess := eng.StartSession(context.Background())
	id := sess.SessionID

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = eng.HandleText(context.Background(), id, "first")
	}()
	<-f.planner.inCall

	// A different event queues behind the running step and registers its
	// fingerprint before blocking.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = eng.HandleText(context.Background(), id, "second")
	}()
	secondFP := TextEvent{Text: "second"}.Fingerprint()
	require.Eventually(t, func() bool {
		sess.guard.Lock()
		defer sess.guard.Unlock()
		_, queued := sess.inflight[secondFP]
		return queued
	}, time.Second, 5*time.Millisecond)

	// The same event again, while its first copy is still queued: dropped.
	res, err := eng.HandleText(context.Background(), id, "second")
	require.NoError(t, err)
	assert.Nil(t, res)

	close(f.planner.block)
	wg.Wait()

	f.planner.mu.Lock()
	defer f.planner.mu.Unlock()
	assert.Equal(t, 2, f.planner.sendCalls, "the queued event runs exactly once")
}

func TestTransientSaveFailureRetriesWithoutGrowingRoster(t *testing.T) {
	eng, f := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	say(t, eng, id, "1")

	f.planner.saveErr = collab.NewError(collab.Transient, "save", "backend down")
	say(t, eng, id, "Asha, 30")
	assert.Equal(t, StatePassengerDetails, sess.State, "transient failure keeps the state")
	assert.Len(t, sess.Passengers.Collected, 1)

	f.planner.saveErr = nil
	say(t, eng, id, "retry")
	assert.Equal(t, StateIdle, sess.State)
	assert.Len(t, f.planner.saved, 1, "retry finalizes, it does not append")
}

func TestNotFoundAbandonsSubFlow(t *testing.T) {
	eng, f := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	say(t, eng, id, "1")

	f.planner.saveErr = collab.NewError(collab.NotFound, "save", "trip gone")
	say(t, eng, id, "Asha, 30")
	assert.Equal(t, StateIdle, sess.State, "stale reference resets to idle")
	assert.Equal(t, PendingNone, sess.Pending.Kind)

	last := sess.Transcript.Messages()[sess.Transcript.Len()-1]
	assert.Equal(t, models.KindError, last.Kind)
}

func TestGroupScenario(t *testing.T) {
	eng, f := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "plan with friends")
	assert.Equal(t, StateGroupAskType, sess.State)

	say(t, eng, id, "with friends")
	assert.Equal(t, StateGroupAskName, sess.State)

	say(t, eng, id, "Goa Gang")
	assert.Equal(t, StateGroupAskSource, sess.State)

	say(t, eng, id, "Mumbai")
	assert.Equal(t, StateGroupAskCount, sess.State)

	say(t, eng, id, "5")
	assert.Equal(t, StateGroupAskOptions, sess.State)

	say(t, eng, id, "1")
	assert.Equal(t, StateGroupAskOptions, sess.State, "a single option is rejected")

	say(t, eng, id, "Goa, Manali, Jaipur")
	assert.Equal(t, StateIdle, sess.State)
	assert.Equal(t, "Goa Gang", f.groups.createdName)
	assert.Equal(t, 5, f.groups.createdCount)
	assert.Len(t, f.groups.createdOptions, 3)
	assert.Equal(t, GroupScratch{}, sess.Group, "scratch cleared after creation")
}

func TestGroupTypeAloneReturnsToIdle(t *testing.T) {
	eng, _ := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "plan with friends")
	say(t, eng, id, "alone actually")
	assert.Equal(t, StateIdle, sess.State)
}

func TestPaymentAndFeedbackRoundTrip(t *testing.T) {
	eng, f := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	say(t, eng, id, "1")
	say(t, eng, id, "Asha, 30, 9876543210")
	require.Equal(t, StateIdle, sess.State)

	fire(t, eng, id, SelectPackageEvent{PackageID: "comfort"})
	fire(t, eng, id, ApplyAddOnsEvent{AddOnIDs: []string{"guide"}})

	say(t, eng, id, "pay")
	assert.Equal(t, "order-1", sess.OrderID)

	fire(t, eng, id, PaymentProofEvent{Proof: models.PaymentProof{
		OrderID: "order-1", PaymentID: "pay-1", Signature: "sig",
	}})
	assert.Empty(t, sess.OrderID, "order consumed by verification")
	assert.True(t, sess.FeedbackAsked)

	fire(t, eng, id, FeedbackEvent{Rating: 5, Comments: "great"})
	assert.Equal(t, 5, f.feedback.rating)

	fire(t, eng, id, FeedbackEvent{Rating: 9})
	assert.Equal(t, 5, f.feedback.rating, "out-of-range rating rejected")
}

func TestResetRegeneratesGuestIdentity(t *testing.T) {
	eng, _ := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	sess.Identity.Authenticated = true
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	require.Equal(t, StatePassengerCount, sess.State)

	say(t, eng, id, "book again")
	assert.Equal(t, StateIdle, sess.State)
	assert.False(t, sess.Identity.Authenticated)
	assert.Contains(t, sess.Identity.RegisterID, "GUEST-")
	assert.Empty(t, sess.TripRef)
}

func TestThirdPartyLoginWithPhoneLinking(t *testing.T) {
	eng, _ := newTestEngine(t)
	sess := eng.StartSession(context.Background())
	id := sess.SessionID

	say(t, eng, id, "Plan a trip to Goa")
	require.Equal(t, StateAuthChoice, sess.State)

	// Callback arrives with a temp id: a phone number must be linked.
	fire(t, eng, id, ThirdPartyLoginEvent{TempID: "temp-1"})
	assert.Equal(t, StateAuthPhone, sess.State)
	assert.Equal(t, "temp-1", sess.Auth.GoogleTempID)

	say(t, eng, id, "9876543210")
	assert.Equal(t, StateAuthPhoneOTP, sess.State, "linking skips the name question")
	assert.Equal(t, "temp-2", sess.Auth.GoogleTempID, "temp id rotated by the send-otp call")

	say(t, eng, id, "654321")
	assert.Equal(t, StatePassengerCount, sess.State)
	assert.Equal(t, "REG-G", sess.Identity.RegisterID)
}
