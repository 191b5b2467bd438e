package engine

import (
	"context"
	"fmt"
	"strings"

	"travelorbit/models"

	"go.uber.org/zap"
)

func (e *Engine) handleIdle(ctx context.Context, sess *SessionContext, ev Event) error {
	switch v := ev.(type) {
	case TextEvent:
		return e.handleIdleText(ctx, sess, v.Text)

	case ShowDealsEvent:
		deals, err := e.svc.Deals.ListDeals(ctx)
		if err != nil {
			e.reportFailure(sess, "deals.ListDeals", err)
			return nil
		}
		if len(deals) == 0 {
			sess.Transcript.Confirm("No deals are running right now. Tell me where you'd like to go and I'll plan it from scratch.")
			return nil
		}
		sess.Transcript.Directive(models.DirectiveDealList, deals, "Here are today's deals. Pick one to see the details.")
		return nil

	case SelectDealEvent:
		deal, err := e.svc.Deals.GetDeal(ctx, v.DealID)
		if err != nil {
			e.reportFailure(sess, "deals.GetDeal", err)
			return nil
		}
		sess.Transcript.Directive(models.DirectiveDealDetail, deal, deal.Title+" looks great. Let's book it.")
		return e.initiateBooking(ctx, sess, PendingDealBooking, v.DealID)

	case GroupPlanEvent:
		return e.initiateBooking(ctx, sess, PendingGroupPlan, "")

	case ConvertGroupEvent:
		return e.handleConvertGroup(ctx, sess, v.GroupID)

	case SelectPackageEvent:
		return e.handleSelectPackage(ctx, sess, v.PackageID)

	case ApplyAddOnsEvent:
		return e.handleApplyAddOns(ctx, sess, v.AddOnIDs)

	case PayEvent:
		return e.handlePay(ctx, sess)

	case PaymentProofEvent:
		return e.handlePaymentProof(ctx, sess, v.Proof)

	case FeedbackEvent:
		return e.handleFeedback(ctx, sess, v)
	}
	e.promptExpectation(sess)
	return nil
}

// handleIdleText forwards free text to the trip-plan collaborator. When the
// planner declares the itinerary final, the authentication gate opens
// synchronously in the same step.
func (e *Engine) handleIdleText(ctx context.Context, sess *SessionContext, text string) error {
	if strings.TrimSpace(text) == "" {
		e.promptExpectation(sess)
		return nil
	}

	if sess.TripRef == "" {
		tripID, err := e.svc.TripPlan.StartSession(ctx, sess.Identity)
		if err != nil {
			e.reportFailure(sess, "tripplan.StartSession", err)
			return nil
		}
		sess.TripRef = tripID
	}

	reply, err := e.svc.TripPlan.SendMessage(ctx, sess.TripRef, sess.Identity, text)
	if err != nil {
		e.reportFailure(sess, "tripplan.SendMessage", err)
		return nil
	}
	if reply.AIMessage != "" {
		sess.Transcript.Prompt(reply.AIMessage)
	}
	if !reply.IsFinalItinerary {
		return nil
	}

	trip, err := e.svc.TripPlan.GetTrip(ctx, sess.TripRef)
	if err != nil {
		e.reportFailure(sess, "tripplan.GetTrip", err)
		return nil
	}
	sess.Transcript.Directive(models.DirectiveItinerary, trip, "Your itinerary is ready!")
	return e.initiateBooking(ctx, sess, PendingPlanBooking, "")
}

func (e *Engine) handlePassengerCount(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	n, err := ParseCount(text.Text, 1)
	if err != nil {
		sess.Transcript.Error("Please enter the number of passengers as a whole number, 1 or more.")
		return nil
	}
	sess.Passengers = PassengerScratch{ExpectedCount: n}
	sess.State = StatePassengerDetails
	e.promptNextPassenger(sess)
	return nil
}

func (e *Engine) promptNextPassenger(sess *SessionContext) {
	next := len(sess.Passengers.Collected) + 1
	sess.Transcript.Prompt(fmt.Sprintf(
		"Passenger %d of %d: please share their details as \"name, age, phone\" (phone optional).",
		next, sess.Passengers.ExpectedCount))
}

func (e *Engine) handlePassengerDetails(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}

	// A full roster means an earlier finalize attempt failed; retry it
	// instead of growing the list past the expected count.
	if len(sess.Passengers.Collected) < sess.Passengers.ExpectedCount {
		passenger, err := ParsePassengerLine(text.Text, e.opts.DefaultCountryCode, e.opts.StrictPassengers)
		if err != nil {
			sess.Transcript.Error("I couldn't read that. Please use \"name, age, phone\", for example \"Asha, 30, 9876543210\".")
			return nil
		}
		sess.Passengers.Collected = append(sess.Passengers.Collected, passenger)
		if sess.Passengers.ContactPhone == "" && passenger.Phone != "" {
			sess.Passengers.ContactPhone = passenger.Phone
		}
		if len(sess.Passengers.Collected) < sess.Passengers.ExpectedCount {
			sess.Transcript.Confirm("Got it, " + passenger.Name + " is added.")
			e.promptNextPassenger(sess)
			return nil
		}
	}

	if sess.Pending.Kind == PendingDealBooking {
		sess.State = StateAskFromCity
		sess.Transcript.Prompt("Which city will you be traveling from?")
		return nil
	}
	return e.finalizePlanBooking(ctx, sess)
}

// finalizePlanBooking saves the roster against the planned trip and offers
// the package tiers.
func (e *Engine) finalizePlanBooking(ctx context.Context, sess *SessionContext) error {
	contact := sess.Passengers.ContactPhone
	if contact == "" {
		contact = sess.Identity.Phone
	}
	if err := e.svc.TripPlan.SavePassengers(ctx, sess.TripRef, sess.Passengers.Collected, contact); err != nil {
		e.reportFailure(sess, "tripplan.SavePassengers", err)
		return nil
	}
	sess.consumePending()
	sess.clearPassengerScratch()
	sess.State = StateIdle
	sess.Transcript.Confirm("All passengers saved.")

	packages, err := e.svc.TripPlan.ListPackages(ctx, sess.TripRef)
	if err != nil {
		e.reportFailure(sess, "tripplan.ListPackages", err)
		return nil
	}
	sess.Transcript.Directive(models.DirectivePackages, packages, "Choose a package to continue, then say \"pay\" when you're ready.")
	return nil
}

func (e *Engine) handleAskFromCity(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	city := strings.TrimSpace(text.Text)
	if err := ValidCity(city); err != nil {
		sess.Transcript.Error("Please enter the city you'll be traveling from.")
		return nil
	}

	reply, err := e.svc.Deals.StartPlanFromDeal(ctx, sess.Pending.DealID, sess.Identity,
		sess.Passengers.Collected, city, sess.Passengers.ContactPhone)
	if err != nil {
		e.reportFailure(sess, "deals.StartPlanFromDeal", err)
		return nil
	}
	sess.consumePending()
	sess.TripRef = reply.TripID
	sess.clearPassengerScratch()
	sess.State = StateIdle
	if reply.AIMessage != "" {
		sess.Transcript.Prompt(reply.AIMessage)
	}
	sess.Transcript.Confirm("Your deal booking is underway. Say \"pay\" when you're ready to confirm it.")
	return nil
}

func (e *Engine) handleConvertGroup(ctx context.Context, sess *SessionContext, groupID string) error {
	tally, err := e.svc.Groups.GetResult(ctx, groupID)
	if err != nil {
		e.reportFailure(sess, "groups.GetResult", err)
		return nil
	}
	tripID, err := e.svc.Groups.ConvertToTrip(ctx, groupID)
	if err != nil {
		e.reportFailure(sess, "groups.ConvertToTrip", err)
		return nil
	}
	// A group conversion replaces the trip reference outright.
	sess.TripRef = tripID
	msg := "The votes are in"
	if tally.MostVotedDestination != "" {
		msg += ": " + tally.MostVotedDestination + " wins"
	}
	sess.Transcript.Confirm(msg + "! Your group trip is ready to book.")
	return e.initiateBooking(ctx, sess, PendingPlanBooking, "")
}

func (e *Engine) handleSelectPackage(ctx context.Context, sess *SessionContext, packageID string) error {
	if sess.TripRef == "" {
		sess.Transcript.Error("There's no trip to book a package for yet. Plan a trip first.")
		return nil
	}
	pkg, err := e.svc.TripPlan.SelectPackage(ctx, sess.TripRef, packageID, sess.Identity)
	if err != nil {
		e.reportFailure(sess, "tripplan.SelectPackage", err)
		return nil
	}
	sess.Transcript.Confirm(fmt.Sprintf("%s package selected. You can add extras, or say \"pay\" to continue.", pkg.Name))
	return nil
}

func (e *Engine) handleApplyAddOns(ctx context.Context, sess *SessionContext, addOnIDs []string) error {
	if sess.TripRef == "" {
		sess.Transcript.Error("There's no trip to add extras to yet. Plan a trip first.")
		return nil
	}
	quote, err := e.svc.TripPlan.ApplyAddOns(ctx, sess.TripRef, addOnIDs)
	if err != nil {
		e.reportFailure(sess, "tripplan.ApplyAddOns", err)
		return nil
	}
	sess.Transcript.Confirm(fmt.Sprintf("Extras added. Your total is now %.0f %s. Say \"pay\" when you're ready.",
		quote.TotalPrice, quote.Currency))
	return nil
}

func (e *Engine) handlePay(ctx context.Context, sess *SessionContext) error {
	if sess.TripRef == "" {
		sess.Transcript.Error("There's nothing to pay for yet. Plan a trip or pick a deal first.")
		return nil
	}
	order, err := e.svc.Payments.CreateOrder(ctx, sess.TripRef)
	if err != nil {
		e.reportFailure(sess, "payments.CreateOrder", err)
		return nil
	}
	sess.OrderID = order.OrderID
	sess.Transcript.Directive(models.DirectiveOrder, order, "Complete the payment to confirm your booking.")
	return nil
}

func (e *Engine) handlePaymentProof(ctx context.Context, sess *SessionContext, proof models.PaymentProof) error {
	if sess.TripRef == "" || sess.OrderID == "" {
		sess.Transcript.Error("I wasn't expecting a payment right now. Say \"pay\" to start one.")
		return nil
	}
	receipt, err := e.svc.Payments.VerifyPayment(ctx, sess.TripRef, proof)
	if err != nil {
		e.reportFailure(sess, "payments.VerifyPayment", err)
		return nil
	}
	sess.OrderID = ""
	sess.Transcript.Directive(models.DirectiveReceipt, receipt,
		"Payment received! Your booking number is "+receipt.BookingNumber+". Have a wonderful trip!")

	if !sess.FeedbackAsked {
		sess.FeedbackAsked = true
		sess.Transcript.Prompt("Before you go, how would you rate planning with us, 1 to 5?")
		if e.svc.Nudger != nil && e.opts.FeedbackNudgeDelay > 0 {
			if err := e.svc.Nudger.ScheduleNudge(sess.SessionID, sess.TripRef, e.opts.FeedbackNudgeDelay); err != nil {
				e.logger.Warn("feedback nudge scheduling failed", zap.Error(err))
			}
		}
	}
	return nil
}

// NudgeFeedback delivers the delayed feedback reminder to a session. A
// session that expired or moved on to a different trip is skipped quietly.
func (e *Engine) NudgeFeedback(ctx context.Context, sessionID, tripID string) error {
	sess := e.registry.Get(ctx, sessionID)
	if sess == nil || sess.TripRef != tripID {
		return nil
	}
	sess.Transcript.Prompt("How was your trip booking experience? I'd love a rating from 1 to 5.")
	e.registry.Snapshot(ctx, sess)
	return nil
}

func (e *Engine) handleFeedback(ctx context.Context, sess *SessionContext, ev FeedbackEvent) error {
	if sess.TripRef == "" {
		sess.Transcript.Error("There's no trip to rate yet.")
		return nil
	}
	if ev.Rating < 1 || ev.Rating > 5 {
		sess.Transcript.Error("Please rate between 1 and 5.")
		return nil
	}
	if err := e.svc.Feedback.Submit(ctx, sess.TripRef, ev.Rating, ev.Comments); err != nil {
		e.reportFailure(sess, "feedback.Submit", err)
		return nil
	}
	sess.Transcript.Confirm("Thank you for the feedback! Say \"book again\" whenever you want to plan another trip.")
	return nil
}
