package engine

import (
	"context"
	"strings"

	"travelorbit/models"
	"travelorbit/services/collab"
)

// initiateBooking is the authentication gate. An already-authenticated
// identity skips straight to the continuation; otherwise the pending action
// is recorded and the session enters the auth sub-flow.
func (e *Engine) initiateBooking(ctx context.Context, sess *SessionContext, kind PendingKind, dealID string) error {
	sess.Pending = PendingAction{Kind: kind, DealID: dealID}

	if sess.Identity.Authenticated {
		if kind == PendingGroupPlan {
			e.startGroupPlan(sess)
			return nil
		}
		e.startPassengerCollection(sess)
		return nil
	}

	sess.State = StateAuthChoice
	sess.Transcript.Prompt("Before we continue, let's get you signed in. Reply \"google\" to use Google, or anything else to sign in with your email.")
	return nil
}

func (e *Engine) handleAuthChoice(ctx context.Context, sess *SessionContext, ev Event) error {
	switch v := ev.(type) {
	case ThirdPartyStartEvent:
		url, err := e.svc.Auth.ThirdPartyAuthURL(ctx)
		if err != nil {
			e.reportFailure(sess, "auth.ThirdPartyAuthURL", err)
			return nil
		}
		token, err := e.registry.IssueCorrelationToken(ctx, sess.SessionID)
		if err != nil {
			e.reportFailure(sess, "registry.IssueCorrelationToken", err)
			return nil
		}
		sess.Transcript.Directive(models.DirectiveAuthPopup, map[string]string{
			"auth_url":          url,
			"correlation_token": token,
		}, "Opening Google sign-in. Finish there and I'll pick up where we left off.")
		return nil

	case ThirdPartyLoginEvent:
		if v.Identity != nil {
			return e.completeLogin(ctx, sess, *v.Identity)
		}
		sess.Auth.GoogleTempID = v.TempID
		sess.State = StateAuthPhone
		sess.Transcript.Prompt("Almost there. Please enter your phone number to finish setting up your account.")
		return nil

	case TextEvent:
		sess.State = StateAuthEmail
		sess.Transcript.Prompt("Please enter your email address.")
		return nil
	}
	e.promptExpectation(sess)
	return nil
}

func (e *Engine) handleAuthEmail(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	email := strings.TrimSpace(text.Text)
	if !ValidEmail(email) {
		sess.Transcript.Error("That doesn't look like an email address. Please enter a valid email.")
		return nil
	}

	status, err := e.svc.Auth.EmailLogin(ctx, email)
	if err != nil {
		e.reportFailure(sess, "auth.EmailLogin", err)
		return nil
	}
	sess.Auth.Email = email
	if status == collab.EmailExisting {
		sess.State = StateAuthEmailOTP
		sess.Transcript.Prompt("Welcome back! Please enter the OTP we just sent to your email.")
		return nil
	}
	sess.State = StateAuthPhone
	sess.Transcript.Prompt("Looks like you're new here. Please enter your phone number to create an account.")
	return nil
}

func (e *Engine) handleAuthEmailOTP(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	code := strings.TrimSpace(text.Text)
	identity, err := e.svc.Auth.EmailVerifyOTP(ctx, sess.Auth.Email, code)
	if err != nil {
		e.reportFailure(sess, "auth.EmailVerifyOTP", err)
		return nil
	}
	return e.completeLogin(ctx, sess, *identity)
}

func (e *Engine) handleAuthPhone(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	phone, err := NormalizePhone(text.Text, e.opts.DefaultCountryCode)
	if err != nil {
		sess.Transcript.Error("That phone number doesn't look right: " + err.Error() + ". Please try again.")
		return nil
	}
	sess.Auth.Phone = phone

	// Third-party linking skips naming; the provider already knows it.
	if sess.Auth.GoogleTempID != "" {
		newTempID, err := e.svc.Auth.ThirdPartyPhoneSendOTP(ctx, sess.Auth.GoogleTempID, phone)
		if err != nil {
			e.reportFailure(sess, "auth.ThirdPartyPhoneSendOTP", err)
			return nil
		}
		sess.Auth.GoogleTempID = newTempID
		sess.State = StateAuthPhoneOTP
		sess.Transcript.Prompt("We've sent an OTP to " + phone + ". Please enter it here.")
		return nil
	}

	sess.State = StateAuthName
	sess.Transcript.Prompt("And what's your name?")
	return nil
}

func (e *Engine) handleAuthName(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	name := strings.TrimSpace(text.Text)
	if err := ValidName(name); err != nil {
		sess.Transcript.Error("Please enter your full name (at least 2 characters).")
		return nil
	}
	sess.Auth.Name = name

	if err := e.svc.Auth.PhoneSignupSendOTP(ctx, sess.Auth.Phone, sess.Auth.Email, name); err != nil {
		e.reportFailure(sess, "auth.PhoneSignupSendOTP", err)
		return nil
	}
	sess.State = StateAuthPhoneOTP
	sess.Transcript.Prompt("Thanks, " + name + "! We've sent an OTP to " + sess.Auth.Phone + ". Please enter it here.")
	return nil
}

func (e *Engine) handleAuthPhoneOTP(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	code := strings.TrimSpace(text.Text)

	var (
		identity *models.Identity
		err      error
	)
	if sess.Auth.GoogleTempID != "" {
		identity, err = e.svc.Auth.ThirdPartyPhoneVerifyOTP(ctx, sess.Auth.GoogleTempID, code)
	} else {
		identity, err = e.svc.Auth.PhoneSignupVerifyOTP(ctx, sess.Auth.Phone, code)
	}
	if err != nil {
		e.reportFailure(sess, "auth.PhoneOTPVerify", err)
		return nil
	}
	return e.completeLogin(ctx, sess, *identity)
}

// completeLogin upgrades the session identity in place and resumes the
// flow recorded in the pending action.
func (e *Engine) completeLogin(ctx context.Context, sess *SessionContext, identity models.Identity) error {
	identity.Authenticated = true
	sess.Identity = identity
	sess.clearAuthScratch()

	greeting := "You're signed in"
	if identity.Name != "" {
		greeting += ", " + identity.Name
	}
	sess.Transcript.Confirm(greeting + ". Let's continue with your booking.")

	if sess.Pending.Kind == PendingGroupPlan {
		e.startGroupPlan(sess)
		return nil
	}
	e.startPassengerCollection(sess)
	return nil
}

func (e *Engine) startPassengerCollection(sess *SessionContext) {
	sess.clearPassengerScratch()
	sess.State = StatePassengerCount
	sess.Transcript.Prompt("How many passengers are traveling, including you?")
}

func (e *Engine) startGroupPlan(sess *SessionContext) {
	sess.consumePending()
	sess.clearGroupScratch()
	sess.State = StateGroupAskType
	sess.Transcript.Prompt("Are you planning this trip alone or with friends?")
}
