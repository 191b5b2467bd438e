package engine

import (
	"context"
	"fmt"
	"strings"

	"travelorbit/models"
)

func (e *Engine) handleGroupAskType(ctx context.Context, sess *SessionContext, ev Event) error {
	switch ev.(type) {
	case SoloEvent:
		sess.clearGroupScratch()
		sess.State = StateIdle
		sess.Transcript.Prompt("No problem, we'll plan it just for you. Tell me where you'd like to go.")
		return nil
	case TextEvent:
		sess.State = StateGroupAskName
		sess.Transcript.Prompt("Nice, a group trip! What should we call your group?")
		return nil
	}
	e.promptExpectation(sess)
	return nil
}

func (e *Engine) handleGroupAskName(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	name := strings.TrimSpace(text.Text)
	if err := ValidName(name); err != nil {
		sess.Transcript.Error("Please give the group a name of at least 2 characters.")
		return nil
	}
	sess.Group.Name = name
	sess.State = StateGroupAskSource
	sess.Transcript.Prompt("Which city will the group start from?")
	return nil
}

func (e *Engine) handleGroupAskSource(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	city := strings.TrimSpace(text.Text)
	if err := ValidCity(city); err != nil {
		sess.Transcript.Error("Please enter the city the group will start from.")
		return nil
	}
	sess.Group.SourceCity = city
	sess.State = StateGroupAskCount
	sess.Transcript.Prompt("How many people are in the group, including you?")
	return nil
}

func (e *Engine) handleGroupAskCount(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	n, err := ParseCount(text.Text, 2)
	if err != nil {
		sess.Transcript.Error("A group needs at least 2 people. Please enter a whole number, 2 or more.")
		return nil
	}
	sess.Group.ExpectedCount = n
	sess.State = StateGroupAskOptions
	sess.Transcript.Prompt("Last step: list at least two destination options for the group to vote on, separated by commas.")
	return nil
}

func (e *Engine) handleGroupAskOptions(ctx context.Context, sess *SessionContext, ev Event) error {
	text, ok := ev.(TextEvent)
	if !ok {
		e.promptExpectation(sess)
		return nil
	}
	options, err := ParseCommaList(text.Text, 2)
	if err != nil {
		sess.Transcript.Error("I need at least two destinations, separated by commas, for example \"Goa, Manali\".")
		return nil
	}
	sess.Group.Options = options

	created, err := e.svc.Groups.CreateGroup(ctx, sess.Identity, sess.Group.Name,
		sess.Group.SourceCity, sess.Group.ExpectedCount, options)
	if err != nil {
		e.reportFailure(sess, "groups.CreateGroup", err)
		return nil
	}
	groupName := sess.Group.Name
	sess.clearGroupScratch()
	sess.State = StateIdle
	sess.Transcript.Directive(models.DirectiveGroupLink, created, fmt.Sprintf(
		"%q is ready with %d destination options! Share the link with your friends so they can vote. When everyone's in, I'll tally the result.",
		groupName, len(options)))
	return nil
}
