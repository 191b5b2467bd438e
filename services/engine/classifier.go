package engine

import "strings"

// Classify turns a raw utterance into a typed event, using the session's
// current state to disambiguate. Normalization happens here exactly once;
// handlers downstream never re-parse raw text for commands.
func Classify(state ConversationState, raw string) Event {
	trimmed := strings.TrimSpace(raw)
	lowered := strings.ToLower(trimmed)

	// Reset is the one command honored in every state.
	if isResetCommand(lowered) {
		return ResetEvent{}
	}

	switch state {
	case StateIdle:
		switch {
		case isDealsCommand(lowered):
			return ShowDealsEvent{}
		case isGroupCommand(lowered):
			return GroupPlanEvent{}
		case isPayCommand(lowered):
			return PayEvent{}
		}
	case StateAuthChoice:
		if strings.Contains(lowered, "google") {
			return ThirdPartyStartEvent{}
		}
	case StateGroupAskType:
		if strings.Contains(lowered, "alone") || strings.Contains(lowered, "solo") {
			return SoloEvent{}
		}
	}
	return TextEvent{Text: trimmed}
}

func isResetCommand(s string) bool {
	switch s {
	case "book again", "reset", "start over", "new trip":
		return true
	}
	return false
}

func isDealsCommand(s string) bool {
	return s == "deals" || strings.Contains(s, "show deals") ||
		strings.Contains(s, "show me deals") || strings.Contains(s, "deal of the day")
}

func isGroupCommand(s string) bool {
	return strings.Contains(s, "with friends") || strings.Contains(s, "group trip") ||
		strings.Contains(s, "plan with my friends")
}

func isPayCommand(s string) bool {
	return s == "pay" || s == "pay now" || s == "proceed to payment"
}
