package engine

// ConversationState is the position of a session inside the booking
// conversation.
type ConversationState string

const (
	StateIdle         ConversationState = "IDLE"
	StateAuthChoice   ConversationState = "AUTH_CHOICE"
	StateAuthEmail    ConversationState = "AUTH_EMAIL"
	StateAuthEmailOTP ConversationState = "AUTH_EMAIL_OTP"
	StateAuthPhone    ConversationState = "AUTH_PHONE"
	StateAuthName     ConversationState = "AUTH_NAME"
	StateAuthPhoneOTP ConversationState = "AUTH_PHONE_OTP"

	StatePassengerCount   ConversationState = "PASSENGER_COUNT"
	StatePassengerDetails ConversationState = "PASSENGER_DETAILS"
	StateAskFromCity      ConversationState = "ASK_FROM_CITY"

	StateGroupAskType    ConversationState = "GROUP_ASK_TYPE"
	StateGroupAskName    ConversationState = "GROUP_ASK_NAME"
	StateGroupAskSource  ConversationState = "GROUP_ASK_SOURCE"
	StateGroupAskCount   ConversationState = "GROUP_ASK_COUNT"
	StateGroupAskOptions ConversationState = "GROUP_ASK_OPTIONS"
)

var knownStates = map[ConversationState]bool{
	StateIdle:             true,
	StateAuthChoice:       true,
	StateAuthEmail:        true,
	StateAuthEmailOTP:     true,
	StateAuthPhone:        true,
	StateAuthName:         true,
	StateAuthPhoneOTP:     true,
	StatePassengerCount:   true,
	StatePassengerDetails: true,
	StateAskFromCity:      true,
	StateGroupAskType:     true,
	StateGroupAskSource:   true,
	StateGroupAskName:     true,
	StateGroupAskCount:    true,
	StateGroupAskOptions:  true,
}

func (s ConversationState) String() string { return string(s) }

// Known reports whether s is one of the enumerated states. An unknown state
// is a configuration fault, not a runtime branch.
func (s ConversationState) Known() bool { return knownStates[s] }
