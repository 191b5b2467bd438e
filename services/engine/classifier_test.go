package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIdleCommands(t *testing.T) {
	assert.IsType(t, ResetEvent{}, Classify(StateIdle, "book again"))
	assert.IsType(t, ResetEvent{}, Classify(StateIdle, "  Start Over "))
	assert.IsType(t, ShowDealsEvent{}, Classify(StateIdle, "show deals"))
	assert.IsType(t, GroupPlanEvent{}, Classify(StateIdle, "I want to plan with friends"))
	assert.IsType(t, PayEvent{}, Classify(StateIdle, "pay now"))
	assert.IsType(t, TextEvent{}, Classify(StateIdle, "Plan a trip to Goa"))
}

func TestClassifyAuthChoice(t *testing.T) {
	assert.IsType(t, ThirdPartyStartEvent{}, Classify(StateAuthChoice, "Google please"))
	assert.IsType(t, TextEvent{}, Classify(StateAuthChoice, "email"))
}

func TestClassifyGroupType(t *testing.T) {
	assert.IsType(t, SoloEvent{}, Classify(StateGroupAskType, "I'm going alone"))
	assert.IsType(t, TextEvent{}, Classify(StateGroupAskType, "with friends"))
}

func TestClassifyCommandsAreStateScoped(t *testing.T) {
	// "show deals" typed while answering the group name is just a name.
	ev := Classify(StateGroupAskName, "show deals")
	text, ok := ev.(TextEvent)
	assert.True(t, ok)
	assert.Equal(t, "show deals", text.Text)
}
