package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPlannerReply(t *testing.T) {
	human, tail := splitPlannerReply("Here is your plan!\n---JSON---\n{\"is_final_itinerary\": true, \"itinerary\": {\"title\": \"Goa\", \"days\": []}}")
	assert.Equal(t, "Here is your plan!", human)
	require.NotNil(t, tail)
	assert.True(t, tail.IsFinalItinerary)
	require.NotNil(t, tail.Itinerary)
	assert.Equal(t, "Goa", tail.Itinerary.Title)
}

func TestSplitPlannerReplyFencedJSON(t *testing.T) {
	human, tail := splitPlannerReply("Where from?\n---JSON---\n```json\n{\"is_final_itinerary\": false, \"updated_fields\": {\"to_city\": \"Goa\"}}\n```")
	assert.Equal(t, "Where from?", human)
	require.NotNil(t, tail)
	assert.False(t, tail.IsFinalItinerary)
	assert.Equal(t, "Goa", tail.UpdatedFields["to_city"])
}

func TestSplitPlannerReplyWithoutMarker(t *testing.T) {
	human, tail := splitPlannerReply("Just chatting.")
	assert.Equal(t, "Just chatting.", human)
	assert.Nil(t, tail)
}

func TestSplitPlannerReplyBadTail(t *testing.T) {
	human, tail := splitPlannerReply("Text\n---JSON---\nnot json at all")
	assert.Equal(t, "Text", human)
	assert.Nil(t, tail, "an unparsable tail degrades to a plain reply")
}
