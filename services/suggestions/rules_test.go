package suggestions

import (
	"testing"

	"locali/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(field string, attended int, interests ...string) models.AttendeeProfile {
	return models.AttendeeProfile{FieldOfStudy: field, AttendedEvents: attended, Interests: interests}
}

func types(list []models.Suggestion) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Type)
	}
	return out
}

func TestSuggestAllRules(t *testing.T) {
	ev := models.Event{Tags: []string{"Deep Learning"}, Capacity: 4, AttendeeCount: 4}
	attendees := []models.AttendeeProfile{
		profile("Computer Science", 0, "AI Ethics", "deep learning"),
		profile("Electrical Engineering", 2, "ai ethics"),
		profile("History", 0, "AI Ethics", "Art"),
		profile("Data Science", 3),
	}

	got := Suggest(ev, attendees)
	require.Equal(t, []string{"topic", "format", "timing", "audience"}, types(got))
	assert.Equal(t, "Add a section on AI Ethics", got[0].Content)
	assert.Contains(t, got[0].Reason, "3 participants")
	assert.Contains(t, got[1].Reason, "75%")
	assert.Contains(t, got[2].Reason, "100%")
	assert.Contains(t, got[3].Reason, "50%")
}

func TestSuggestNothingForEmptyEvent(t *testing.T) {
	assert.Empty(t, Suggest(models.Event{}, nil))
}

func TestTopicNeedsTwoUncoveredVotes(t *testing.T) {
	ev := models.Event{Tags: []string{"NLP"}}
	attendees := []models.AttendeeProfile{
		profile("History", 1, "NLP", "Robotics"),
		profile("History", 1, "nlp"),
	}
	assert.Empty(t, Suggest(ev, attendees))
}

func TestTimingRespectsUnlimitedCapacity(t *testing.T) {
	_, ok := timingRule(models.Event{AttendeeCount: 500})
	assert.False(t, ok)
	_, ok = timingRule(models.Event{Capacity: 10, AttendeeCount: 7})
	assert.False(t, ok)
	_, ok = timingRule(models.Event{Capacity: 10, AttendeeCount: 8})
	assert.True(t, ok)
}

func TestAppliedFlagFollowsEvent(t *testing.T) {
	ev := models.Event{AppliedSuggestions: []string{"4"}}
	got := Suggest(ev, []models.AttendeeProfile{profile("History", 0)})
	require.Len(t, got, 1)
	assert.Equal(t, models.SuggestionAudience, got[0].Type)
	assert.True(t, got[0].Applied)
}
