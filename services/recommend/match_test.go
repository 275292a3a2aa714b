package recommend

import (
	"testing"

	"locali/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEventMatch(t *testing.T) {
	assert.Equal(t, 0, CalculateEventMatch(nil, []string{"NLP"}))
	assert.Equal(t, 0, CalculateEventMatch([]string{"NLP"}, nil))
	assert.Equal(t, 100, CalculateEventMatch([]string{"nlp"}, []string{"NLP"}))
	assert.Equal(t, 50, CalculateEventMatch([]string{"Deep Learning"}, []string{"deep learning", "Workshop"}))
	assert.Equal(t, 33, CalculateEventMatch([]string{"AI Ethics"}, []string{"AI Ethics", "Panel", "Meetup"}))
	assert.Equal(t, 67, CalculateEventMatch([]string{"AI Ethics", "Panel"}, []string{"AI Ethics", "Panel", "Meetup"}))
}

func TestRank(t *testing.T) {
	events := []models.Event{
		{ID: "none", Tags: []string{"Hackathon"}},
		{ID: "half", Tags: []string{"NLP", "Panel"}},
		{ID: "full", Tags: []string{"NLP"}},
		{ID: "half-2", Tags: []string{"Deep Learning", "Virtual"}},
		{ID: "third", Tags: []string{"NLP", "Virtual", "Panel"}},
	}
	interests := []string{"NLP", "Deep Learning"}

	ranked := Rank(events, interests, 0)
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"full", "half", "half-2"}, ids)
	assert.Equal(t, 100, ranked[0].MatchScore)

	assert.Len(t, Rank(events, interests, 10), 4)
	assert.Empty(t, Rank(events, nil, 3))
}
