package dialogue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestContentMachineLearning(t *testing.T) {
	out := SuggestContent("ML Workshop")
	assert.True(t, strings.HasPrefix(out, "Suggested content for ML Workshop:\n\n1. Introduction to Machine Learning (15 min)"))
	assert.Contains(t, out, "5. Q&A and Networking (15 min)")
}

func TestSuggestContentDeepLearning(t *testing.T) {
	out := SuggestContent("Intro to Deep Learning")
	assert.True(t, strings.HasPrefix(out, "Suggested content for Intro to Deep Learning:\n\n1. Introduction to Deep Learning (15 min)"))
	assert.Contains(t, out, "3. Hands-on Demo (30-45 min)")
}

func TestSuggestContentFirstMatchWins(t *testing.T) {
	// "ai" matches before "machine learning".
	out := SuggestContent("AI and Machine Learning Night")
	assert.Contains(t, out, "1. Introduction to Deep Learning (15 min)")
}

func TestSuggestContentGeneric(t *testing.T) {
	out := SuggestContent("Book Club")
	assert.True(t, strings.HasPrefix(out, "Suggested content for Book Club:\n\n1. Introduction and Overview (15 min)"))
	assert.Contains(t, out, "Core content related to \"Book Club\"")
	assert.Equal(t, 5, strings.Count(out, " min)\n"))
}

func TestTopicTags(t *testing.T) {
	assert.Equal(t, []string{"Deep Learning", "Neural Networks"}, TopicTags("AI Ethics Roundtable"))
	assert.Equal(t, []string{"Machine Learning"}, TopicTags("Applied ML"))
	assert.Nil(t, TopicTags("Book Club"))
}

func TestSuggestContentTemplateSelection(t *testing.T) {
	cases := []struct {
		name  string
		first string
	}{
		{"Intro to Machine Learning", "1. Introduction to Machine Learning (15 min)"},
		{"Deep Learning Basics", "1. Introduction to Deep Learning (15 min)"},
		{"Campus Cleanup Day", "1. Introduction and Overview (15 min)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := SuggestContent(tc.name)
			assert.True(t, strings.HasPrefix(out, "Suggested content for "+tc.name+":\n\n"+tc.first), out)
		})
	}
}

func TestSuggestContentGenericNamesEventInMainPresentation(t *testing.T) {
	out := SuggestContent("Campus Cleanup Day")

	start := strings.Index(out, "\n2. ")
	end := strings.Index(out, "\n3. ")
	require.True(t, start >= 0 && end > start, out)
	second := out[start:end]
	assert.Contains(t, second, "Main Presentation (30 min)")
	assert.Contains(t, second, "Campus Cleanup Day")
	// heading and section 2 only
	assert.Equal(t, 2, strings.Count(out, "Campus Cleanup Day"))
}
