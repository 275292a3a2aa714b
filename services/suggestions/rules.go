package suggestions

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"locali/models"
)

// Suggestion ids are stable per type so applied state survives regeneration.
var suggestionIDs = map[string]string{
	models.SuggestionTopic:    "1",
	models.SuggestionFormat:   "2",
	models.SuggestionTiming:   "3",
	models.SuggestionAudience: "4",
}

const (
	minTopicInterest = 2
	technicalShare   = 0.5
	fillShare        = 0.8
	newcomerShare    = 0.3
)

var technicalFields = []string{
	"computer", "software", "engineering", "data", "informatics",
	"math", "statistics", "physics", "electrical",
}

// Suggest applies the optimization rules to an event and its attendee profiles.
// The result is ordered topic, format, timing, audience.
func Suggest(ev models.Event, attendees []models.AttendeeProfile) []models.Suggestion {
	out := []models.Suggestion{}
	if s, ok := topicRule(ev, attendees); ok {
		out = append(out, s)
	}
	if s, ok := formatRule(attendees); ok {
		out = append(out, s)
	}
	if s, ok := timingRule(ev); ok {
		out = append(out, s)
	}
	if s, ok := audienceRule(attendees); ok {
		out = append(out, s)
	}
	for i := range out {
		out[i].Applied = contains(ev.AppliedSuggestions, out[i].ID)
	}
	return out
}

func topicRule(ev models.Event, attendees []models.AttendeeProfile) (models.Suggestion, bool) {
	covered := make(map[string]bool, len(ev.Tags))
	for _, t := range ev.Tags {
		covered[strings.ToLower(strings.TrimSpace(t))] = true
	}
	counts := map[string]int{}
	display := map[string]string{}
	for _, a := range attendees {
		seen := map[string]bool{}
		for _, in := range a.Interests {
			key := strings.ToLower(strings.TrimSpace(in))
			if key == "" || covered[key] || seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
			if _, ok := display[key]; !ok {
				display[key] = strings.TrimSpace(in)
			}
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] == counts[keys[j]] {
			return keys[i] < keys[j]
		}
		return counts[keys[i]] > counts[keys[j]]
	})
	if len(keys) == 0 || counts[keys[0]] < minTopicInterest {
		return models.Suggestion{}, false
	}
	best := keys[0]
	return models.Suggestion{
		ID:      suggestionIDs[models.SuggestionTopic],
		Type:    models.SuggestionTopic,
		Content: fmt.Sprintf("Add a section on %s", display[best]),
		Reason:  fmt.Sprintf("%d participants have expressed interest in %s in their profiles", counts[best], display[best]),
	}, true
}

func formatRule(attendees []models.AttendeeProfile) (models.Suggestion, bool) {
	if len(attendees) == 0 {
		return models.Suggestion{}, false
	}
	technical := 0
	for _, a := range attendees {
		if isTechnical(a.FieldOfStudy) {
			technical++
		}
	}
	share := float64(technical) / float64(len(attendees))
	if share < technicalShare {
		return models.Suggestion{}, false
	}
	return models.Suggestion{
		ID:      suggestionIDs[models.SuggestionFormat],
		Type:    models.SuggestionFormat,
		Content: "Include a hands-on coding session",
		Reason:  fmt.Sprintf("%d%% of registered participants have technical backgrounds", percent(share)),
	}, true
}

func timingRule(ev models.Event) (models.Suggestion, bool) {
	if ev.Capacity <= 0 {
		return models.Suggestion{}, false
	}
	share := float64(ev.AttendeeCount) / float64(ev.Capacity)
	if share < fillShare {
		return models.Suggestion{}, false
	}
	return models.Suggestion{
		ID:      suggestionIDs[models.SuggestionTiming],
		Type:    models.SuggestionTiming,
		Content: "Book a larger room or add a second session",
		Reason:  fmt.Sprintf("%d%% of seats are already reserved", percent(share)),
	}, true
}

func audienceRule(attendees []models.AttendeeProfile) (models.Suggestion, bool) {
	if len(attendees) == 0 {
		return models.Suggestion{}, false
	}
	newcomers := 0
	for _, a := range attendees {
		if a.AttendedEvents == 0 {
			newcomers++
		}
	}
	share := float64(newcomers) / float64(len(attendees))
	if share < newcomerShare {
		return models.Suggestion{}, false
	}
	return models.Suggestion{
		ID:      suggestionIDs[models.SuggestionAudience],
		Type:    models.SuggestionAudience,
		Content: "Consider inviting beginners with a separate introduction track",
		Reason:  fmt.Sprintf("%d%% of registered participants are new to the field", percent(share)),
	}, true
}

func isTechnical(field string) bool {
	field = strings.ToLower(field)
	for _, kw := range technicalFields {
		if strings.Contains(field, kw) {
			return true
		}
	}
	return false
}

func percent(share float64) int { return int(math.Round(share * 100)) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
