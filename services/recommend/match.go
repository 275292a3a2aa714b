package recommend

import (
	"math"
	"sort"
	"strings"

	"locali/models"
)

// DefaultLimit is the number of recommendations returned when the caller does not ask for more.
const DefaultLimit = 3

// CalculateEventMatch is the percentage of event tags that appear in the member's interests.
// Comparison is case-insensitive. Either list being empty yields 0.
func CalculateEventMatch(interests, tags []string) int {
	if len(interests) == 0 || len(tags) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(interests))
	for _, in := range interests {
		wanted[strings.ToLower(strings.TrimSpace(in))] = struct{}{}
	}
	matching := 0
	for _, tag := range tags {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(tag))]; ok {
			matching++
		}
	}
	return int(math.Round(float64(matching) / float64(len(tags)) * 100))
}

// Rank scores events against interests, drops zero scores and keeps the best limit.
// Ties keep their input order.
func Rank(events []models.Event, interests []string, limit int) []models.ScoredEvent {
	if limit <= 0 {
		limit = DefaultLimit
	}
	scored := make([]models.ScoredEvent, 0, len(events))
	for _, ev := range events {
		score := CalculateEventMatch(interests, ev.Tags)
		if score > 0 {
			scored = append(scored, models.ScoredEvent{Event: ev, MatchScore: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
