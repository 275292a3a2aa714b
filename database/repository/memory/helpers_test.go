package memory

import (
	eventRepo "locali/database/repository/event"
	"locali/models"
)

func eventQuery(featured bool, limit int) eventRepo.Query {
	return eventRepo.Query{Featured: featured, Limit: limit}
}

func titles(evs []models.Event) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Title)
	}
	return out
}
