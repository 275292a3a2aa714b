package memory

import (
	"time"

	"locali/models"
)

// applyEventFields mirrors a $set/Update on the document field names used by the services.
func applyEventFields(ev *models.Event, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "title":
			ev.Title = v.(string)
		case "description":
			ev.Description = v.(string)
		case "date":
			ev.Date = v.(string)
		case "time":
			ev.Time = v.(string)
		case "startTime":
			ev.StartTime = v.(string)
		case "endTime":
			ev.EndTime = v.(string)
		case "location":
			ev.Location = v.(string)
		case "category":
			ev.Category = v.(string)
		case "tags":
			ev.Tags = append([]string(nil), v.([]string)...)
		case "imageURL":
			ev.ImageURL = v.(string)
		case "capacity":
			ev.Capacity = v.(int)
		case "isPublic":
			ev.IsPublic = v.(bool)
		case "requiresRegistration":
			ev.RequiresRegistration = v.(bool)
		case "aiOptimization":
			ev.AIOptimization = v.(bool)
		case "featured":
			ev.Featured = v.(bool)
		}
	}
}

func applyUserFields(u *models.User, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "fieldOfStudy":
			u.FieldOfStudy = v.(string)
		case "organization":
			u.Organization = v.(string)
		case "interests":
			u.Interests = append([]string(nil), v.([]string)...)
		case "photoURL":
			u.PhotoURL = v.(string)
		case "fcmToken":
			u.FCMToken = v.(string)
		case "lastLogin":
			u.LastLogin = v.(time.Time)
		}
	}
}

func cloneEvent(ev models.Event) models.Event {
	ev.Tags = append([]string(nil), ev.Tags...)
	ev.AppliedSuggestions = append([]string(nil), ev.AppliedSuggestions...)
	return ev
}

func cloneUser(u models.User) models.User {
	u.Interests = append([]string(nil), u.Interests...)
	u.RsvpedEvents = append([]string(nil), u.RsvpedEvents...)
	u.AttendedEvents = append([]string(nil), u.AttendedEvents...)
	return u
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func without(list []string, v string) []string {
	out := list[:0:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
