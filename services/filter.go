package services

import (
	"strings"

	"campusshield/models"
)

const FilterAll = "all"

// Filter narrows the dashboard list. Empty or "all" disables a field;
// the set fields must all match.
type Filter struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	Query    string `form:"q"`
}

func (f Filter) Match(c *models.Complaint) bool {
	if cat := strings.TrimSpace(f.Category); cat != "" && cat != FilterAll {
		if !strings.EqualFold(string(c.Category), cat) {
			return false
		}
	}
	if st := strings.TrimSpace(f.Status); st != "" && !strings.EqualFold(st, FilterAll) {
		if !c.Status.Equal(models.Status(st)) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.Ticket()), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			return false
		}
	}
	return true
}

func FilterComplaints(complaints []models.Complaint, f Filter) []models.Complaint {
	out := make([]models.Complaint, 0, len(complaints))
	for i := range complaints {
		if f.Match(&complaints[i]) {
			out = append(out, complaints[i])
		}
	}
	return out
}

type StatusCounts struct {
	Pending  int `json:"pending"`
	InReview int `json:"inReview"`
	Resolved int `json:"resolved"`
	Total    int `json:"total"`
}

func CountByStatus(complaints []models.Complaint) StatusCounts {
	var counts StatusCounts
	for i := range complaints {
		switch complaints[i].Status.Normalize() {
		case models.StatusPending:
			counts.Pending++
		case models.StatusInReview:
			counts.InReview++
		case models.StatusResolved:
			counts.Resolved++
		}
	}
	counts.Total = len(complaints)
	return counts
}
