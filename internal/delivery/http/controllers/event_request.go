package controllers

import (
	"strings"
	"time"

	"trackmygig/internal/domain"
)

// SaveEventRequest is the normalized event payload the client sends when
// saving a provider search result. Optional fields are pointers so an absent
// field is distinguishable from an empty one.
type SaveEventRequest struct {
	ExternalID   string     `json:"external_id"`
	Artist       *string    `json:"artist"`
	Title        *string    `json:"title"`
	Location     *string    `json:"location"`
	Venue        *string    `json:"venue"`
	Date         *time.Time `json:"date"`
	Description  *string    `json:"description"`
	TicketURL    *string    `json:"ticket_url"`
	Genre        *string    `json:"genre"`
	MinPrice     *float64   `json:"min_price"`
	MaxPrice     *float64   `json:"max_price"`
	TicketStatus *string    `json:"ticket_status"`
	Source       string     `json:"source"`
}

// Validate implements Validator.
func (e SaveEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.ExternalID) == "" {
		errs = append(errs, "external_id is required")
	}
	if e.MinPrice != nil && *e.MinPrice < 0 {
		errs = append(errs, "min_price must not be negative")
	}
	if e.MaxPrice != nil && *e.MaxPrice < 0 {
		errs = append(errs, "max_price must not be negative")
	}
	return errs
}

func (e SaveEventRequest) toExternalEvent() domain.ExternalEvent {
	source := e.Source
	if source == "" {
		source = "ticketmaster"
	}
	return domain.ExternalEvent{
		ExternalID:   strings.TrimSpace(e.ExternalID),
		Artist:       e.Artist,
		Title:        e.Title,
		Location:     e.Location,
		Venue:        e.Venue,
		Date:         e.Date,
		Description:  e.Description,
		TicketURL:    e.TicketURL,
		Genre:        e.Genre,
		MinPrice:     e.MinPrice,
		MaxPrice:     e.MaxPrice,
		TicketStatus: e.TicketStatus,
		Source:       source,
	}
}
