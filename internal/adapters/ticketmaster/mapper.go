package ticketmaster

import (
	"strings"
	"time"

	"trackmygig/internal/domain"
)

// sourceName tags every normalized event with its provider.
const sourceName = "ticketmaster"

// MapEvent normalizes a raw Discovery API event into the canonical
// ExternalEvent shape. It is total: malformed or missing fields become nil,
// never an error.
func MapEvent(ev domain.TicketmasterEvent) domain.ExternalEvent {
	out := domain.ExternalEvent{
		ExternalID: ev.ID,
		Source:     sourceName,
	}

	// Artist: first listed attraction, falling back to the event title.
	artist := ev.Name
	if len(ev.Embedded.Attractions) > 0 && ev.Embedded.Attractions[0].Name != "" {
		artist = ev.Embedded.Attractions[0].Name
	}
	out.Artist = optString(artist)
	out.Title = optString(ev.Name)

	if len(ev.Embedded.Venues) > 0 {
		venue := ev.Embedded.Venues[0]
		out.Venue = optString(venue.Name)

		var parts []string
		if venue.City.Name != "" {
			parts = append(parts, venue.City.Name)
		}
		if venue.State.StateCode != "" {
			parts = append(parts, venue.State.StateCode)
		}
		out.Location = optString(strings.Join(parts, ", "))
	}

	if ev.Dates.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, ev.Dates.Start.DateTime); err == nil {
			out.Date = &t
		}
	}

	desc := ev.Info
	if desc == "" {
		desc = ev.PleaseNote
	}
	out.Description = optString(desc)
	out.TicketURL = optString(ev.URL)

	if len(ev.Classifications) > 0 {
		out.Genre = optString(ev.Classifications[0].Genre.Name)
	}

	if len(ev.PriceRanges) > 0 {
		out.MinPrice = ev.PriceRanges[0].Min
		out.MaxPrice = ev.PriceRanges[0].Max
	}

	// Status code lives in either of two provider fields; first non-empty wins.
	status := ev.Dates.Status.Code
	if status == "" {
		status = ev.TicketAvailability.Status
	}
	out.TicketStatus = optString(status)

	return out
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
