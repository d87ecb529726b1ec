package domain

// Raw Ticketmaster Discovery API shapes, limited to the fields we consume.

// TicketmasterSearchResponse is the /events.json payload.
type TicketmasterSearchResponse struct {
	Embedded struct {
		Events []TicketmasterEvent `json:"events"`
	} `json:"_embedded"`
	Fault *struct {
		FaultString string `json:"faultstring"`
	} `json:"fault"`
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// TicketmasterEvent is a single raw event record.
type TicketmasterEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Info  string `json:"info"`
	PleaseNote string `json:"pleaseNote"`
	Dates struct {
		Start struct {
			DateTime string `json:"dateTime"`
		} `json:"start"`
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	} `json:"dates"`
	TicketAvailability struct {
		Status string `json:"status"`
	} `json:"ticketAvailability"`
	PriceRanges []struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"priceRanges"`
	Classifications []struct {
		Genre struct {
			Name string `json:"name"`
		} `json:"genre"`
	} `json:"classifications"`
	Embedded struct {
		Attractions []struct {
			Name string `json:"name"`
		} `json:"attractions"`
		Venues []TicketmasterVenue `json:"venues"`
	} `json:"_embedded"`
}

// TicketmasterVenue is a raw venue record nested in an event.
type TicketmasterVenue struct {
	Name string `json:"name"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		StateCode string `json:"stateCode"`
	} `json:"state"`
}
