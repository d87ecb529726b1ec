package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"trackmygig/internal/domain"
)

const (
	defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"
	// Discovery API segment id for Music; every search is pinned to it.
	musicSegmentID = "KZFzniwnSyZfZ7v7nJ"
	defaultSize    = 20
)

type httpFetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPFetcher returns an EventFetcher that calls the Ticketmaster
// Discovery API. baseURL overrides the production endpoint when non-empty
// (used by tests).
func NewHTTPFetcher(client *http.Client, baseURL, apiKey string) domain.EventFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &httpFetcher{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (f *httpFetcher) Search(ctx context.Context, query domain.TicketSearchQuery) ([]domain.ExternalEvent, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("ticketmaster api key not configured")
	}

	size := query.Size
	if size <= 0 {
		size = defaultSize
	}
	params := url.Values{}
	params.Set("apikey", f.apiKey)
	params.Set("size", strconv.Itoa(size))
	params.Set("segmentId", musicSegmentID)
	params.Set("segmentName", "Music")
	if query.Keyword != "" {
		params.Set("keyword", query.Keyword)
	}
	if query.City != "" {
		params.Set("city", query.City)
	}
	if query.Genre != "" {
		params.Set("classificationName", query.Genre)
	}
	if query.StartDateTime != "" {
		params.Set("startDateTime", query.StartDateTime)
	}
	if query.EndDateTime != "" {
		params.Set("endDateTime", query.EndDateTime)
	}

	target := fmt.Sprintf("%s/events.json?%s", f.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from ticketmaster: %w", err)
	}
	defer resp.Body.Close()

	var data domain.TicketmasterSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode ticketmaster response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticketmaster api error: %s", apiErrorMessage(data, resp.StatusCode))
	}

	events := make([]domain.ExternalEvent, 0, len(data.Embedded.Events))
	for _, ev := range data.Embedded.Events {
		events = append(events, MapEvent(ev))
	}
	return events, nil
}

func apiErrorMessage(data domain.TicketmasterSearchResponse, status int) string {
	if data.Fault != nil && data.Fault.FaultString != "" {
		return data.Fault.FaultString
	}
	if len(data.Errors) > 0 && data.Errors[0].Detail != "" {
		return data.Errors[0].Detail
	}
	return fmt.Sprintf("status %d", status)
}
