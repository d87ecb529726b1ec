package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"trackmygig/internal/domain"
)

type assistantService struct {
	userRepo       domain.UserRepository
	fetcher        domain.EventFetcher
	completions    domain.CompletionClient
	contextTimeout time.Duration
}

// NewAssistantService creates an AssistantService. completions may be nil;
// the assistant then answers from provider lookups only.
func NewAssistantService(
	userRepo domain.UserRepository,
	fetcher domain.EventFetcher,
	completions domain.CompletionClient,
	timeout time.Duration,
) domain.AssistantService {
	return &assistantService{
		userRepo:       userRepo,
		fetcher:        fetcher,
		completions:    completions,
		contextTimeout: timeout,
	}
}

// searchIntent is what the assistant understood from a free-text message.
type searchIntent struct {
	Keyword string
	City    string
	Genre   string
}

var knownGenres = []string{
	"rock", "pop", "jazz", "metal", "country", "hip-hop", "hip hop", "rap",
	"electronic", "edm", "indie", "folk", "blues", "classical", "latin",
	"r&b", "reggae", "punk", "synthwave",
}

// greetings and other small talk that should never trigger a lookup.
var smallTalk = []string{"hi", "hello", "hey", "thanks", "thank you", "yo", "sup"}

const assistantSystemPrompt = "You are a friendly concert-discovery assistant. " +
	"Answer briefly and stay on the topic of live music, artists, and tickets."

func (s *assistantService) Reply(ctx context.Context, userID, message string) (*domain.AssistantReply, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidInput
	}

	if isSmallTalk(message) {
		return &domain.AssistantReply{
			Reply: "Hey! Ask me about artists, genres, or shows near a city and I'll dig up tickets.",
		}, nil
	}

	intent := parseIntent(message)
	if intent.City == "" {
		// Fall back to the user's home city so "any rock shows?" still
		// searches somewhere sensible.
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			intent.City = user.City
		}
	}

	start, end := parseDateRange(strings.ToLower(message), time.Now().UTC())

	events, err := s.fetcher.Search(ctx, domain.TicketSearchQuery{
		Keyword:       intent.Keyword,
		City:          intent.City,
		Genre:         intent.Genre,
		StartDateTime: start,
		EndDateTime:   end,
		Size:          5,
	})
	if err == nil && len(events) > 0 {
		return &domain.AssistantReply{
			Reply: replyForIntent(intent, len(events)),
			HTML:  formatEventsHTML(events),
		}, nil
	}

	if s.completions == nil {
		return &domain.AssistantReply{
			Reply: "I couldn't find matching shows right now. Try an artist name or add a city, like \"rock concerts in Denver\".",
		}, nil
	}
	answer, err := s.completions.Complete(ctx, assistantSystemPrompt, message, 200)
	if err != nil {
		return nil, fmt.Errorf("generate assistant reply: %w", err)
	}
	return &domain.AssistantReply{Reply: answer}, nil
}

func isSmallTalk(message string) bool {
	normalized := strings.ToLower(strings.Trim(message, " .!?"))
	for _, phrase := range smallTalk {
		if normalized == phrase {
			return true
		}
	}
	return false
}

// parseIntent pulls a city ("... in Denver"), a known genre word, and a
// residual keyword out of the message. Filler words are stripped so "find me
// concerts by The Midnight" keywords on the artist, not the verbs.
func parseIntent(message string) searchIntent {
	var intent searchIntent
	lower := strings.ToLower(message)

	if idx := strings.LastIndex(lower, " in "); idx >= 0 {
		city := strings.Trim(message[idx+len(" in "):], " .!?")
		if city != "" && len(strings.Fields(city)) <= 3 {
			intent.City = city
			message = message[:idx]
			lower = lower[:idx]
		}
	}

	for _, genre := range knownGenres {
		if strings.Contains(lower, genre) {
			intent.Genre = genre
			break
		}
	}

	fillers := []string{
		"find", "me", "any", "some", "shows", "show", "concerts", "concert",
		"gigs", "gig", "events", "event", "tickets", "ticket", "for", "by",
		"a", "an", "the", "near", "around", "please", "want", "to", "see",
		"looking", "is", "are", "there", "playing", "live", "music", "what",
		"whats", "what's", "when", "where", "can", "i", "you",
		"this", "tonight", "today", "weekend", "week",
	}
	fillerSet := make(map[string]struct{}, len(fillers))
	for _, w := range fillers {
		fillerSet[w] = struct{}{}
	}

	var keywords []string
	for _, word := range strings.Fields(message) {
		normalized := strings.ToLower(strings.Trim(word, ",.!?"))
		if normalized == "" {
			continue
		}
		if _, skip := fillerSet[normalized]; skip {
			continue
		}
		if normalized == intent.Genre {
			continue
		}
		keywords = append(keywords, strings.Trim(word, ",.!?"))
	}
	intent.Keyword = strings.Join(keywords, " ")
	return intent
}

// parseDateRange turns time words in the message into a provider date window.
// "weekend" is checked before "week" because it contains it.
func parseDateRange(lower string, now time.Time) (start, end string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case strings.Contains(lower, "tonight"), strings.Contains(lower, "today"):
		return providerTime(day), providerTime(day.AddDate(0, 0, 1))
	case strings.Contains(lower, "weekend"):
		saturday := day.AddDate(0, 0, (int(time.Saturday)-int(day.Weekday())+7)%7)
		return providerTime(saturday), providerTime(saturday.AddDate(0, 0, 2))
	case strings.Contains(lower, "week"):
		return providerTime(day), providerTime(day.AddDate(0, 0, 7))
	}
	return "", ""
}

func providerTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05Z")
}

func replyForIntent(intent searchIntent, count int) string {
	subject := "shows"
	if intent.Genre != "" {
		subject = intent.Genre + " shows"
	}
	if intent.Keyword != "" {
		subject = fmt.Sprintf("shows matching %q", intent.Keyword)
	}
	if intent.City != "" {
		return fmt.Sprintf("Found %d %s near %s:", count, subject, intent.City)
	}
	return fmt.Sprintf("Found %d %s:", count, subject)
}

// formatEventsHTML renders a compact list the client drops straight into the
// chat transcript. All provider-supplied text is escaped.
func formatEventsHTML(events []domain.ExternalEvent) string {
	var b strings.Builder
	b.WriteString("<ul class=\"chat-events\">")
	for _, ev := range events {
		b.WriteString("<li>")
		b.WriteString("<strong>")
		b.WriteString(html.EscapeString(stringOr(ev.Artist, "Unknown artist")))
		b.WriteString("</strong>")
		if venue := stringOr(ev.Venue, ""); venue != "" {
			b.WriteString(" at " + html.EscapeString(venue))
		}
		if loc := stringOr(ev.Location, ""); loc != "" {
			b.WriteString(", " + html.EscapeString(loc))
		}
		if ev.Date != nil {
			b.WriteString(" &mdash; " + ev.Date.Format("Jan 2, 2006"))
		}
		if url := stringOr(ev.TicketURL, ""); url != "" {
			b.WriteString(fmt.Sprintf(" <a href=%q target=\"_blank\">Tickets</a>", url))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
