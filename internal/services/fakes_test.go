package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"trackmygig/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// fakeConcertRepo is an in-memory ConcertRepository. CreateConflictOnce makes
// the first Create fail with ErrDuplicateExternalID while still inserting the
// row, simulating a lost insert race.
type fakeConcertRepo struct {
	mu                 sync.Mutex
	byID               map[string]*domain.Concert
	byExternalID       map[string]*domain.Concert
	nextID             int
	createCalls        int
	patchCalls         int
	CreateConflictOnce bool
}

func newFakeConcertRepo() *fakeConcertRepo {
	return &fakeConcertRepo{
		byID:         make(map[string]*domain.Concert),
		byExternalID: make(map[string]*domain.Concert),
	}
}

func (r *fakeConcertRepo) Create(_ context.Context, concert *domain.Concert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if _, exists := r.byExternalID[concert.ExternalID]; exists {
		return domain.ErrDuplicateExternalID
	}
	r.nextID++
	concert.ID = fmt.Sprintf("concert-%d", r.nextID)
	stored := *concert
	r.byID[concert.ID] = &stored
	r.byExternalID[concert.ExternalID] = &stored
	if r.CreateConflictOnce {
		r.CreateConflictOnce = false
		return domain.ErrDuplicateExternalID
	}
	return nil
}

func (r *fakeConcertRepo) GetByID(_ context.Context, id string) (*domain.Concert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeConcertRepo) GetByExternalID(_ context.Context, externalID string) (*domain.Concert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byExternalID[externalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeConcertRepo) Patch(_ context.Context, id string, patch domain.ConcertPatch) (*domain.Concert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patchCalls++
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Artist != nil {
		c.Artist = *patch.Artist
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Location != nil {
		c.Location = *patch.Location
	}
	if patch.Venue != nil {
		c.Venue = *patch.Venue
	}
	if patch.Date != nil {
		c.Date = patch.Date
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.TicketURL != nil {
		c.TicketURL = *patch.TicketURL
	}
	if patch.Genre != nil {
		c.Genre = patch.Genre
	}
	if patch.MinPrice != nil {
		c.MinPrice = patch.MinPrice
	}
	if patch.MaxPrice != nil {
		c.MaxPrice = patch.MaxPrice
	}
	if patch.TicketStatus != nil {
		c.TicketStatus = patch.TicketStatus
	}
	copied := *c
	return &copied, nil
}

// fakeNotifier records Notify calls.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []recordedNotification
	err   error
}

type recordedNotification struct {
	UserID  string
	Type    string
	Title   string
	Message string
}

func (n *fakeNotifier) Notify(_ context.Context, userID, notificationType, title, message string) (*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	n.calls = append(n.calls, recordedNotification{UserID: userID, Type: notificationType, Title: title, Message: message})
	return &domain.Notification{UserID: userID, Type: notificationType, Title: title, Message: message}, nil
}

func (n *fakeNotifier) ListByUserID(context.Context, string, domain.PaginationParams) ([]*domain.Notification, int, error) {
	return nil, 0, nil
}
func (n *fakeNotifier) MarkRead(context.Context, string, []string) error { return nil }
func (n *fakeNotifier) Delete(context.Context, string, []string) error   { return nil }

func (n *fakeNotifier) typesSent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]string, 0, len(n.calls))
	for _, c := range n.calls {
		types = append(types, c.Type)
	}
	return types
}

// fakeUserRepo serves a fixed set of users.
type fakeUserRepo struct {
	users map[string]*domain.User
	stats *domain.UserStats
	err   error
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	if r.users == nil {
		r.users = make(map[string]*domain.User)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.City != nil {
		u.City = *update.City
	}
	if update.FavoriteArtists != nil {
		u.FavoriteArtists = *update.FavoriteArtists
	}
	if update.FavoriteGenre != nil {
		u.FavoriteGenre = *update.FavoriteGenre
	}
	return u, nil
}

func (r *fakeUserRepo) GetStats(context.Context, string) (*domain.UserStats, error) {
	if r.stats != nil {
		return r.stats, nil
	}
	return &domain.UserStats{}, nil
}

// fakeFetcher returns a canned event list.
type fakeFetcher struct {
	events    []domain.ExternalEvent
	err       error
	lastQuery domain.TicketSearchQuery
}

func (f *fakeFetcher) Search(_ context.Context, query domain.TicketSearchQuery) ([]domain.ExternalEvent, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

// fakeCompletion echoes a canned answer.
type fakeCompletion struct {
	answer     string
	err        error
	lastPrompt string
}

func (c *fakeCompletion) Complete(_ context.Context, _, userPrompt string, _ int) (string, error) {
	c.lastPrompt = userPrompt
	if c.err != nil {
		return "", c.err
	}
	return c.answer, nil
}

// fakeJournalRepo is an in-memory JournalRepository with preset counts.
type fakeJournalRepo struct {
	entries  []*domain.JournalEntry
	total    int
	byArtist map[string]int
	countErr error
}

func (r *fakeJournalRepo) Create(_ context.Context, entry *domain.JournalEntry) error {
	entry.ID = fmt.Sprintf("entry-%d", len(r.entries)+1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeJournalRepo) ListByUserID(context.Context, string) ([]*domain.JournalEntryWithConcert, error) {
	return nil, nil
}

func (r *fakeJournalRepo) CountByUserID(context.Context, string) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.total, nil
}

func (r *fakeJournalRepo) CountByUserAndArtist(_ context.Context, _, artist string) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.byArtist[strings.ToLower(artist)], nil
}

func (r *fakeJournalRepo) Update(context.Context, string, string, domain.JournalPatch) (*domain.JournalEntry, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeJournalRepo) Delete(context.Context, string, string) error { return nil }

// fakeFavoriteRepo records upserts.
type fakeFavoriteRepo struct {
	upserts []string
	err     error
}

func (r *fakeFavoriteRepo) Upsert(_ context.Context, userID, concertID string) (*domain.Favorite, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.upserts = append(r.upserts, concertID)
	return &domain.Favorite{ID: "fav-1", UserID: userID, ConcertID: concertID, CreatedAt: time.Now()}, nil
}

func (r *fakeFavoriteRepo) ListByUserID(context.Context, string) ([]*domain.FavoriteConcert, error) {
	return nil, nil
}

func (r *fakeFavoriteRepo) Delete(context.Context, string, string) error { return nil }

// fakeWishlistRepo records upserts.
type fakeWishlistRepo struct {
	upserts []string
	err     error
}

func (r *fakeWishlistRepo) Upsert(_ context.Context, userID, concertID string) (*domain.WishlistItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.upserts = append(r.upserts, concertID)
	return &domain.WishlistItem{ID: "wish-1", UserID: userID, ConcertID: concertID, CreatedAt: time.Now()}, nil
}

func (r *fakeWishlistRepo) ListByUserID(context.Context, string) ([]*domain.WishlistConcert, error) {
	return nil, nil
}

func (r *fakeWishlistRepo) Delete(context.Context, string, string) error { return nil }
