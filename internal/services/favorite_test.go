package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"trackmygig/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_Add(t *testing.T) {
	concerts := newTestConcertService(newFakeConcertRepo())
	favRepo := &fakeFavoriteRepo{}
	notifier := &fakeNotifier{}
	svc := NewFavoriteService(favRepo, concerts, notifier, discardLogger(), 2*time.Second)

	concert, favorite, err := svc.Add(context.Background(), "user-1", sampleEvent())
	require.NoError(t, err)
	require.NotNil(t, concert)
	require.NotNil(t, favorite)
	assert.Equal(t, []string{concert.ID}, favRepo.upserts)
	assert.Equal(t, []string{domain.NotificationGeneral}, notifier.typesSent())
	assert.Equal(t, "The Midnight was added to your favorites.", notifier.calls[0].Message)
}

func TestFavoriteService_Add_EmitsSignals(t *testing.T) {
	repo := newFakeConcertRepo()
	concerts := newTestConcertService(repo)
	_, err := concerts.Reconcile(context.Background(), sampleEvent())
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	svc := NewFavoriteService(&fakeFavoriteRepo{}, concerts, notifier, discardLogger(), 2*time.Second)

	update := sampleEvent()
	update.TicketStatus = ptr("low")
	update.MinPrice = ptr(40.0)
	_, _, err = svc.Add(context.Background(), "user-1", update)
	require.NoError(t, err)

	assert.Equal(t, []string{
		domain.NotificationGeneral,
		string(domain.SignalLowTickets),
		string(domain.SignalPriceDrop),
	}, notifier.typesSent())
}

func TestFavoriteService_Add_MissingExternalID(t *testing.T) {
	svc := NewFavoriteService(&fakeFavoriteRepo{}, newTestConcertService(newFakeConcertRepo()), &fakeNotifier{}, discardLogger(), 2*time.Second)

	_, _, err := svc.Add(context.Background(), "user-1", domain.ExternalEvent{})
	require.ErrorIs(t, err, domain.ErrMissingExternalID)
}

func TestFavoriteService_Add_NotificationFailureIsNotFatal(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("notification store down")}
	svc := NewFavoriteService(&fakeFavoriteRepo{}, newTestConcertService(newFakeConcertRepo()), notifier, discardLogger(), 2*time.Second)

	concert, favorite, err := svc.Add(context.Background(), "user-1", sampleEvent())
	require.NoError(t, err)
	assert.NotNil(t, concert)
	assert.NotNil(t, favorite)
}

func TestWishlistService_Add(t *testing.T) {
	concerts := newTestConcertService(newFakeConcertRepo())
	notifier := &fakeNotifier{}
	svc := NewWishlistService(&fakeWishlistRepo{}, concerts, notifier, discardLogger(), 2*time.Second)

	concert, item, err := svc.Add(context.Background(), "user-1", sampleEvent())
	require.NoError(t, err)
	require.NotNil(t, concert)
	require.NotNil(t, item)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, domain.NotificationReminder, notifier.calls[0].Type)
}
