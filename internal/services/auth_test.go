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

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenIssuer struct{ err error }

func (f fakeTokenIssuer) Issue(userID, _ string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

type fakeEmailService struct {
	welcomes []string
	alerts   []string
	err      error
}

func (f *fakeEmailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data.Email)
	return nil
}

func (f *fakeEmailService) SendTicketAlert(_ context.Context, data *domain.TicketAlertEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, data.Email)
	return nil
}

func newTestAuthService(users *fakeUserRepo, emails domain.EmailService) domain.AuthService {
	return NewAuthService(users, fakeHasher{}, fakeTokenIssuer{}, emails, discardLogger(), time.Hour, 2*time.Second)
}

func TestAuthService_SignUp(t *testing.T) {
	users := &fakeUserRepo{}
	emails := &fakeEmailService{}
	svc := newTestAuthService(users, emails)

	user, token, err := svc.SignUp(context.Background(), domain.SignUpParams{
		Email:    "Alice@Example.com",
		Password: "hunter22",
		FullName: "Alice",
		City:     "Denver",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "token-for-"+user.ID, token)
	assert.Equal(t, []string{"alice@example.com"}, emails.welcomes)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "alice@example.com"},
	}}
	svc := newTestAuthService(users, nil)

	_, _, err := svc.SignUp(context.Background(), domain.SignUpParams{Email: "alice@example.com", Password: "pw"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_SignUp_WelcomeEmailFailureIsNotFatal(t *testing.T) {
	svc := newTestAuthService(&fakeUserRepo{}, &fakeEmailService{err: errors.New("ses down")})

	_, token, err := svc.SignUp(context.Background(), domain.SignUpParams{Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "alice@example.com", PasswordHash: "salt:hunter22", Salt: "salt"},
	}}
	svc := newTestAuthService(users, nil)

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "token-for-user-1", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "nope")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ghost@example.com", "hunter22")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
