package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackmygig/internal/delivery/http/helpers"
	"trackmygig/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr  error
	loginErr   error
	user       *domain.User
	token      string
	lastParams domain.SignUpParams
}

func (f *fakeAuthService) SignUp(_ context.Context, params domain.SignUpParams) (*domain.User, string, error) {
	f.lastParams = params
	if f.signUpErr != nil {
		return nil, "", f.signUpErr
	}
	return f.user, f.token, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.user, f.token, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		service    *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"email":"alice@example.com","password":"hunter22pw","full_name":"Alice"}`,
			service: &fakeAuthService{
				user:  &domain.User{ID: "user-1", Email: "alice@example.com"},
				token: "jwt-token",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       `{"email":"","password":""}`,
			service:    &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"alice@example.com","password":"short","full_name":"Alice"}`,
			service:    &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"alice@example.com","password":"hunter22pw","full_name":"Alice"}`,
			service:    &fakeAuthService{signUpErr: domain.ErrDuplicateEmail},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewAuthController(testLogger, tt.service)
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			controller.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			} else {
				assert.Nil(t, envelope.Error)
				require.NotNil(t, envelope.Data)
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{user: &domain.User{ID: "user-1"}, token: "jwt-token"}
		controller := NewAuthController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "http://test/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"hunter22pw"}`))
		rr := httptest.NewRecorder()

		controller.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "jwt-token", data["token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{loginErr: domain.ErrInvalidCredentials}
		controller := NewAuthController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPost, "http://test/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong-pass"}`))
		rr := httptest.NewRecorder()

		controller.Login(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
	})
}
