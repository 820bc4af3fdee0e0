package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/adapter/http/dto"
	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/infrastructure/auth"
	"github.com/paisavault/paisavault/internal/usecase"
)

type userServiceStub struct {
	registerFn     func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	getFn          func(ctx context.Context, id string) (*domain.User, error)
	updateFn       func(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return s.authenticateFn(ctx, input)
}

func (s *userServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *userServiceStub) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, input)
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: input.Email, DisplayName: input.DisplayName}, nil
		},
	}, newTestJWTManager())

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:       "asha@example.com",
		DisplayName: "Asha",
		Password:    "Secret123",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
	if resp.User == nil || resp.User.Email != "asha@example.com" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserAlreadyExists
		},
	}, newTestJWTManager())

	body, _ := json.Marshal(dto.RegisterRequest{Email: "asha@example.com", Password: "Secret123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	jwtManager := newTestJWTManager()
	handler := NewAuthHandler(&userServiceStub{
		authenticateFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: input.Email}, nil
		},
	}, jwtManager)

	body, _ := json.Marshal(dto.LoginRequest{Email: "asha@example.com", Password: "Secret123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	claims, err := jwtManager.Verify(resp.Token)
	if err != nil {
		t.Fatalf("expected returned token to verify, got %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected claims for user-1, got %+v", claims)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		authenticateFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}, newTestJWTManager())

	body, _ := json.Marshal(dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "asha@example.com", MonthlyBudget: decimal.NewFromInt(25000)}, nil
		},
	}, newTestJWTManager())

	rec := httptest.NewRecorder()
	handler.Me(rec, authedRequest(http.MethodGet, "/auth/me", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "user-1" || !resp.MonthlyBudget.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("unexpected profile %+v", resp)
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	var captured usecase.UpdateProfileInput
	handler := NewAuthHandler(&userServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error) {
			captured = input
			return &domain.User{ID: input.ID, MonthlyBudget: *input.MonthlyBudget}, nil
		},
	}, newTestJWTManager())

	budget := decimal.NewFromInt(30000)
	body, _ := json.Marshal(dto.UpdateProfileRequest{MonthlyBudget: &budget})

	rec := httptest.NewRecorder()
	handler.UpdateProfile(rec, authedRequest(http.MethodPut, "/auth/me", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ID != "user-1" || captured.MonthlyBudget == nil || !captured.MonthlyBudget.Equal(budget) {
		t.Fatalf("expected budget update for user-1, got %+v", captured)
	}
}
