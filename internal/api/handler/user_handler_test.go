package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casa-moreno/catalog-system/internal/api/middleware"
	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

type stubUserService struct {
	user       *domain.User
	users      []domain.User
	err        error
	resetEmail string
	resetToken string
}

func (s *stubUserService) Create(context.Context, ports.CreateUserInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetByUsername(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) FindAll(context.Context, *domain.Principal) ([]domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Update(context.Context, *domain.Principal, ports.UpdateUserInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(context.Context, *domain.Principal, string) error {
	return s.err
}

func (s *stubUserService) RequestPasswordReset(_ context.Context, email string) error {
	s.resetEmail = email
	return s.err
}

func (s *stubUserService) ResetPassword(_ context.Context, token, _ string) error {
	s.resetToken = token
	return s.err
}

func sampleAccount() *domain.User {
	return &domain.User{
		ID:           "u1",
		Name:         "Maria Silva",
		Username:     "maria",
		Email:        "maria@example.com",
		PasswordHash: "$2a$10$secret",
		Profile:      domain.ProfileUser,
		Active:       true,
	}
}

func TestCreateUserHandler(t *testing.T) {
	h := NewUserHandler(&stubUserService{user: sampleAccount()})

	body := `{"name":"Maria Silva","username":"maria","password":"longenough","email":"maria@example.com"}`
	c, rec := newJSONContext(t, http.MethodPost, "/users", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	// The response must never expose credential material.
	raw := rec.Body.String()
	if strings.Contains(raw, "secret") || strings.Contains(raw, "password") {
		t.Errorf("response leaks credential material: %s", raw)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["username"] != "maria" {
		t.Errorf("username = %v, want maria", resp["username"])
	}
}

func TestCreateUserHandlerShortPassword(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	body := `{"name":"Maria","username":"maria","password":"short","email":"maria@example.com"}`
	c, _ := newJSONContext(t, http.MethodPost, "/users", body)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("Create() error = %v, want 400", err)
	}
}

func TestListUsersWithoutPrincipal(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newJSONContext(t, http.MethodGet, "/users", "")
	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("List() error = %v, want 401", err)
	}
}

func TestListUsersAsAdmin(t *testing.T) {
	h := NewUserHandler(&stubUserService{users: []domain.User{*sampleAccount()}})

	c, rec := newJSONContext(t, http.MethodGet, "/users", "")
	c.Set(middleware.PrincipalKey, &domain.Principal{Username: "root", Profile: domain.ProfileAdmin})

	if err := h.List(c); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var out []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("listed %d users, want 1", len(out))
	}
}

func TestForgotPasswordAlwaysAccepted(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/users/forgot-password", `{"email":"ghost@example.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if svc.resetEmail != "ghost@example.com" {
		t.Errorf("service received email %q", svc.resetEmail)
	}
	if !strings.Contains(rec.Body.String(), "if the email is registered") {
		t.Errorf("response body = %s, want the non-revealing message", rec.Body.String())
	}
}

func TestResetPasswordHandler(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/users/reset-password", `{"token":"tok-1","new_password":"longenough"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if svc.resetToken != "tok-1" {
		t.Errorf("service received token %q", svc.resetToken)
	}
}

func TestResetPasswordHandlerPropagatesTokenErrors(t *testing.T) {
	h := NewUserHandler(&stubUserService{err: domain.ErrTokenExpired})

	c, _ := newJSONContext(t, http.MethodPost, "/users/reset-password", `{"token":"tok-1","new_password":"longenough"}`)
	if err := h.ResetPassword(c); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("ResetPassword() error = %v, want ErrTokenExpired passed through", err)
	}
}
