package service

import (
	"errors"
	"testing"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

func TestAuthorizeAdmin(t *testing.T) {
	tests := []struct {
		name      string
		principal *domain.Principal
		wantErr   error
	}{
		{"admin allowed", &domain.Principal{Username: "root", Profile: domain.ProfileAdmin}, nil},
		{"regular user denied", &domain.Principal{Username: "maria", Profile: domain.ProfileUser}, domain.ErrAccessDenied},
		{"empty profile denied", &domain.Principal{Username: "maria"}, domain.ErrAccessDenied},
		{"nil principal", nil, domain.ErrNoAuthenticatedPrincipal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeAdmin(tt.principal)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AuthorizeAdmin() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeAdminOrOwner(t *testing.T) {
	tests := []struct {
		name      string
		principal *domain.Principal
		owner     string
		wantErr   error
	}{
		{"admin touches any account", &domain.Principal{Username: "root", Profile: domain.ProfileAdmin}, "maria", nil},
		{"owner touches own account", &domain.Principal{Username: "maria", Profile: domain.ProfileUser}, "maria", nil},
		{"user touches other account", &domain.Principal{Username: "maria", Profile: domain.ProfileUser}, "joao", domain.ErrAccessDenied},
		{"nil principal", nil, "maria", domain.ErrNoAuthenticatedPrincipal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeAdminOrOwner(tt.principal, tt.owner)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AuthorizeAdminOrOwner() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
