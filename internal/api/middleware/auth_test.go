package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":     "maria",
		"user_id": "u1",
		"scope":   domain.ProfileUser,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

// invoke runs the Auth middleware against a request carrying the given
// Authorization header and returns the stored principal plus the error.
func invokeAuth(t *testing.T, header string) (*domain.Principal, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal *domain.Principal
	handler := Auth(testSecret)(func(c echo.Context) error {
		principal, _ = c.Get(PrincipalKey).(*domain.Principal)
		return c.NoContent(http.StatusOK)
	})
	return principal, handler(c)
}

func TestAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())

	principal, err := invokeAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("Auth() error = %v", err)
	}
	if principal == nil {
		t.Fatal("principal not stored in context")
	}
	if principal.Username != "maria" || principal.UserID != "u1" || principal.Profile != domain.ProfileUser {
		t.Errorf("principal = %+v, want claims mapped", principal)
	}
}

func TestAuthRejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noScope := validClaims()
	delete(noScope, "scope")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", validClaims())},
		{"expired token", "Bearer " + signToken(t, testSecret, expired)},
		{"missing scope claim", "Bearer " + signToken(t, testSecret, noScope)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := invokeAuth(t, tt.header)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Errorf("Auth() error = %v, want 401", err)
			}
			if principal != nil {
				t.Error("principal stored despite rejection")
			}
		})
	}
}

func TestAuthRejectsWrongAlgorithm(t *testing.T) {
	// A token signed with "none" must never be accepted even when its
	// claims look right.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("build unsigned token: %v", err)
	}

	principal, invokeErr := invokeAuth(t, "Bearer "+unsigned)
	he, ok := invokeErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("Auth() error = %v, want 401", invokeErr)
	}
	if principal != nil {
		t.Error("principal stored for unsigned token")
	}
}
