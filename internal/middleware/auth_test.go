package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comanda-pos/api/internal/auth"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/policy"
	"github.com/google/uuid"
)

const testSecret = "test-secret-for-middleware"

func protectedHandler(t *testing.T, wantUserID uuid.UUID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			t.Error("claims missing from request context")
		} else if claims.UserID != wantUserID {
			t.Errorf("user id: got %v, want %v", claims.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := auth.GenerateToken(testSecret, userID, enum.RoleWaiter)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := middleware.Authenticate(testSecret)(protectedHandler(t, userID))

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler := middleware.Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a token")
	}))

	req := httptest.NewRequest("GET", "/orders", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	handler := middleware.Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a malformed header")
	}))

	for _, header := range []string{"sometoken", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: got %d, want 401", header, rr.Code)
		}
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	token, err := auth.GenerateToken("some-other-secret", uuid.New(), enum.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := middleware.Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a forged token")
	}))

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireCapability(t *testing.T) {
	cases := []struct {
		role string
		cap  policy.Capability
		want int
	}{
		{enum.RoleAdmin, policy.CapManageMenu, http.StatusOK},
		{enum.RoleWaiter, policy.CapUpdateOrderStatus, http.StatusOK},
		{enum.RoleWaiter, policy.CapManageMenu, http.StatusForbidden},
		{enum.RoleCustomer, policy.CapPlaceOrders, http.StatusOK},
		{enum.RoleCustomer, policy.CapViewDashboard, http.StatusForbidden},
	}

	for _, tc := range cases {
		token, err := auth.GenerateToken(testSecret, uuid.New(), tc.role)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}

		chain := middleware.Authenticate(testSecret)(
			middleware.RequireCapability(tc.cap)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})),
		)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, req)

		if rr.Code != tc.want {
			t.Errorf("%s + %s: got %d, want %d", tc.role, tc.cap, rr.Code, tc.want)
		}
	}
}

func TestRequireCapabilityWithoutClaims(t *testing.T) {
	handler := middleware.RequireCapability(policy.CapViewOrders)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without claims")
	}))

	req := httptest.NewRequest("GET", "/orders", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
}
