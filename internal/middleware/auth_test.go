package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

type stubVerifier struct {
	token *auth.Token
	err   error
}

func (s stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return s.token, s.err
}

type stubRoles struct {
	role string
	err  error
}

func (s stubRoles) RoleByEmail(ctx context.Context, email string) (string, error) {
	return s.role, s.err
}

func authedRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", AuthMiddleware(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": EmailFromContext(c.Request.Context())})
	})
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := authedRouter(stubVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authedRouter(stubVerifier{err: errors.New("expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestAuthMiddleware_AttachesEmail(t *testing.T) {
	token := &auth.Token{Claims: map[string]interface{}{"email": "u@x.com"}}
	router := authedRouter(stubVerifier{token: token})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if want := `"email":"u@x.com"`; !strings.Contains(w.Body.String(), want) {
		t.Fatalf("expected body to carry %s, got %s", want, w.Body.String())
	}
}

func adminRouter(verifier TokenVerifier, roles RoleLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", AuthMiddleware(verifier), RequireAdmin(roles), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAdmin_PassesAdmin(t *testing.T) {
	token := &auth.Token{Claims: map[string]interface{}{"email": "admin@x.com"}}
	router := adminRouter(stubVerifier{token: token}, stubRoles{role: "admin"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	token := &auth.Token{Claims: map[string]interface{}{"email": "u@x.com"}}
	router := adminRouter(stubVerifier{token: token}, stubRoles{role: "user"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}

func TestRequireAdmin_RejectsUnknownPrincipal(t *testing.T) {
	token := &auth.Token{Claims: map[string]interface{}{"email": "ghost@x.com"}}
	router := adminRouter(stubVerifier{token: token}, stubRoles{err: errors.New("no such user")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}
