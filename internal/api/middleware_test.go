package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitlog-app/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, _ := getUserIDFromContext(c)
		role, _ := getUserRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	router.GET("/admin", AuthMiddleware(testSecret), RoleMiddleware(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func signToken(t *testing.T, secret string, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter()
	w := doRequest(router, "/protected", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter()
	w := doRequest(router, "/protected", "Token abc")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := newAuthTestRouter()
	token := signToken(t, testSecret, domain.RoleUser, time.Hour)
	w := doRequest(router, "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router := newAuthTestRouter()
	token := signToken(t, testSecret, domain.RoleUser, -time.Minute)
	w := doRequest(router, "/protected", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	router := newAuthTestRouter()
	token := signToken(t, "other-secret", domain.RoleUser, time.Hour)
	w := doRequest(router, "/protected", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRoleMiddlewareForbidsNonAdmin(t *testing.T) {
	router := newAuthTestRouter()
	token := signToken(t, testSecret, domain.RoleUser, time.Hour)
	w := doRequest(router, "/admin", "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRoleMiddlewareAllowsAdmin(t *testing.T) {
	router := newAuthTestRouter()
	token := signToken(t, testSecret, domain.RoleAdmin, time.Hour)
	w := doRequest(router, "/admin", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
