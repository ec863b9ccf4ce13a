package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"sermon-art-backend/internal/middleware"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func authRouter(t *testing.T, check func(c *gin.Context)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(testSecret))
	router.GET("/test", func(c *gin.Context) {
		if check != nil {
			check(c)
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func do(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	w := do(authRouter(t, nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, do(router, "Bearer invalid-token").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, "Bearer a.b.c").Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := uuid.New()
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": user.String()})

	router := authRouter(t, func(c *gin.Context) {
		id, ok := middleware.UserID(c)
		assert.True(t, ok)
		assert.Equal(t, user, id)
	})

	assert.Equal(t, http.StatusOK, do(router, "Bearer "+token).Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte("another-secret"), jwt.MapClaims{"sub": uuid.NewString()})

	w := do(authRouter(t, nil), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "signature is invalid")
}

func TestAuthMiddleware_Expired(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := do(authRouter(t, nil), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
}

func TestAuthMiddleware_SubjectMustBeUUID(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-123"})

	w := do(authRouter(t, nil), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid user id in token")
}
