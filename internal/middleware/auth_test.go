package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/driveshare/driveshare-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetUint("userId"),
			"userType": c.GetString("userType"),
		})
	})
	return r
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newAuthRouter()

	token, err := utils.GenerateToken(&models.User{
		Model:    gorm.Model{ID: 42},
		Email:    "owner@example.com",
		UserType: string(models.UserTypeOwner),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"userType":"owner"`)
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	// WebSocket clients cannot set headers from the browser API
	t.Setenv("JWT_SECRET", "test-secret")
	router := newAuthRouter()

	token, err := utils.GenerateToken(&models.User{
		Model:    gorm.Model{ID: 7},
		UserType: string(models.UserTypeRenter),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsUnexpectedSigningMethod(t *testing.T) {
	// Only HS256 is accepted; a token signed with another method must
	// fail even when it carries the right secret
	t.Setenv("JWT_SECRET", "test-secret")
	router := newAuthRouter()

	token := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"id":       float64(1),
		"userType": "renter",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "signing-secret")
	token, err := utils.GenerateToken(&models.User{Model: gorm.Model{ID: 1}})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
