package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"capifit/internal/domain"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, role domain.Role, ttl time.Duration, secret string) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		grp.Use(RoleMiddleware(roles...))
	}
	grp.GET("/protected", func(c *gin.Context) {
		id, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token := signToken(t, domain.RoleTrainer, time.Hour, testSecret)
	w := doRequest(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "userId")
}

func TestAuthMiddlewareRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "Authorization header is missing"},
		{"wrong scheme", "Token abc", "Bearer {token}"},
		{"garbage token", "Bearer not.a.jwt", "Invalid token"},
		{"expired token", "Bearer " + signToken(t, domain.RoleTrainer, -time.Hour, testSecret), "Token has expired"},
		{"wrong secret", "Bearer " + signToken(t, domain.RoleTrainer, time.Hour, "other-secret"), "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(protectedRouter(), tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}

func TestRoleMiddlewareForbidsOtherRoles(t *testing.T) {
	r := protectedRouter(domain.RoleTrainer)

	w := doRequest(r, "Bearer "+signToken(t, domain.RoleStudent, time.Hour, testSecret))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, "Bearer "+signToken(t, domain.RoleTrainer, time.Hour, testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
}
