package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/pkg/auth"
)

func newTestRouter(m *AuthMiddleware, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{m.JWTAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, CallerEmail(c))
	})

	router.GET("/protected", handlers...)
	return router
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "graduation-system-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role models.RoleType) string {
	t.Helper()
	access, _, _, err := svc.GenerateTokenPair(&models.User{ID: 7, Email: "teacher@uni.bg", RoleType: role})
	require.NoError(t, err)
	return access
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newTestRouter(NewAuthMiddleware(newTestJWTService()))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	svc := newTestJWTService()
	router := newTestRouter(NewAuthMiddleware(svc))
	token := issueToken(t, svc, models.RoleTeacher)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "teacher@uni.bg", recorder.Body.String())
}

func TestJWTAuthRawTokenWithoutBearerPrefix(t *testing.T) {
	svc := newTestJWTService()
	router := newTestRouter(NewAuthMiddleware(svc))
	token := issueToken(t, svc, models.RoleTeacher)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := newTestRouter(NewAuthMiddleware(newTestJWTService()))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRoleRequired(t *testing.T) {
	svc := newTestJWTService()
	router := newTestRouter(NewAuthMiddleware(svc), "TEACHER", "ADMIN")

	teacherToken := issueToken(t, svc, models.RoleTeacher)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+teacherToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	studentToken := issueToken(t, svc, models.RoleStudent)
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
