//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careserve/internal/handler/middleware"
	"careserve/internal/pkg/cookie"
	"careserve/internal/pkg/sessiontoken"
	"careserve/internal/usecase"
	"careserve/internal/usecase/shared"
	"careserve/tests/common/authtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "auth-middleware-test-secret"

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router    *gin.Engine
	lastActor *shared.Actor
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	validator := usecase.NewTokenValidator(sessiontoken.NewVerifier(testSecret))
	authMiddleware := middleware.NewAuthMiddleware(validator)

	s.lastActor = nil
	s.router = gin.New()
	s.router.GET("/protected", authMiddleware.RequireAuth(), func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		require.True(s.T(), ok, "actor must be present behind RequireAuth")
		s.lastActor = &actor
		c.Status(http.StatusOK)
	})
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) perform(mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	userID := uuid.New()

	s.Run("accepts a bearer token and exposes the actor", func() {
		token := authtest.IssueToken(s.T(), testSecret, userID, "client")

		rec := s.perform(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})

		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(s.lastActor)
		s.Equal(userID, s.lastActor.ID)
		s.Equal("client", s.lastActor.Role.String())
	})

	s.Run("accepts the session cookie", func() {
		token := authtest.IssueToken(s.T(), testSecret, userID, "admin")

		rec := s.perform(func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token})
		})

		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(s.lastActor)
		s.Equal("admin", s.lastActor.Role.String())
	})

	s.Run("cookie wins over the authorization header", func() {
		cookieToken := authtest.IssueToken(s.T(), testSecret, userID, "pro")
		headerToken := authtest.IssueToken(s.T(), testSecret, uuid.New(), "client")

		rec := s.perform(func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: cookieToken})
			r.Header.Set("Authorization", "Bearer "+headerToken)
		})

		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(s.lastActor)
		s.Equal(userID, s.lastActor.ID)
		s.Equal("pro", s.lastActor.Role.String())
	})

	s.Run("rejects a missing token", func() {
		rec := s.perform(nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Contains(rec.Body.String(), "Access token required")
		s.Nil(s.lastActor)
	})

	s.Run("rejects an expired token", func() {
		token := authtest.IssueTokenWithExpiry(s.T(), testSecret, userID, "client", time.Now().Add(-time.Minute))

		rec := s.perform(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})

		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Contains(rec.Body.String(), "Invalid or expired token")
	})

	s.Run("rejects a token signed with another secret", func() {
		token := authtest.IssueToken(s.T(), "some-other-secret", userID, "client")

		rec := s.perform(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})

		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("rejects a token carrying an unknown role", func() {
		token := authtest.IssueToken(s.T(), testSecret, userID, "superuser")

		rec := s.perform(func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})

		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
