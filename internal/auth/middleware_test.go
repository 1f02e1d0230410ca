package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/domain"
	apperrors "github.com/talkserve/backend/pkg/util"
)

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, pgx.ErrNoRows
}

type stubAdminRepo struct {
	admins map[string]bool
}

func (s *stubAdminRepo) IsAdmin(_ context.Context, email string) (bool, error) {
	return s.admins[email], nil
}

func newTestApp(mw *auth.AuthMiddleware) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) (err error) {
		defer func() {
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				c.Status(domainErr.HTTPStatus)
				err = c.JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
			}
		}()
		return c.Next()
	})
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"data": principal.User.Email})
	})
	app.Get("/admin", mw.Handle, mw.RequirePlatformAdmin, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})
	return app
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", 30)
	app := newTestApp(auth.NewAuthMiddleware(tm, &stubUserRepo{}, &stubAdminRepo{}))

	res, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, res.StatusCode)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", 30)
	app := newTestApp(auth.NewAuthMiddleware(tm, &stubUserRepo{}, &stubAdminRepo{}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, res.StatusCode)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", 30)
	user := &domain.User{ID: "u1", Email: "user@example.com"}
	app := newTestApp(auth.NewAuthMiddleware(tm, &stubUserRepo{user: user}, &stubAdminRepo{}))

	token, _, err := tm.GenerateToken("u1", "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	tm := auth.NewTokenManager("secret", 30)
	app := newTestApp(auth.NewAuthMiddleware(tm, &stubUserRepo{}, &stubAdminRepo{}))

	token, _, err := tm.GenerateToken("gone", "gone@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, res.StatusCode)
}

func TestPlatformAdminGate(t *testing.T) {
	tm := auth.NewTokenManager("secret", 30)
	user := &domain.User{ID: "u1", Email: "user@example.com"}
	admins := &stubAdminRepo{admins: map[string]bool{}}
	app := newTestApp(auth.NewAuthMiddleware(tm, &stubUserRepo{user: user}, admins))

	token, _, err := tm.GenerateToken("u1", "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, res.StatusCode)

	admins.admins["user@example.com"] = true
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
}
