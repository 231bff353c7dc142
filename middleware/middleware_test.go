package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"interview-sim-backend/config"
	authutils "interview-sim-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	app := fiber.New()
	app.Use(WithBodyLimit(10))
	app.Post("/echo", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/session", SessionRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetSessionID(ctx))
	})
	return app
}

func TestSessionRequired(t *testing.T) {
	app := testApp()
	token, err := authutils.GetSessionToken("s-42", "test-secret", 60)
	require.NoError(t, err)

	t.Run(`header token check`, func(t *testing.T) {
		req := httptest.NewRequest("GET", "/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`query token check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/session?token="+token, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`missing token check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/session", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`foreign token check`, func(t *testing.T) {
		other, err := authutils.GetSessionToken("s-42", "other-secret", 60)
		require.NoError(t, err)
		resp, err := app.Test(httptest.NewRequest("GET", "/session?token="+other, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := testApp()
	resp, err := app.Test(httptest.NewRequest("POST", "/echo", strings.NewReader("way too long body")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/echo", strings.NewReader("short")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
