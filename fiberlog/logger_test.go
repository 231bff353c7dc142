package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"interview-sim-backend/lib/utils/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testApp(buf *bytes.Buffer, cfg Config) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	cfg.Logger = logger
	app := fiber.New()
	app.Use(New(cfg))
	app.Post("echo", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"echo": string(c.Body())})
	})
	app.Get("file", func(c *fiber.Ctx) error {
		c.Set(helpers.HeaderLogIgnore, "true")
		return c.JSON(fiber.Map{"secret": "data"})
	})
	app.Get("health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	return app
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	entry := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestNew(t *testing.T) {
	cfg := Config{
		Tags:       []string{TagBody, TagResBody, TagMethod, TagPath, TagStatus},
		MaxBodyLen: 10,
		SkipPaths:  []string{"/health"},
	}
	t.Run(`json request body truncation check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := testApp(buf, cfg)
		req := httptest.NewRequest(fiber.MethodPost, "/echo", strings.NewReader(`{"text":"very long body"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, err := app.Test(req)
		require.NoError(t, err)

		entry := lastEntry(t, buf)
		require.Equal(t, "запрос api /echo", entry["msg"])
		require.Equal(t, "info", entry["level"])
		require.Equal(t, "POST", entry[TagMethod])
		require.True(t, strings.HasPrefix(entry[TagBody].(string), `{"text":"v`))
	})
	t.Run(`X-Log-Ignore response without body check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := testApp(buf, cfg)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/file", nil))
		require.NoError(t, err)
		require.Empty(t, resp.Header.Get(helpers.HeaderLogIgnore))

		entry := lastEntry(t, buf)
		_, ok := entry[TagResBody]
		require.False(t, ok)
	})
	t.Run(`skip paths and error warning check`, func(t *testing.T) {
		buf := &bytes.Buffer{}
		app := testApp(buf, cfg)
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
		require.NoError(t, err)
		require.Empty(t, buf.String())

		_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
		require.NoError(t, err)
		require.Equal(t, "warning", lastEntry(t, buf)["level"])
	})
}
