package fiberlog

import (
	"time"

	"interview-sim-backend/lib/utils/helpers"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagStatus    = "status"
	TagIP        = "ip"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagUserAgent = "user_agent"
	RequestID    = "request_id"
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag вычисляет значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

// тело логируется только для json, чтобы не писать в лог загруженные файлы
func getFuncTagMap(cfg Config) map[string]FuncTag {
	maxBodyLog := cfg.maxBodyLen()
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			if logIgnored(c) || !isJSON(c.Get(fiber.HeaderContentType)) {
				return ""
			}
			return helpers.Truncate(string(c.Body()), maxBodyLog)
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if logIgnored(c) || !isJSON(string(c.Response().Header.ContentType())) {
				return ""
			}
			return helpers.Truncate(string(c.Response().Body()), maxBodyLog)
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID, c.Get(fiber.HeaderXRequestID))
		},
	}
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}

func logIgnored(c *fiber.Ctx) bool {
	return c.GetRespHeader(helpers.HeaderLogIgnore) != ""
}

func isJSON(contentType string) bool {
	return len(contentType) >= len(fiber.MIMEApplicationJSON) &&
		contentType[:len(fiber.MIMEApplicationJSON)] == fiber.MIMEApplicationJSON
}
