package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// MaxBodyLen ограничение длины тела запроса и ответа в логе, 0 - по умолчанию
	MaxBodyLen int
	// SkipPaths запросы, которые не пишутся в лог
	SkipPaths []string
}

const defaultMaxBodyLen = 4096

// ConfigDefault is the default config
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}

func (c Config) maxBodyLen() int {
	if c.MaxBodyLen <= 0 {
		return defaultMaxBodyLen
	}
	return c.MaxBodyLen
}
