package middleware

import (
	"interview-sim-backend/config"
	authutils "interview-sim-backend/lib/utils/auth-utils"
	apimodels "interview-sim-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionRequired доступ к сессии интервью по токену из заголовка Authorization или параметра token
func SessionRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims:      jwt.MapClaims{},
		ContextKey:  authutils.LocalsKey,
		TokenLookup: "header:Authorization,query:token",
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: func(ctx *fiber.Ctx) error {
			if authutils.GetSessionID(ctx) == "" {
				return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("в токене не указана сессия"))
			}
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("недействительный токен сессии"))
		},
	})
}

func GetSessionID(ctx *fiber.Ctx) string {
	return authutils.GetSessionID(ctx)
}
