package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const LocalsKey = "session_token"

// GetSessionToken токен доступа к сессии интервью, sub - идентификатор сессии
func GetSessionToken(sessionID, secret string, expireInSec int) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": time.Now().Add(time.Second * time.Duration(expireInSec)).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals(LocalsKey).(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetSessionID(ctx *fiber.Ctx) string {
	sub, _ := GetClaims(ctx).GetSubject()
	return sub
}
