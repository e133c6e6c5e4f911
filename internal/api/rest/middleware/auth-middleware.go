package middleware

import (
	"github.com/forevertrendin/user_service/internal/helper"
	"github.com/forevertrendin/user_service/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer token from the Authorization header. Every
// verification failure collapses into the same generic 401 body; the precise
// reason (missing, malformed, expired, bad signature) goes to the log only.
func AuthMiddleware(auth helper.Auth, log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, err := auth.VerifyToken(ctx.Get("Authorization"))
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
		}

		ctx.Locals("userID", userID)
		return ctx.Next()
	}
}
