package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/forevertrendin/user_service/internal/domain"
	"github.com/forevertrendin/user_service/internal/dto"
	"github.com/forevertrendin/user_service/internal/errs"
	"github.com/forevertrendin/user_service/internal/helper/utils"
	"github.com/forevertrendin/user_service/internal/interfaces"
	"github.com/forevertrendin/user_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	svc   services.UserService
	store interfaces.BlobStore
	log   *zap.Logger
}

func NewUserHandler(svc services.UserService, store interfaces.BlobStore, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, store: store, log: log}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler, upload *UploadHandler) {
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Get("/verifyjwt", authMw, h.VerifyJWT)
	app.Post("/upload/:userId", authMw, upload.UploadProfileImage)

	app.Get("/", h.ListUsers)
	app.Get("/:userId", h.GetUser)
	app.Put("/:userId", h.UpdateUser)
	app.Delete("/:userId", h.DeleteUser)
}

// statusFromError maps service outcomes onto HTTP statuses. Raw storage failures
// never reach the client; they surface as a generic 500.
func statusFromError(err error) (int, string) {
	var se *errs.StorageError
	switch {
	case errors.Is(err, errs.ErrInvalidInput), errors.Is(err, errs.ErrNoFile):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrEmailTaken):
		return fiber.StatusBadRequest, "user already exists"
	case errors.Is(err, errs.ErrInvalidCredentials):
		return fiber.StatusBadRequest, "invalid credentials"
	case errors.Is(err, errs.ErrUserNotFound):
		return fiber.StatusNotFound, "user not found"
	case errors.Is(err, errs.ErrUploadConflict):
		return fiber.StatusConflict, "a newer upload already replaced the profile image"
	case errors.As(err, &se):
		return fiber.StatusInternalServerError, "storage error"
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}

func (h *UserHandler) fail(ctx *fiber.Ctx, err error) error {
	status, msg := statusFromError(err)
	if status == fiber.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
	}
	return utils.ResponseError(ctx, status, msg)
}

func (h *UserHandler) toProfile(user *domain.User) dto.UserProfileResponse {
	resp := dto.UserProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		DisplayName:     user.DisplayName,
		Phone:           user.Phone,
		ProfileAssetKey: user.ProfileAssetKey,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}
	if user.ProfileAssetKey != nil {
		resp.ProfileAssetURL = h.store.URL(*user.ProfileAssetKey)
	}
	return resp
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	user, err := h.svc.Register(ctx.UserContext(), requestBody)
	if err != nil {
		return h.fail(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, h.toProfile(user))
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	token, user, err := h.svc.Login(ctx.UserContext(), requestBody)
	if err != nil {
		return h.fail(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{
		Token: token,
		User:  h.toProfile(user),
	})
}

func (h *UserHandler) VerifyJWT(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.AuthResponse{UserID: userID})
}

func (h *UserHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := h.svc.ListUsers(ctx.UserContext())
	if err != nil {
		return h.fail(ctx, err)
	}

	resp := make([]dto.UserProfileResponse, 0, len(users))
	for i := range users {
		resp = append(resp, h.toProfile(&users[i]))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *UserHandler) GetUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.svc.GetUser(ctx.UserContext(), userID)
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.toProfile(user))
}

func (h *UserHandler) UpdateUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	var requestBody dto.UpdateUserProfile
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	user, err := h.svc.UpdateProfile(ctx.UserContext(), userID, requestBody)
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.toProfile(user))
}

func (h *UserHandler) DeleteUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.svc.DeleteUser(ctx.UserContext(), userID)
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.toProfile(user))
}

func parseUserID(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("userId"), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.ErrInvalidInput
	}
	return uint(id), nil
}
