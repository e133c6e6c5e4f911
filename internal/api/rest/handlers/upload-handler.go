package handlers

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/forevertrendin/user_service/internal/errs"
	"github.com/forevertrendin/user_service/internal/helper/utils"
	"github.com/forevertrendin/user_service/internal/services"
	"github.com/forevertrendin/user_service/pkg/imageutil"
	pkgutils "github.com/forevertrendin/user_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	maxUploadSize = 5 * 1024 * 1024 // 5MB
	maxImageWidth = 1024
	jpegQuality   = 85
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type UploadHandler struct {
	svc services.UploadService
	log *zap.Logger
}

func NewUploadHandler(svc services.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, log: log}
}

// POST /upload/:userId
// form-data: file=<image>
func (h *UploadHandler) UploadProfileImage(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, errs.ErrNoFile.Error())
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxUploadSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	raw, err := pkgutils.ReadAllLimit(f, maxUploadSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	normalized, err := imageutil.NormalizeToJPG(raw, maxImageWidth, jpegQuality)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid image")
	}

	result, err := h.svc.UploadProfileImage(ctx.UserContext(), userID, bytes.NewReader(normalized), "image/jpeg")
	if err != nil {
		return h.fail(ctx, err)
	}

	if result.CleanupPending {
		h.log.Warn("upload succeeded with cleanup pending",
			zap.Uint("user_id", userID),
			zap.String("asset_key", result.AssetKey),
		)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *UploadHandler) fail(ctx *fiber.Ctx, err error) error {
	status, msg := statusFromError(err)
	if status == fiber.StatusInternalServerError {
		var se *errs.StorageError
		if errors.As(err, &se) {
			h.log.Error("upload failed",
				zap.String("stage", string(se.Stage)),
				zap.String("key", se.Key),
				zap.Error(se.Err),
			)
		} else {
			h.log.Error("upload failed", zap.Error(err))
		}
	}
	return utils.ResponseError(ctx, status, msg)
}
