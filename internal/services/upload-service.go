package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/forevertrendin/user_service/internal/dto"
	"github.com/forevertrendin/user_service/internal/errs"
	"github.com/forevertrendin/user_service/internal/interfaces"
	"github.com/forevertrendin/user_service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadService coordinates profile asset uploads across the blob store and the
// user record. The two systems share no transaction; the conditional update on
// the user row is the only serialization point, so the protocol is
// write-new -> swap-reference -> delete-old. That ordering guarantees the stored
// reference never points at an object that does not exist: every failure mode is
// either "nothing changed" or "new object live, cleanup pending".
type UploadService interface {
	UploadProfileImage(ctx context.Context, userID uint, body io.Reader, contentType string) (*dto.UploadResult, error)
}

type uploadService struct {
	repo     repository.UserRepository
	store    interfaces.BlobStore
	producer interfaces.ProducerHandler
	log      *zap.Logger
	timeout  time.Duration
}

func NewUploadService(
	repo repository.UserRepository,
	store interfaces.BlobStore,
	producer interfaces.ProducerHandler,
	log *zap.Logger,
	timeout time.Duration,
) UploadService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &uploadService{
		repo:     repo,
		store:    store,
		producer: producer,
		log:      log,
		timeout:  timeout,
	}
}

// newAssetKey derives a storage key from the user id and the upload instant, so
// a fresh upload can never collide with the key it is about to replace.
func newAssetKey(userID uint) string {
	return fmt.Sprintf("profiles/%d/%d-%s", userID, time.Now().UnixNano(), uuid.New())
}

func (s *uploadService) UploadProfileImage(ctx context.Context, userID uint, body io.Reader, contentType string) (*dto.UploadResult, error) {
	findCtx, cancel := context.WithTimeout(ctx, s.timeout)
	user, err := s.repo.FindUserByID(findCtx, userID)
	cancel()
	if err != nil {
		return nil, err
	}
	oldKey := user.ProfileAssetKey
	newKey := newAssetKey(userID)

	putCtx, cancel := context.WithTimeout(ctx, s.timeout)
	url, err := s.store.Put(putCtx, newKey, body, contentType)
	cancel()
	if err != nil {
		// Nothing persisted, state unchanged.
		return nil, &errs.StorageError{Stage: errs.StageUpload, Key: newKey, Err: err}
	}

	swapCtx, cancel := context.WithTimeout(ctx, s.timeout)
	swapped, err := s.repo.CompareAndSetAssetKey(swapCtx, userID, oldKey, &newKey)
	cancel()
	if err != nil {
		// On a store error or timeout the swap outcome is ambiguous; either way
		// the new blob is not known to be referenced. Surface it as a ledger gap
		// for the reclamation sweep instead of retrying blindly.
		s.reportOrphan(userID, newKey, errs.StageRefSwap)
		return nil, &errs.StorageError{Stage: errs.StageRefSwap, Key: newKey, Err: err}
	}

	if !swapped {
		// A concurrent upload won the swap. Reclaim our own write so the loser
		// leaves no orphan behind.
		if derr := s.deleteBlob(ctx, newKey); derr != nil {
			s.reportOrphan(userID, newKey, errs.StageRefSwap)
		}
		return nil, errs.ErrUploadConflict
	}

	result := &dto.UploadResult{AssetKey: newKey, AssetURL: url}

	if oldKey != nil {
		if derr := s.deleteBlob(ctx, *oldKey); derr != nil {
			// Non-fatal: the reference already points at the new asset. The stale
			// blob is an operational cost, reported for later reclamation.
			result.CleanupPending = true
			s.log.Warn("old blob cleanup failed",
				zap.Uint("user_id", userID),
				zap.String("key", *oldKey),
				zap.Error(derr),
			)
			publishEvent(s.producer, s.log, dto.EventBlobCleanupPending, dto.BlobCleanupPendingEvent{
				UserID: userID,
				Key:    *oldKey,
			})
		}
	}

	return result, nil
}

// deleteBlob runs compensation/cleanup deletes detached from the request
// context, so an aborted request cannot interrupt reclamation halfway.
func (s *uploadService) deleteBlob(ctx context.Context, key string) error {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	return s.store.Delete(delCtx, key)
}

func (s *uploadService) reportOrphan(userID uint, key string, stage errs.Stage) {
	s.log.Error("blob orphaned",
		zap.Uint("user_id", userID),
		zap.String("key", key),
		zap.String("stage", string(stage)),
	)
	publishEvent(s.producer, s.log, dto.EventBlobOrphaned, dto.BlobOrphanedEvent{
		UserID: userID,
		Key:    key,
		Stage:  string(stage),
	})
}
