// Package errs contains sentinel errors shared across layers so handlers can map
// outcomes to HTTP statuses without inspecting raw storage failures.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")                            // 400
	ErrEmailTaken         = errors.New("user already exists")                      // 400
	ErrUserNotFound       = errors.New("user not found")                           // 404
	ErrInvalidCredentials = errors.New("invalid email or password")                // 400
	ErrNoFile             = errors.New("no file uploaded")                         // 400
	ErrUploadConflict     = errors.New("concurrent upload won the reference swap") // 409
)

// Token verification outcomes. The middleware collapses all of them into the same
// generic 401 body; the distinction exists for logs only.
var (
	ErrTokenMissing          = errors.New("missing token")
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("invalid token signature")
	ErrUnauthenticated       = errors.New("unauthenticated")
)

// Stage tags a StorageError with the upload step it occurred in.
type Stage string

const (
	StageUpload  Stage = "upload"
	StageRefSwap Stage = "refswap"
	StageCleanup Stage = "cleanup"
)

// StorageError wraps a blob-store or persistence failure together with the stage
// it occurred in. StageRefSwap means the freshly written blob is orphaned and
// StageCleanup means the previous blob leaked; both are reported for out-of-band
// reclamation rather than silently dropped.
type StorageError struct {
	Stage Stage
	Key   string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error at stage %s (key %q): %v", e.Stage, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
