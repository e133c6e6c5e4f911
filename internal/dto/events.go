package dto

// Message keys published to the events topic.
const (
	EventUserRegistered     = "user.registered"
	EventBlobOrphaned       = "blob.orphaned"
	EventBlobCleanupPending = "blob.cleanup_pending"
)

type UserRegisteredEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// BlobOrphanedEvent records a blob that was written but never became the active
// reference. A background sweep reclaims these out of band.
type BlobOrphanedEvent struct {
	UserID uint   `json:"user_id"`
	Key    string `json:"key"`
	Stage  string `json:"stage"`
}

// BlobCleanupPendingEvent records an old blob that outlived a successful
// reference swap because its delete failed.
type BlobCleanupPendingEvent struct {
	UserID uint   `json:"user_id"`
	Key    string `json:"key"`
}
