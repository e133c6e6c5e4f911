package dto

// UploadResult reports a finished profile image upload. CleanupPending is set
// when the new asset is live but the previous blob could not be deleted; the
// caller still sees success, operators reclaim the stale blob out of band.
type UploadResult struct {
	AssetKey       string `json:"asset_key"`
	AssetURL       string `json:"asset_url"`
	CleanupPending bool   `json:"cleanup_pending,omitempty"`
}
