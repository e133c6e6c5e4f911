package blob

import (
	"context"
	"fmt"
	"io"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore is the alternate blob backend; storage keys map to public IDs.
type CloudinaryStore struct {
	cld *cld.Cloudinary
}

func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	c, err := cld.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: c}, nil
}

func boolPtr(b bool) *bool { return &b }

func (c *CloudinaryStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:     key,
		ResourceType: "image",
		Overwrite:    boolPtr(false),
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

func (c *CloudinaryStore) Delete(ctx context.Context, key string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return err
	}
	// "not found" keeps Delete idempotent.
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %q: %s", key, res.Result)
	}
	return nil
}

func (c *CloudinaryStore) URL(key string) string {
	img, err := c.cld.Image(key)
	if err != nil {
		return key
	}
	u, err := img.String()
	if err != nil {
		return key
	}
	return u
}
