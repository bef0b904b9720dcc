// Package images stores uploaded product photos. Cloudinary is the
// primary backend so Instagram gets a publicly reachable image URL;
// without CLOUDINARY_URL configured, files land in the local upload
// directory instead.
package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/oklog/ulid/v2"
)

// Upload is one stored image.
type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Local    bool   `json:"local"`
}

type Uploader struct {
	cld       *cloudinary.Cloudinary
	uploadDir string
}

// NewUploader reads CLOUDINARY_URL; when it is absent or malformed the
// uploader degrades to local storage under uploadDir.
func NewUploader(uploadDir string) *Uploader {
	u := &Uploader{uploadDir: uploadDir}

	cloudURL := os.Getenv("CLOUDINARY_URL")
	if cloudURL == "" {
		slog.Info("CLOUDINARY_URL not set, storing uploads locally", "dir", uploadDir)
		return u
	}

	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		slog.Error("cloudinary init failed, storing uploads locally", "error", err)
		return u
	}
	u.cld = cld
	return u
}

// Store persists one image and returns where it ended up.
func (u *Uploader) Store(ctx context.Context, r io.Reader, filename string) (*Upload, error) {
	if u.cld != nil {
		result, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: "products"})
		if err != nil {
			return nil, fmt.Errorf("cloudinary upload: %w", err)
		}
		return &Upload{URL: result.SecureURL, PublicID: result.PublicID}, nil
	}
	return u.storeLocal(r, filename)
}

// Remove deletes a previously stored Cloudinary image. Local files are
// left in place.
func (u *Uploader) Remove(ctx context.Context, publicID string) error {
	if u.cld == nil || publicID == "" {
		return nil
	}
	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}

func (u *Uploader) storeLocal(r io.Reader, filename string) (*Upload, error) {
	if err := os.MkdirAll(u.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(filename)
	name := fmt.Sprintf("%s_%d%s", ulid.Make().String(), time.Now().Unix(), ext)
	path := filepath.Join(u.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &Upload{URL: "/uploads/" + name, Local: true}, nil
}
