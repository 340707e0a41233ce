// Package media uploads product images to Cloudinary and hands back durable
// delivery URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// SanitizeFileName makes an uploaded filename safe for a storage path:
// whitespace runs become single hyphens and everything outside
// [A-Za-z0-9_.-] is stripped. An empty result falls back to "image".
func SanitizeFileName(name string) string {
	safe := whitespaceRe.ReplaceAllString(strings.TrimSpace(name), "-")
	safe = unsafeRe.ReplaceAllString(safe, "")
	if safe == "" {
		return "image"
	}
	return safe
}

// Uploader pushes product images into Cloudinary under a per-product path.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

func NewUploader(cloudinaryURL string, logger *slog.Logger) (*Uploader, error) {
	if strings.TrimSpace(cloudinaryURL) == "" {
		return nil, fmt.Errorf("cloudinary url is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Uploader{cld: cld, logger: logger}, nil
}

// UploadProductImage stores the file under products/<docID>/<ts>-<name> and
// returns the secure delivery URL.
func (u *Uploader) UploadProductImage(ctx context.Context, docID, fileName string, file io.Reader) (string, error) {
	docID = strings.TrimSpace(docID)
	if docID == "" {
		return "", fmt.Errorf("product document id is required")
	}
	if file == nil {
		return "", fmt.Errorf("image file is required")
	}

	publicID := fmt.Sprintf("products/%s/%d-%s", docID, time.Now().UnixMilli(), SanitizeFileName(fileName))

	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{PublicID: publicID})
	if err != nil {
		return "", fmt.Errorf("failed to upload product image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no url for %s", publicID)
	}

	if u.logger != nil {
		u.logger.Info("product image uploaded", "doc_id", docID, "public_id", result.PublicID)
	}

	return result.SecureURL, nil
}
