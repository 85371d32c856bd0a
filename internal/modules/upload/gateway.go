package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/catalog"
)

// Gateway is the provider-agnostic interface for image storage. Upload
// returns the stored asset's URL and public id; Destroy removes it.
type Gateway interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*catalog.Image, error)
	Destroy(ctx context.Context, publicID string) error
}

// ── Cloudinary adapter ────────────────────────────────────────────────────────

type cloudinaryGateway struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryGateway creates a Gateway backed by Cloudinary. url is a
// cloudinary:// credential URL.
func NewCloudinaryGateway(url string) (Gateway, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &cloudinaryGateway{cld: cld, folder: "images"}, nil
}

func (g *cloudinaryGateway) Upload(ctx context.Context, file io.Reader, filename string) (*catalog.Image, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	res, err := g.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   g.folder,
		PublicID: fmt.Sprintf("%s_%d", base, time.Now().UnixMilli()),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %v: %w", filename, err, apperror.ErrUpstream)
	}
	return &catalog.Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (g *cloudinaryGateway) Destroy(ctx context.Context, publicID string) error {
	_, err := g.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy %s: %v: %w", publicID, err, apperror.ErrUpstream)
	}
	return nil
}
