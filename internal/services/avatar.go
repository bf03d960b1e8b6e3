package services

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"blogpost/internal/models"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ErrInvalidFormat is returned before any filesystem write when the upload
// is not an allowed image type.
var ErrInvalidFormat = errors.New("avatar: file type not allowed")

// MaxAvatarSize is the bound on both thumbnail dimensions.
const MaxAvatarSize = 125

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AvatarService stores profile pictures under a dedicated static directory.
// Filenames are random, never derived from the upload name.
type AvatarService struct {
	dir string
}

func NewAvatarService(dir string) *AvatarService {
	return &AvatarService{dir: dir}
}

// Save validates, downsizes and persists an uploaded image, returning the
// generated filename. The caller updates the user record and commits.
func (s *AvatarService) Save(r io.Reader, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExts[ext] {
		return "", ErrInvalidFormat
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("avatar: decode: %w", err)
	}
	img = thumbnail(img, MaxAvatarSize)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ext
	out, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	switch ext {
	case ".png":
		err = png.Encode(out, img)
	default:
		err = jpeg.Encode(out, img, nil)
	}
	if err != nil {
		return "", fmt.Errorf("avatar: encode: %w", err)
	}
	return filename, nil
}

// Remove deletes a replaced avatar file. The default sentinel is shared by
// every new account and is never removed. Best-effort only.
func (s *AvatarService) Remove(filename string) error {
	if filename == "" || filename == models.DefaultAvatar {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the on-disk location of a stored avatar.
func (s *AvatarService) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// thumbnail shrinks img so neither dimension exceeds max, keeping aspect
// ratio. Images already within bounds are returned untouched, no upscaling.
func thumbnail(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = max
		nh = h * max / w
	} else {
		nh = max
		nw = w * max / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
