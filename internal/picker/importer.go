// Package picker implements the image picker: choosing a photo, bounding
// its size, and handing back a local asset URI.
package picker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // registered decoders
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// PhotoExtensions are the file types the pickers offer for MediaPhoto.
var PhotoExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ErrUnsupportedMedia is returned for anything other than MediaPhoto.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ErrImageTooLarge is returned for pictures above MaxPixels.
var ErrImageTooLarge = errors.New("image too large")

const (
	// jpegQuality for imported copies.
	jpegQuality = 90

	// MaxPixels caps the decoded size of a source picture (about 50 MP).
	MaxPixels = 50_000_000
)

// Importer turns a user-chosen file into an app-local asset: the image is
// decoded, scaled down to fit the requested bounds, and written as a JPEG
// into the media directory. The source file is never modified.
type Importer struct {
	mediaDir  string
	maxPixels int
	log       *logger.Logger
}

// NewImporter creates an importer writing into mediaDir.
func NewImporter(mediaDir string, log *logger.Logger) (*Importer, error) {
	if mediaDir == "" {
		mediaDir = ".cookbook-media"
	}
	abs, err := filepath.Abs(mediaDir)
	if err != nil {
		return nil, fmt.Errorf("resolving media dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &Importer{mediaDir: abs, maxPixels: MaxPixels, log: log}, nil
}

// Import copies src into the media directory honouring opts.
func (im *Importer) Import(ctx context.Context, src string, opts domain.PickOptions) (domain.Asset, error) {
	if opts.MediaType != domain.MediaPhoto {
		return domain.Asset{}, fmt.Errorf("%w: %q", ErrUnsupportedMedia, opts.MediaType)
	}
	if err := ctx.Err(); err != nil {
		return domain.Asset{}, err
	}

	f, err := os.Open(src)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return domain.Asset{}, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := rewind(f); err != nil {
		return domain.Asset{}, err
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("decoding %s: %w", filepath.Base(src), err)
	}
	if px := cfg.Width * cfg.Height; px > im.maxPixels {
		return domain.Asset{}, fmt.Errorf("%w: %s is %dx%d", ErrImageTooLarge, filepath.Base(src), cfg.Width, cfg.Height)
	}
	if err := rewind(f); err != nil {
		return domain.Asset{}, err
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("decoding %s: %w", filepath.Base(src), err)
	}

	scaled := flatten(fit(img, opts.MaxWidth, opts.MaxHeight))
	b := scaled.Bounds()
	im.log.Debug("import %s (%s %dx%d -> %dx%d)", filepath.Base(src), format,
		img.Bounds().Dx(), img.Bounds().Dy(), b.Dx(), b.Dy())

	sum := hex.EncodeToString(h.Sum(nil))
	name := fmt.Sprintf("%s-%dx%d.jpg", sum[:16], b.Dx(), b.Dy())
	dst := filepath.Join(im.mediaDir, name)

	size, err := writeJPEG(dst, scaled)
	if err != nil {
		return domain.Asset{}, err
	}

	return domain.Asset{
		URI:      fileURI(dst),
		FileName: name,
		Type:     "image/jpeg",
		Width:    b.Dx(),
		Height:   b.Dy(),
		FileSize: size,
	}, nil
}

// fit scales img down, preserving aspect ratio, so it fits maxW x maxH.
// A zero bound is unlimited. Images already inside the bounds are returned
// unchanged; images are never scaled up.
func fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1 {
		return img
	}

	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// flatten composites img over white. JPEG has no alpha channel, so
// transparent areas would otherwise encode as black.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

func rewind(f *os.File) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", f.Name(), err)
	}
	return nil
}

func writeJPEG(path string, img image.Image) (int64, error) {
	if info, err := os.Stat(path); err == nil {
		// Same content at the same size was imported before.
		return info.Size(), nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp image: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("encoding jpeg: %w", err)
	}
	info, err := tmp.Stat()
	if err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("moving image into place: %w", err)
	}
	return info.Size(), nil
}

func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// PathFromURI returns the local path behind a file:// URI, or uri unchanged
// when it is already a plain path.
func PathFromURI(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	return filepath.FromSlash(u.Path)
}

// isPhoto reports whether path has one of PhotoExtensions.
func isPhoto(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range PhotoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
