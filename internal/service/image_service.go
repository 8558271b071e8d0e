package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register decoders for every allowed upload type
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"seedbed/internal/config"
	"seedbed/internal/middleware"
	"seedbed/internal/models"
	"seedbed/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir     = "uploads"
	MaxUploadSizeBytes   = 10 * 1024 * 1024
	MaxImageDimension    = 4096
	ThumbnailMaxSize     = 256
	ThumbnailWebPQuality = 70
)

// Image kinds decide the subdirectory an upload lands in.
const (
	ImageKindPost    = "posts"
	ImageKindProfile = "profiles"
)

type ImageService struct {
	uploadDir string
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultUploadDir
	if cfg != nil && cfg.UploadDir != "" {
		uploadDir = cfg.UploadDir
	}
	return &ImageService{uploadDir: uploadDir}
}

type SaveImageInput struct {
	Kind        string
	Filename    string
	ContentType string
	Content     []byte
}

// Save validates and stores an uploaded image under the kind's subdirectory,
// generating a WebP thumbnail next to it. Returns the public URL path.
func (s *ImageService) Save(in SaveImageInput) (string, error) {
	if in.Kind != ImageKindPost && in.Kind != ImageKindProfile {
		return "", models.NewInternalError(fmt.Errorf("unknown image kind %q", in.Kind))
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > MaxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	// Reject oversized dimensions from the header alone, before paying for
	// a full decode.
	if dims, _, err := image.DecodeConfig(bytes.NewReader(in.Content)); err != nil {
		return "", models.NewValidationError("Invalid image file")
	} else if dims.Width > MaxImageDimension || dims.Height > MaxImageDimension {
		return "", models.NewValidationError(fmt.Sprintf("Image too large (max %dx%d)", MaxImageDimension, MaxImageDimension))
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, decodedFormatToMime(format)) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = "." + format
	}
	name := uuid.NewString() + ext
	rel := filepath.ToSlash(filepath.Join(in.Kind, name))
	abs := filepath.Join(s.uploadDir, in.Kind, name)

	if err := writeBytesToFile(abs, in.Content); err != nil {
		return "", models.NewInternalError(err)
	}

	// Thumbnail generation is best effort; the original is the source of truth.
	if thumb, thumbErr := encodeThumbnail(decoded); thumbErr == nil {
		thumbAbs := thumbnailPath(abs)
		if writeErr := writeBytesToFile(thumbAbs, thumb); writeErr != nil {
			middleware.Logger.Warn("failed to write thumbnail",
				slog.String("path", thumbAbs),
				slog.String("error", writeErr.Error()),
			)
		}
	}

	observability.ImageUploadsTotal.WithLabelValues(in.Kind).Inc()
	return "/uploads/" + rel, nil
}

// Delete removes the stored file (and thumbnail) behind an upload URL.
// Failures are logged and ignored; stale files are not worth failing a
// request over.
func (s *ImageService) Delete(imageURL string) {
	rel, ok := strings.CutPrefix(imageURL, "/uploads/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return
	}
	abs := filepath.Join(s.uploadDir, filepath.FromSlash(rel))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to delete image",
			slog.String("path", abs),
			slog.String("error", err.Error()),
		)
	}
	_ = os.Remove(thumbnailPath(abs))
}

func thumbnailPath(abs string) string {
	ext := filepath.Ext(abs)
	return strings.TrimSuffix(abs, ext) + "_thumb.webp"
}

func encodeThumbnail(src image.Image) ([]byte, error) {
	resized := resizeToFit(src, ThumbnailMaxSize, ThumbnailMaxSize)
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, resized, &webp.Options{Quality: ThumbnailWebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
