package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Cover images are stored as webp, bounded to this box.
const (
	coverMaxW        = 1024
	coverMaxH        = 1536
	coverWebPQuality = 82
)

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		// fallback by extension
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("unsupported image format: %s / %s", ct, filepath.Ext(filename))
		}
	}
	return img, err
}

// ConvertCoverToWebP reads an uploaded cover image, downscales it to the
// cover box keeping aspect, and re-encodes it as lossy webp.
func ConvertCoverToWebP(file multipart.File, filename string) ([]byte, error) {
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > coverMaxW || b.Dy() > coverMaxH {
		img = imaging.Fit(img, coverMaxW, coverMaxH, imaging.CatmullRom)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: coverWebPQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveCoverFile writes webp cover bytes under the upload dir and returns
// the public URL path the storefront serves it from.
func SaveCoverFile(slug string, data []byte) (string, error) {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "./uploads"
	}
	dir := filepath.Join(root, "covers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.webp", slug, uuid.New().String()[:8])
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}
	return "/uploads/covers/" + name, nil
}

var reUnsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// GenerateUniqueFilename: date + uuid + sanitized original name.
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	safe := reUnsafeFilename.ReplaceAllString(originalFilename, "_")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), safe)
}
