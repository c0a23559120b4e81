package podsettings

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	minCoverSize  = 1400 // Apple Podcasts floor, both dimensions
	maxCoverSize  = 3000
	jpegQuality   = 90
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processCover decodes a cover image from src, rejects anything under the
// 1400x1400 floor, scales anything over 3000px down to fit, and encodes it
// as JPEG. Returns the filename to store under and the encoded bytes.
func processCover(src io.Reader, originalName string) (string, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w < minCoverSize || h < minCoverSize {
		return "", nil, fmt.Errorf("cover image must be at least %dx%d px, got %dx%d", minCoverSize, minCoverSize, w, h)
	}

	if w > maxCoverSize || h > maxCoverSize {
		newW, newH := w, h
		if w >= h {
			newW = maxCoverSize
			newH = h * maxCoverSize / w
		} else {
			newH = maxCoverSize
			newW = w * maxCoverSize / h
		}
		dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", nil, fmt.Errorf("encode jpeg: %w", err)
	}

	filename := slugifyFilename(originalName) + "-" + time.Now().UTC().Format("20060102150405") + ".jpg"
	return filename, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	slug := Slugify(base)
	if slug == "" {
		slug = "cover"
	}
	return slug
}

func (a *App) handleCoverUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("cover")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	filename, data, err := processCover(src, file.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	scope := c.FormValue("series")
	coverURL := BuildURL(a.Config.URL, "public", uploadsSubdir, filename)
	if _, err := a.Engine.Submit("data_image", scope, coverURL); err != nil {
		return err
	}

	return a.renderSettings(c, SectionFeedDetails, scope, "Cover image uploaded.", nil)
}
