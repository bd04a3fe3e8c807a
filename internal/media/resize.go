// Package media prepares image assets for the Telegram transport.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
	"log/slog"

	"github.com/bibiti/supportbot/core/logger"
)

// DefaultMaxSide is the bound Telegram recommends for photo uploads.
const DefaultMaxSide = 1280

// ResizeJPEG reads an image file, downscales it so its longest side does not
// exceed maxSide while preserving aspect ratio, and re-encodes it as JPEG.
// Images already within bounds are re-encoded without scaling.
func ResizeJPEG(path string, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	nw, nh := fitWithin(w, h, maxSide)

	out := src
	if nw != w || nh != h {
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// PrepareAll resizes each path, skipping files that cannot be read or decoded.
func PrepareAll(ctx context.Context, paths []string, maxSide int) [][]byte {
	var out [][]byte
	for _, p := range paths {
		data, err := ResizeJPEG(p, maxSide)
		if err != nil {
			logger.Warn(ctx, "media", "resize.skip",
				slog.String("status", "skip"),
				slog.String("payload", p),
				slog.String("err", err.Error()),
			)
			continue
		}
		out = append(out, data)
	}
	return out
}

// fitWithin returns dimensions scaled down so the longest side is <= maxSide.
func fitWithin(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		return maxSide, h * maxSide / w
	}
	return w * maxSide / h, maxSide
}
