// Package upload turns raw image bytes into scene image references
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"

	"github.com/lixenwraith/wishtree/scene"
)

// ThumbSize is the longest thumbnail edge in pixels
const ThumbSize = 64

var (
	ErrNotImage = errors.New("not an image")
	ErrDecode   = errors.New("image decode failed")
)

// Decode sniffs, decodes and thumbnails data
func Decode(source string, data []byte) (scene.ImageRef, error) {
	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return scene.ImageRef{}, fmt.Errorf("%s: %w", source, ErrNotImage)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return scene.ImageRef{}, fmt.Errorf("%s (%s): %w: %v", source, kind.MIME.Value, ErrDecode, err)
	}
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return scene.ImageRef{}, fmt.Errorf("%s: %w: empty image", source, ErrDecode)
	}

	thumb := clone.AsRGBA(Thumbnail(img, ThumbSize))
	tsz := thumb.Rect.Size()
	return scene.ImageRef{
		Source: source,
		MIME:   kind.MIME.Value,
		Width:  tsz.X,
		Height: tsz.Y,
		Thumb:  thumb.Pix,
	}, nil
}

// SizeMax scales sz so its longest edge is maxSz, keeping at least one pixel per edge
func SizeMax(sz image.Point, maxSz int) image.Point {
	tsz := sz
	if sz.X > sz.Y {
		tsz.X = maxSz
		tsz.Y = int(float32(sz.Y) * (float32(tsz.X) / float32(sz.X)))
	} else {
		tsz.Y = maxSz
		tsz.X = int(float32(sz.X) * (float32(tsz.Y) / float32(sz.Y)))
	}
	tsz.X = max(tsz.X, 1)
	tsz.Y = max(tsz.Y, 1)
	return tsz
}

// Thumbnail resizes img so the longest edge is maxSz; smaller images are kept
func Thumbnail(img image.Image, maxSz int) image.Image {
	sz := img.Bounds().Size()
	if sz.X <= maxSz && sz.Y <= maxSz {
		return img
	}
	tsz := SizeMax(sz, maxSz)
	return transform.Resize(img, tsz.X, tsz.Y, transform.Linear)
}

// Tint averages the thumbnail pixels of ref; ok is false without a thumbnail
func Tint(ref scene.ImageRef) (r, g, b uint8, ok bool) {
	px := ref.Thumb
	n := len(px) / 4
	if n == 0 {
		return 0, 0, 0, false
	}
	var sr, sg, sb int
	for i := 0; i < n*4; i += 4 {
		sr += int(px[i])
		sg += int(px[i+1])
		sb += int(px[i+2])
	}
	return uint8(sr / n), uint8(sg / n), uint8(sb / n), true
}
