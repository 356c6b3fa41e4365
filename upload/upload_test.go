package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wishtree/scene"
)

type directPoster struct {
	store *scene.Store
	posts int
}

func (p *directPoster) Post(fn func(*scene.Store)) {
	p.posts++
	fn(p.store)
}

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeThumbnail(t *testing.T) {
	data := pngBytes(t, 256, 128, color.RGBA{R: 200, G: 40, B: 10, A: 255})
	ref, err := Decode("red.png", data)
	require.NoError(t, err)

	assert.Equal(t, "image/png", ref.MIME)
	assert.Equal(t, ThumbSize, ref.Width)
	assert.Equal(t, ThumbSize/2, ref.Height)
	assert.Len(t, ref.Thumb, ref.Width*ref.Height*4)

	r, g, b, ok := Tint(ref)
	require.True(t, ok)
	assert.InDelta(t, 200, int(r), 2)
	assert.InDelta(t, 40, int(g), 2)
	assert.InDelta(t, 10, int(b), 2)
}

func TestDecodeKeepsSmallImages(t *testing.T) {
	ref, err := Decode("tiny.png", pngBytes(t, 8, 4, color.RGBA{A: 255}))
	require.NoError(t, err)
	assert.Equal(t, 8, ref.Width)
	assert.Equal(t, 4, ref.Height)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode("notes.txt", []byte("just some text, not a picture"))
	assert.True(t, errors.Is(err, ErrNotImage))

	// PNG signature with a broken body
	bad := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 32)...)
	_, err = Decode("broken.png", bad)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestSizeMax(t *testing.T) {
	assert.Equal(t, image.Pt(64, 32), SizeMax(image.Pt(200, 100), 64))
	assert.Equal(t, image.Pt(16, 64), SizeMax(image.Pt(100, 400), 64))
	assert.Equal(t, image.Pt(64, 1), SizeMax(image.Pt(10000, 1), 64))
}

func TestUploaderPostsOnlyValidImages(t *testing.T) {
	p := &directPoster{store: scene.NewStore()}
	u := NewUploader(p)

	_, err := u.Upload("bad", []byte("nope"))
	require.Error(t, err)
	assert.Zero(t, p.posts)
	assert.Empty(t, p.store.Photos())

	_, err = u.Upload("ok.png", pngBytes(t, 10, 10, color.RGBA{G: 255, A: 255}))
	require.NoError(t, err)
	photos := p.store.Photos()
	require.Len(t, photos, 1)
	assert.Equal(t, "ok.png", photos[0].Image.Source)
	assert.Equal(t, scene.DefaultTitle, photos[0].Title)
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 20, 20, color.RGBA{B: 255, A: 255}), 0o644))

	p := &directPoster{store: scene.NewStore()}
	ref, err := NewUploader(p).UploadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tree.png", ref.Source)
	assert.Len(t, p.store.Photos(), 1)

	_, err = NewUploader(p).UploadFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
