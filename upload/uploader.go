package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/wishtree/scene"
)

// MaxFileSize bounds bytes read from disk
const MaxFileSize = 32 << 20

// Poster queues store mutations onto the tick goroutine
type Poster interface {
	Post(fn func(*scene.Store))
}

// Uploader decodes images and hands them to the scene
type Uploader struct {
	poster Poster
}

// NewUploader creates an Uploader posting to p
func NewUploader(p Poster) *Uploader {
	return &Uploader{poster: p}
}

// Upload decodes data and queues it as a new photo; on error nothing is queued
func (u *Uploader) Upload(source string, data []byte) (scene.ImageRef, error) {
	ref, err := Decode(source, data)
	if err != nil {
		return scene.ImageRef{}, err
	}
	u.poster.Post(func(s *scene.Store) { s.UploadPhoto(ref) })
	return ref, nil
}

// UploadFile reads and uploads the file at path
func (u *Uploader) UploadFile(path string) (scene.ImageRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return scene.ImageRef{}, err
	}
	if info.Size() > MaxFileSize {
		return scene.ImageRef{}, fmt.Errorf("%s: %w: %d bytes", path, ErrNotImage, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.ImageRef{}, err
	}
	return u.Upload(filepath.Base(path), data)
}
