package scene

// PhotoID identifies a photo; ids are time-based in milliseconds and strictly increasing
type PhotoID int64

// MaxPhotos bounds the photo list
const MaxPhotos = 12

// DefaultTitle is given to every uploaded photo
const DefaultTitle = "New Memory"

// ImageRef is the decoded image reference handed over by the upload collaborator
// Thumb holds Width×Height RGBA pixels and may be empty
type ImageRef struct {
	Source string
	MIME   string
	Width  int
	Height int
	Thumb  []byte
}

// Photo is one entry of the photo list
type Photo struct {
	ID    PhotoID
	Image ImageRef
	Title string
}

// State is a detached copy of the store contents
type State struct {
	Mode        Mode
	Photos      []Photo
	WishActive  bool
	SpiralBoost float32
}
