package scene

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wishtree/clock"
)

func newTestStore(startMilli int64) (*Store, *clock.MockTimeProvider) {
	mock := clock.NewMockTimeProvider(time.UnixMilli(startMilli))
	return NewStore(WithClock(mock)), mock
}

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	assert.Equal(t, KindTree, s.Mode().Kind())
	assert.Empty(t, s.Photos())
	assert.False(t, s.WishActive())
	assert.Zero(t, s.SpiralBoost())
}

func TestToggleFromFocusClearsFocus(t *testing.T) {
	s, _ := newTestStore(42)
	s.UploadPhoto(ImageRef{Source: "a.png"})
	require.Equal(t, PhotoID(42), s.Photos()[0].ID)

	s.SetFocusedEntity(42, true)
	require.True(t, s.Mode().IsFocusOn(42))

	s.ToggleMode()
	assert.Equal(t, KindGalaxy, s.Mode().Kind())
	_, ok := s.Mode().Focused()
	assert.False(t, ok)
}

func TestToggleCycle(t *testing.T) {
	s := NewStore()
	s.ToggleMode()
	assert.Equal(t, Galaxy(), s.Mode())
	s.ToggleMode()
	assert.Equal(t, Tree(), s.Mode())
}

func TestFocusUnknownIgnored(t *testing.T) {
	s := NewStore()
	s.SetMode(Galaxy())
	s.SetMode(Focus(999))
	assert.Equal(t, Galaxy(), s.Mode())
	s.SetFocusedEntity(999, true)
	assert.Equal(t, Galaxy(), s.Mode())
}

func TestClearFocus(t *testing.T) {
	s, _ := newTestStore(10)
	s.UploadPhoto(ImageRef{})
	s.SetFocusedEntity(10, true)
	s.SetFocusedEntity(0, false)
	assert.Equal(t, Galaxy(), s.Mode())

	s.SetMode(Tree())
	s.SetFocusedEntity(0, false)
	assert.Equal(t, Tree(), s.Mode(), "clearing focus outside FOCUS is a no-op")
}

func TestSelectPhoto(t *testing.T) {
	s, mock := newTestStore(100)
	s.UploadPhoto(ImageRef{})
	mock.Advance(time.Millisecond)
	s.UploadPhoto(ImageRef{})

	s.SelectPhoto(100)
	assert.True(t, s.Mode().IsFocusOn(100))
	s.SelectPhoto(101)
	assert.True(t, s.Mode().IsFocusOn(101))
	s.SelectPhoto(101)
	assert.Equal(t, Galaxy(), s.Mode())
}

func TestUploadTrimsToTwelve(t *testing.T) {
	s, mock := newTestStore(1000)
	for i := 0; i < 13; i++ {
		s.UploadPhoto(ImageRef{Source: string(rune('a' + i))})
		mock.Advance(time.Second)
	}

	photos := s.Photos()
	require.Len(t, photos, MaxPhotos)
	assert.Equal(t, "m", photos[0].Image.Source, "most recent first")
	assert.Equal(t, "b", photos[11].Image.Source, "first upload evicted")
	for i := 1; i < len(photos); i++ {
		assert.Greater(t, photos[i-1].ID, photos[i].ID)
	}
	assert.Equal(t, DefaultTitle, photos[0].Title)
}

func TestUploadIDsStrictlyIncreaseOnFrozenClock(t *testing.T) {
	s, _ := newTestStore(5)
	s.UploadPhoto(ImageRef{})
	s.UploadPhoto(ImageRef{})
	s.UploadPhoto(ImageRef{})
	photos := s.Photos()
	assert.Equal(t, []PhotoID{7, 6, 5}, []PhotoID{photos[0].ID, photos[1].ID, photos[2].ID})
}

func TestEvictingFocusedPhotoLeavesFocus(t *testing.T) {
	s, mock := newTestStore(1)
	s.UploadPhoto(ImageRef{})
	s.SetFocusedEntity(1, true)
	for i := 0; i < MaxPhotos-1; i++ {
		mock.Advance(time.Millisecond)
		s.UploadPhoto(ImageRef{})
	}
	require.True(t, s.Mode().IsFocusOn(1), "still present at twelve photos")

	mock.Advance(time.Millisecond)
	s.UploadPhoto(ImageRef{})
	assert.Equal(t, Galaxy(), s.Mode())
}

func TestTriggerWishGuard(t *testing.T) {
	s := NewStore()
	s.SetSpiralBoost(0.7)
	s.TriggerWish()
	assert.True(t, s.WishActive())
	assert.Zero(t, s.SpiralBoost())

	s.SetSpiralBoost(0.4)
	s.TriggerWish()
	assert.True(t, s.WishActive())
	assert.InDelta(t, 0.4, s.SpiralBoost(), 1e-6, "second trigger leaves boost untouched")

	s.CompleteWish()
	assert.False(t, s.WishActive())
}

func TestSpiralBoostClamp(t *testing.T) {
	s := NewStore()
	s.SetSpiralBoost(3)
	assert.Equal(t, float32(1), s.SpiralBoost())
	s.SetSpiralBoost(-1)
	assert.Equal(t, float32(0), s.SpiralBoost())
	s.SetSpiralBoost(float32(math.NaN()))
	assert.Equal(t, float32(0), s.SpiralBoost())
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := newTestStore(3)
	s.UploadPhoto(ImageRef{Source: "x", Thumb: []byte{1, 2, 3, 4}})
	s.SetFocusedEntity(3, true)

	snap := s.Snapshot()
	require.Len(t, snap.Photos, 1)
	assert.True(t, snap.Mode.IsFocusOn(3))

	snap.Photos[0].Image.Thumb[0] = 99
	snap.Photos[0].Title = "edited"
	fresh := s.Photos()
	assert.Equal(t, byte(1), fresh[0].Image.Thumb[0])
	assert.Equal(t, DefaultTitle, fresh[0].Title)
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.UploadPhoto(ImageRef{})
				s.ToggleMode()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, s.Photos(), MaxPhotos)
}
