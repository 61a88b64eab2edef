package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"weshow/internal/domain/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePhotos(n int) []project.Photo {
	photos := make([]project.Photo, 0, n)
	for i := 0; i < n; i++ {
		photos = append(photos, project.Photo{
			ID:    project.PhotoID(i),
			Title: fmt.Sprintf("shot %d", i),
			URL:   fmt.Sprintf("https://cdn.example.com/p/%d.jpg", i),
			Order: i,
		})
	}

	return photos
}

func pairSet(photos []project.Photo) []string {
	pairs := make([]string, 0, len(photos))
	for _, p := range photos {
		pairs = append(pairs, p.URL+"|"+p.Title)
	}
	sort.Strings(pairs)

	return pairs
}

func TestReorderPhotos_MoveForward(t *testing.T) {
	photos := ReorderPhotos(makePhotos(4), 0, 2)

	// Element 0 moved to position 2, everything between shifted back one.
	assert.Equal(t, "shot 1", photos[0].Title)
	assert.Equal(t, "shot 2", photos[1].Title)
	assert.Equal(t, "shot 0", photos[2].Title)
	assert.Equal(t, "shot 3", photos[3].Title)
}

func TestReorderPhotos_MoveBackward(t *testing.T) {
	photos := ReorderPhotos(makePhotos(4), 3, 1)

	assert.Equal(t, "shot 0", photos[0].Title)
	assert.Equal(t, "shot 3", photos[1].Title)
	assert.Equal(t, "shot 1", photos[2].Title)
	assert.Equal(t, "shot 2", photos[3].Title)
}

func TestReorderPhotos_NoOp(t *testing.T) {
	original := makePhotos(3)

	assert.Equal(t, original, ReorderPhotos(original, 1, 1))
	assert.Equal(t, original, ReorderPhotos(original, -1, 2))
	assert.Equal(t, original, ReorderPhotos(original, 0, 3))
	assert.Equal(t, original, ReorderPhotos(original, 5, 0))
}

func TestReorderPhotos_KeysStayPositional(t *testing.T) {
	photos := ReorderPhotos(makePhotos(5), 4, 0)

	require.Len(t, photos, 5)
	for i, p := range photos {
		assert.Equal(t, project.PhotoID(i), p.ID)
		assert.Equal(t, i, p.Order)
	}
}

func TestReorderPhotos_PermutationInvariant(t *testing.T) {
	// After N random valid moves the {url, title} multiset is unchanged and
	// the length stays N.
	const n = 8
	rng := rand.New(rand.NewSource(42))

	photos := makePhotos(n)
	want := pairSet(photos)

	for i := 0; i < 200; i++ {
		src := rng.Intn(n)
		dest := rng.Intn(n)
		photos = ReorderPhotos(photos, src, dest)

		require.Len(t, photos, n)
		assert.Equal(t, want, pairSet(photos))
	}
}

func TestPhotoSet_ParallelStructuresConsistent(t *testing.T) {
	set := NewPhotoSet(makePhotos(6))
	require.True(t, set.Move(2, 5))

	assert.Len(t, set.Order, 6)
	assert.Len(t, set.URLs, 6)
	assert.Len(t, set.Titles, 6)
	for _, id := range set.Order {
		_, hasURL := set.URLs[id]
		_, hasTitle := set.Titles[id]
		assert.True(t, hasURL)
		assert.True(t, hasTitle)
	}
}
