package registry

import "weshow/internal/domain/project"

// PhotoSet keeps the three parallel structures the dashboard edits together:
// display order, URL per positional key, title per positional key. Keys are
// "photo-{index}" and are reassigned on every move so the three structures
// always share one key space.
type PhotoSet struct {
	Order  []string
	URLs   map[string]string
	Titles map[string]string
}

// NewPhotoSet builds a set from an ordered photo list.
func NewPhotoSet(photos []project.Photo) *PhotoSet {
	s := &PhotoSet{
		Order:  make([]string, 0, len(photos)),
		URLs:   make(map[string]string, len(photos)),
		Titles: make(map[string]string, len(photos)),
	}

	for i, p := range photos {
		id := project.PhotoID(i)
		s.Order = append(s.Order, id)
		s.URLs[id] = p.URL
		s.Titles[id] = p.Title
	}

	return s
}

// Move applies a drag operation. Equal or out-of-range indices are a no-op.
// The element at src is removed and reinserted at dest; every key between the
// two positions shifts one slot. Order, URLs and Titles are rebuilt together,
// so after any number of moves the {url, title} multiset is unchanged.
func (s *PhotoSet) Move(src, dest int) bool {
	n := len(s.Order)
	if src == dest || src < 0 || dest < 0 || src >= n || dest >= n {
		return false
	}

	urls := make([]string, 0, n)
	titles := make([]string, 0, n)
	for _, id := range s.Order {
		urls = append(urls, s.URLs[id])
		titles = append(titles, s.Titles[id])
	}

	movedURL, movedTitle := urls[src], titles[src]
	urls = append(urls[:src], urls[src+1:]...)
	titles = append(titles[:src], titles[src+1:]...)

	urls = append(urls[:dest], append([]string{movedURL}, urls[dest:]...)...)
	titles = append(titles[:dest], append([]string{movedTitle}, titles[dest:]...)...)

	order := make([]string, 0, n)
	urlMap := make(map[string]string, n)
	titleMap := make(map[string]string, n)
	for i := 0; i < n; i++ {
		id := project.PhotoID(i)
		order = append(order, id)
		urlMap[id] = urls[i]
		titleMap[id] = titles[i]
	}

	s.Order = order
	s.URLs = urlMap
	s.Titles = titleMap

	return true
}

// Photos flattens the set back to the ordered photo list.
func (s *PhotoSet) Photos() []project.Photo {
	photos := make([]project.Photo, 0, len(s.Order))
	for i, id := range s.Order {
		photos = append(photos, project.Photo{
			ID:    id,
			Title: s.Titles[id],
			URL:   s.URLs[id],
			Order: i,
		})
	}

	return photos
}

// ReorderPhotos is the project-level entry point for a drag operation.
func ReorderPhotos(photos []project.Photo, src, dest int) []project.Photo {
	set := NewPhotoSet(photos)
	if !set.Move(src, dest) {
		return photos
	}

	return set.Photos()
}
