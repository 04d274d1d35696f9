package models

// Library item types
const (
	LibraryTypeBook  = "book"
	LibraryTypeTrack = "track"
)

// ValidLibraryTypes defines allowed library item types
var ValidLibraryTypes = map[string]bool{
	LibraryTypeBook:  true,
	LibraryTypeTrack: true,
}

// ValidLinkKinds defines allowed external link kinds on library items
var ValidLinkKinds = map[string]bool{
	"amazon":  true,
	"spotify": true,
	"youtube": true,
	"other":   true,
}

// LibraryLink is one external link (shop/streaming) for a library item
type LibraryLink struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// LibraryItem is a book or track recommended within an episode article.
// It is embedded in its owning Article and not independently addressable;
// its ID is only unique within that article.
type LibraryItem struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Title        string        `json:"title"`
	Creator      string        `json:"creator"`
	ThumbnailURL *string       `json:"thumbnail_url"`
	Links        []LibraryLink `json:"links"`
	CreatedAt    string        `json:"created_at"` // dotted day string
}

// FlattenedLibraryItem is a LibraryItem denormalized with its parent
// article's identity for the cross-article library listing. Derived by
// the flatten operation, never stored. The ID is a composite of the
// parent article id and the item's position, which stays stable across
// re-flattens even when embedded item ids collide across articles.
type FlattenedLibraryItem struct {
	LibraryItem
	EpisodeID            string   `json:"episode_id"`
	EpisodeTitle         string   `json:"episode_title"`
	EpisodeSlug          string   `json:"episode_slug"`
	RecommendingGuestIDs []string `json:"recommending_guest_ids"`
}
