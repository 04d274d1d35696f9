package models

// Article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	StatusDraft:     true,
	StatusPublished: true,
}

// ValidAudioPlatforms defines allowed audio link platforms
var ValidAudioPlatforms = map[string]bool{
	"spotify": true,
	"listen":  true,
	"other":   true,
}

// AudioLink points at one hosted recording of an episode
type AudioLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Article represents one episode article. The multi-valued fields are
// stored as JSONB columns and decoded exactly once at the repository
// boundary; everything past that boundary sees fully-typed slices.
//
// Identifiers are opaque strings: legacy numeric ids read in as their
// decimal string forms and compare fine.
type Article struct {
	ID           string        `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	Slug         string        `json:"slug" db:"slug"`
	Status       string        `json:"status" db:"status"`
	PublishedAt  *string       `json:"published_at" db:"published_at"` // dotted day string, nil for drafts
	ThumbnailURL *string       `json:"thumbnail_url" db:"thumbnail_url"`
	BodyMarkdown string        `json:"body_markdown" db:"body_markdown"`
	AudioLinks   []AudioLink   `json:"audio_links" db:"-"`
	GuestIDs     []string      `json:"guest_ids" db:"-"`
	NavigatorIDs []string      `json:"navigator_ids" db:"-"`
	TagIDs       []string      `json:"tag_ids" db:"-"`
	LibraryItems []LibraryItem `json:"library_items" db:"-"`
	CreatedAt    string        `json:"created_at" db:"created_at"` // dotted day string
	UpdatedAt    string        `json:"updated_at" db:"updated_at"`
}

// IsPublished reports whether the article belongs in public listings.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// HasGuest reports whether the given person id is in the guest set.
func (a *Article) HasGuest(id string) bool {
	return containsID(a.GuestIDs, id)
}

// HasNavigator reports whether the given person id is in the navigator set.
func (a *Article) HasNavigator(id string) bool {
	return containsID(a.NavigatorIDs, id)
}

// HasTag reports whether the given tag id is in the tag set.
func (a *Article) HasTag(id string) bool {
	return containsID(a.TagIDs, id)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
