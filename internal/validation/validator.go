package validation

import (
	"regexp"
	"strings"

	"github.com/radio-cms-api/internal/models"
)

var (
	slugRegex       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	dottedDayRegex  = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)
	isoDayRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateArticle validates an article before create/update. Slug
// uniqueness is a repository concern; this covers shape only.
func ValidateArticle(a *models.Article) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(a.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	if a.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(a.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be lowercase letters, digits and hyphens", Value: a.Slug})
	}

	if !models.ValidStatuses[a.Status] {
		errors = append(errors, ValidationError{Field: "status", Message: "status must be draft or published", Value: a.Status})
	}

	if a.Status == models.StatusPublished && a.PublishedAt == nil {
		errors = append(errors, ValidationError{Field: "published_at", Message: "published articles require a publication date"})
	}
	if a.PublishedAt != nil && !IsDayString(*a.PublishedAt) {
		errors = append(errors, ValidationError{Field: "published_at", Message: "invalid date format", Value: *a.PublishedAt})
	}

	for i, link := range a.AudioLinks {
		if !models.ValidAudioPlatforms[link.Platform] {
			errors = append(errors, ValidationError{Field: "audio_links", Message: "invalid platform", Value: link.Platform})
		}
		if link.URL == "" {
			errors = append(errors, ValidationError{Field: "audio_links", Message: "url is required", Value: i})
		}
	}

	for _, item := range a.LibraryItems {
		errors = append(errors, validateLibraryItem(&item)...)
	}

	return errors
}

func validateLibraryItem(item *models.LibraryItem) []ValidationError {
	var errors []ValidationError

	if !models.ValidLibraryTypes[item.Type] {
		errors = append(errors, ValidationError{Field: "library_items.type", Message: "type must be book or track", Value: item.Type})
	}
	if strings.TrimSpace(item.Title) == "" {
		errors = append(errors, ValidationError{Field: "library_items.title", Message: "title is required"})
	}
	if item.CreatedAt != "" && !IsDayString(item.CreatedAt) {
		errors = append(errors, ValidationError{Field: "library_items.created_at", Message: "invalid date format", Value: item.CreatedAt})
	}
	for _, link := range item.Links {
		if !models.ValidLinkKinds[link.Kind] {
			errors = append(errors, ValidationError{Field: "library_items.links", Message: "invalid link kind", Value: link.Kind})
		}
	}

	return errors
}

// ValidatePerson validates a guest/navigator record
func ValidatePerson(p *models.Person) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(p.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}
	if !models.ValidRoles[p.Role] {
		errors = append(errors, ValidationError{Field: "role", Message: "role must be guest or navigator", Value: p.Role})
	}

	return errors
}

// ValidateTag validates a tag record
func ValidateTag(t *models.Tag) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(t.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	return errors
}

// IsDayString reports whether s looks like a day in either the dotted
// or the ISO convention.
func IsDayString(s string) bool {
	return dottedDayRegex.MatchString(s) || isoDayRegex.MatchString(s)
}

// Slugify derives a URL slug from a display name: lowercased, runs of
// whitespace collapsed to single hyphens.
func Slugify(name string) string {
	return whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
