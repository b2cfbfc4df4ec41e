package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownCategoryLabel is the display name for uncategorized repositories.
const UnknownCategoryLabel = "unknown"

// RepositoryCategory represents one repository's category assignment.
type RepositoryCategory struct {
	FullName string `bson:"full_name" json:"full_name"`
	Category string `bson:"category,omitempty" json:"category"`
}

// CategoryIndex maps repository full names to their canonical category.
// An entry with an empty category is a repository known to the index but
// not categorized.
type CategoryIndex map[string]string

// BuildCategoryIndex builds an index from category assignments,
// canonicalizing every category. Later assignments win on duplicates.
func BuildCategoryIndex(assignments []RepositoryCategory) CategoryIndex {
	idx := make(CategoryIndex, len(assignments))
	for _, a := range assignments {
		if a.FullName == "" {
			continue
		}
		idx[a.FullName] = CanonicalCategory(a.Category)
	}
	return idx
}

// Lookup returns the canonical category for a repository, or the empty
// string when the repository is absent or uncategorized.
func (idx CategoryIndex) Lookup(fullName string) string {
	return idx[fullName]
}

// CanonicalCategory lower-cases and trims a category name. The empty
// string is the canonical form for "no category".
func CanonicalCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// DisplayCategory renders a canonical category for presentation,
// capitalizing the first letter and naming the empty category "Unknown".
func DisplayCategory(category string) string {
	if category == "" {
		category = UnknownCategoryLabel
	}
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}
