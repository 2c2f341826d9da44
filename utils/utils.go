package utils

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a course title into a URL-safe slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ShuffledIndexes returns a random permutation of [0, n). Used to present
// quiz questions in a derived order; the order is never persisted, answers
// stay keyed by question id.
func ShuffledIndexes(n int) []int {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	indexes := rng.Perm(n)
	return indexes
}
