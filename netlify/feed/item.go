package feed

import "strings"

// Item is one entry of the account feed, one Pixelfed post.
type Item struct {
	Title       string
	Description string
	Link        string
}

// PostID is the last non-empty path segment of the item link.
func (i Item) PostID() string {
	return PostID(i.Link)
}

func PostID(link string) string {
	segments := strings.Split(strings.TrimSpace(link), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
