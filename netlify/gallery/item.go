package gallery

import (
	"regexp"
	"strings"

	"github.com/xover0/gallery/netlify/feed"
)

const (
	MessageSuccess = "Success"
	MessageEmpty   = "No items with images found"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Item is one entry of the gallery payload.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ImageURL    string `json:"imageUrl"`
	PostID      string `json:"postId"`
}

// Response is the body of a successful gallery request.
type Response struct {
	Success bool   `json:"success"`
	Items   []Item `json:"items"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

func NewResponse(items []Item) *Response {
	if items == nil {
		items = []Item{}
	}
	msg := MessageSuccess
	if len(items) == 0 {
		msg = MessageEmpty
	}
	return &Response{
		Success: true,
		Items:   items,
		Count:   len(items),
		Message: msg,
	}
}

// NewItem pairs a feed entry with the image its post resolved to.
func NewItem(entry feed.Item, imageURL, titlePrefix string) Item {
	return Item{
		Title:       CleanTitle(entry.Title, titlePrefix),
		Description: StripTags(entry.Description),
		Link:        entry.Link,
		ImageURL:    imageURL,
		PostID:      entry.PostID(),
	}
}

// CleanTitle drops prefix when the title starts with it verbatim.
func CleanTitle(title, prefix string) string {
	if prefix == "" {
		return title
	}
	return strings.TrimPrefix(title, prefix)
}

func StripTags(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}
