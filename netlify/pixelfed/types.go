package pixelfed

// Status is the subset of a Mastodon-compatible status the gallery reads.
// Every field may be missing from the response.
type Status struct {
	ID               string            `json:"id"`
	URL              string            `json:"url"`
	Content          string            `json:"content"`
	MediaAttachments []MediaAttachment `json:"media_attachments"`
}

type MediaAttachment struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	PreviewURL  string `json:"preview_url"`
	Description string `json:"description"`
}

// FirstMediaURL returns the URL of the first attachment, or "" when the
// status carries no media. Later attachments are ignored.
func (s *Status) FirstMediaURL() string {
	if s == nil || len(s.MediaAttachments) == 0 {
		return ""
	}
	return s.MediaAttachments[0].URL
}
