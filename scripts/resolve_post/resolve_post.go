package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xover0/gallery/netlify/config"
	"github.com/xover0/gallery/netlify/feed"
	"github.com/xover0/gallery/netlify/pixelfed"
)

// Looks up one post the way the gallery function does and prints its
// media. Accepts a post ID or a post link.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: resolve_post <post id or link>")
		os.Exit(2)
	}
	postID := feed.PostID(os.Args[1])

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Println("Fetching", postID, "from", cfg.APIURL)
	client := pixelfed.NewClient(cfg.APIURL, cfg.AccessToken, nil)
	status, err := client.GetStatus(context.Background(), postID)
	if err != nil {
		fmt.Println("lookup failed:", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(status.MediaAttachments, "", "  ")
	fmt.Println(string(out))
	if url := status.FirstMediaURL(); url != "" {
		fmt.Println("gallery image:", url)
	} else {
		fmt.Println("no media attachments, post would be left out of the gallery")
	}
}
