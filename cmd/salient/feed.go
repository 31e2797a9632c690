package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Feed is the YAML input format for rank and watch:
//
//	posts:
//	  - text: "new paper on transformer attention"
//	  - id: "post-42"
//	    text: "check out this cat video"
type Feed struct {
	Posts []FeedPost `yaml:"posts"`
}

// FeedPost is one entry in a YAML feed. ID is optional and only echoed back
// in output; ranking operates on Text.
type FeedPost struct {
	ID   string `yaml:"id,omitempty"`
	Text string `yaml:"text"`
}

// parseFeed decodes a YAML feed and returns the post texts in feed order.
// Entries with no text are rejected so a bad feed fails here instead of
// mid-ranking.
func parseFeed(data []byte) ([]string, error) {
	var feed Feed
	if err := yaml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(feed.Posts) == 0 {
		return nil, fmt.Errorf("feed has no posts")
	}

	texts := make([]string, len(feed.Posts))
	for i, p := range feed.Posts {
		if strings.TrimSpace(p.Text) == "" {
			return nil, fmt.Errorf("feed post %d has no text", i+1)
		}
		texts[i] = p.Text
	}
	return texts, nil
}

// parseLines reads one post per non-blank line.
func parseLines(r io.Reader) ([]string, error) {
	var posts []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			posts = append(posts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	return posts, nil
}

// readPostsFile loads posts from path, picking the format by extension:
// .yaml/.yml files are parsed as a Feed, everything else as plain lines.
func readPostsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("read posts file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return parseFeed(data)
	default:
		return parseLines(strings.NewReader(string(data)))
	}
}
