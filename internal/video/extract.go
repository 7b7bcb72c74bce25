package video

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var ErrNoMatch = errors.New("video: no video id in input")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractID returns the 11-character video id from a watch, short, or embed URL, or
// from a bare id.
func ExtractID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoMatch
	}
	if idPattern.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", ErrNoMatch
		}
	}
	host := strings.ToLower(u.Hostname())

	var id string
	switch {
	case strings.Contains(host, "youtu.be"):
		id = firstSegment(u.Path)
	case strings.Contains(host, "youtube.com"):
		id = u.Query().Get("v")
		if id == "" {
			id = segmentAfter(u.Path, "embed")
		}
	}
	if !idPattern.MatchString(id) {
		return "", ErrNoMatch
	}
	return id, nil
}

func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// WatchURL is the canonical URL the player is handed for an id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.Index(path, "/"); i >= 0 {
		path = path[:i]
	}
	return path
}

func segmentAfter(path, marker string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == marker && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
