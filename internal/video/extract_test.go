package video

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://youtu.be/abc12345678", "abc12345678"},
		{"https://www.youtube.com/watch?v=abc12345678&t=5", "abc12345678"},
		{"abc12345678", "abc12345678"},
		{"  abc12345678  ", "abc12345678"},
		{"https://www.youtube.com/embed/abc-_345678?autoplay=1", "abc-_345678"},
		{"https://m.youtube.com/watch?feature=share&v=abc12345678", "abc12345678"},
		{"youtu.be/abc12345678?si=xyz", "abc12345678"},
		{"https://music.youtube.com/watch?v=abc12345678&list=RD", "abc12345678"},
	}
	for _, tc := range cases {
		got, err := ExtractID(tc.in)
		if err != nil {
			t.Fatalf("ExtractID(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ExtractID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractIDNoMatch(t *testing.T) {
	for _, in := range []string{
		"",
		"hello world",
		"https://example.com/watch?v=abc12345678",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/feed/library",
		"https://youtu.be/",
		"abc1234567",
	} {
		if got, err := ExtractID(in); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("ExtractID(%q) = %q, %v; want ErrNoMatch", in, got, err)
		}
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("abc12345678"); got != "https://www.youtube.com/watch?v=abc12345678" {
		t.Fatalf("unexpected watch url: %s", got)
	}
}
