package gitsource

import (
	"path/filepath"
	"testing"
)

func TestLocalPath(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/words/german.git", filepath.Join("repos", "github.com", "words", "german")},
		{"https://github.com/words/german", filepath.Join("repos", "github.com", "words", "german")},
		{"git@github.com:words/german.git", filepath.Join("repos", "github.com", "words", "german")},
	}
	for _, tc := range cases {
		got, err := LocalPath("repos", tc.url)
		if err != nil {
			t.Errorf("LocalPath(%q) returned error: %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("LocalPath(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestLocalPathRejectsGarbage(t *testing.T) {
	if _, err := LocalPath("repos", "not a url"); err == nil {
		t.Error("expected an error for an unparseable URL")
	}
}

func TestIsGitURL(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/words/german.git": true,
		"git@github.com:words/german.git":     true,
		"/home/user/vocab":                    false,
		"./words":                             false,
	}
	for url, want := range cases {
		if got := IsGitURL(url); got != want {
			t.Errorf("IsGitURL(%q) = %v, want %v", url, got, want)
		}
	}
}
