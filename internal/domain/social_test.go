package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTwitterURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "at handle", input: "@username", want: "https://x.com/username"},
		{name: "bare handle", input: "username", want: "https://x.com/username"},
		{name: "full https url", input: "https://x.com/username", want: "https://x.com/username"},
		{name: "http url", input: "http://twitter.com/username", want: "https://twitter.com/username"},
		{name: "www url keeps www", input: "www.x.com/username", want: "https://www.x.com/username"},
		{name: "query string stripped", input: "https://x.com/username?ref=conf", want: "https://x.com/username"},
		{name: "first token only", input: "@username and some commentary", want: "https://x.com/username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTwitterURL(tt.input))
		})
	}
}

func TestNormalizeMastodonURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "http url", input: "http://mastodon.social/@username", want: "https://mastodon.social/@username"},
		{name: "https url", input: "https://mastodon.social/@username", want: "https://mastodon.social/@username"},
		{name: "query string stripped", input: "https://mastodon.social/@username?something=true", want: "https://mastodon.social/@username"},
		{name: "address form", input: "@username@mastodon.social", want: "https://mastodon.social/@username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMastodonURL(tt.input))
		})
	}
}

func TestNormalizeLinkedInURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare username", input: "username", want: "https://linkedin.com/in/username"},
		{name: "in path", input: "in/username", want: "https://linkedin.com/in/username"},
		{name: "www url keeps www", input: "www.linkedin.com/in/username", want: "https://www.linkedin.com/in/username"},
		{name: "http url", input: "http://linkedin.com/in/username", want: "https://linkedin.com/in/username"},
		{name: "https url", input: "https://linkedin.com/in/username", want: "https://linkedin.com/in/username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLinkedInURL(tt.input))
		})
	}
}
