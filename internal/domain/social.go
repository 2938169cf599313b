package domain

import "strings"

// Social profile answers arrive as free text: bare handles, @-handles,
// fediverse addresses, or full URLs, sometimes with tracking query strings.
// The normalizers below rewrite them to canonical https profile URLs. Only
// the first whitespace-delimited token is considered, and any query string
// is stripped from the result.

// NormalizeTwitterURL canonicalizes an X/Twitter answer to an x.com URL.
func NormalizeTwitterURL(answer string) string {
	text := firstToken(answer)
	var url string
	switch {
	case strings.HasPrefix(text, "@"):
		url = "https://x.com/" + text[1:]
	case !hasAnyPrefix(text, "https://", "http://", "www."):
		url = "https://x.com/" + text
	default:
		url = "https://" + trimScheme(text)
	}
	return stripQuery(url)
}

// NormalizeMastodonURL canonicalizes a Mastodon answer, handling the
// @username@instance address form.
func NormalizeMastodonURL(answer string) string {
	text := firstToken(answer)
	var url string
	if !hasAnyPrefix(text, "https://", "http://") && strings.Count(text, "@") == 2 {
		parts := strings.Split(text, "@")
		url = "https://" + parts[2] + "/@" + parts[1]
	} else {
		url = "https://" + trimScheme(text)
	}
	return stripQuery(url)
}

// NormalizeLinkedInURL canonicalizes a LinkedIn answer, accepting bare
// usernames and in/username paths.
func NormalizeLinkedInURL(answer string) string {
	text := firstToken(answer)
	var url string
	switch {
	case strings.HasPrefix(text, "in/"):
		url = "https://linkedin.com/" + text
	case !hasAnyPrefix(text, "https://", "http://", "www."):
		url = "https://linkedin.com/in/" + text
	default:
		url = "https://" + trimScheme(text)
	}
	return stripQuery(url)
}

// FirstAnswerToken returns the first whitespace-delimited token of a free
// text answer, or "" for a blank answer. The Github/Gitlab profile field
// publishes this token verbatim.
func FirstAnswerToken(answer string) string {
	return firstToken(answer)
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func trimScheme(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
}

func stripQuery(s string) string {
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[:i]
	}
	return s
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
