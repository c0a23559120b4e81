package podsettings

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Validators are pure functions from raw input to an accepted (possibly
// normalized) value. They are attached to fields at schema definition time
// and applied by Engine.Submit.

var tagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

// StripTags removes all HTML tags from raw. It never rejects.
func StripTags(raw string) (string, error) {
	return strings.TrimSpace(tagPattern.ReplaceAllString(raw, "")), nil
}

// SanitizeURL accepts empty input or an absolute http(s) URL, normalized by
// net/url. Anything else is rejected.
func SanitizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must be absolute")
	}
	return u.String(), nil
}

// NormalizeSlug lowercases, dashes and escapes raw for use as a URL path
// segment. Empty input stays empty.
func NormalizeSlug(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	return url.PathEscape(Slugify(raw)), nil
}

// EncodePassword one-way encodes a feed password for storage. The engine
// never calls this with blank input (blank submissions are a no-op for
// secret fields), so the plaintext is unrecoverable once stored.
func EncodePassword(raw string) (string, error) {
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}

// messageTags are the tags the no-access message may keep. Everything else
// is stripped, attributes included, except href/title/target on links.
var messageTags = map[string]bool{
	"a": true, "br": true, "em": true, "strong": true, "p": true,
}

var (
	tagNamePattern  = regexp.MustCompile(`^</?\s*([a-zA-Z0-9]+)`)
	linkAttrPattern = regexp.MustCompile(`(href|title|target)\s*=\s*("[^"]*"|'[^']*')`)
)

// FilterMessageHTML keeps only a small allowlist of formatting tags in the
// feed no-access message and drops everything else.
func FilterMessageHTML(raw string) (string, error) {
	out := tagPattern.ReplaceAllStringFunc(raw, func(tag string) string {
		m := tagNamePattern.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}
		name := strings.ToLower(m[1])
		if !messageTags[name] {
			return ""
		}
		if strings.HasPrefix(tag, "</") {
			return "</" + name + ">"
		}
		if name != "a" {
			return "<" + name + ">"
		}
		attrs := linkAttrPattern.FindAllString(tag, -1)
		if len(attrs) == 0 {
			return "<a>"
		}
		return "<a " + strings.Join(attrs, " ") + ">"
	})
	return out, nil
}

// CheckboxValue accepts only the two states a checkbox can submit.
func CheckboxValue(raw string) (string, error) {
	if raw != "" && raw != "on" {
		return "", errors.New(`checkbox value must be "on" or empty`)
	}
	return raw, nil
}
