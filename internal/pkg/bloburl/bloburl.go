// Package bloburl builds, repairs and canonicalises the blob URLs stored on resume records.
//
// Every resume file lives at <base>/<container>/resume_<YYYYmmdd_HHMMSS>_<id8>.pdf
// and is handed out with the account SAS token appended.
package bloburl

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	namePrefix = "resume_"
	nameSuffix = ".pdf"
	stampFmt   = "20060102_150405"
)

var (
	invalidNameChars = regexp.MustCompile(`[^\w/.\-]`)
	invalidIDChars   = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
)

// Builder knows the storage account layout and SAS token
type Builder struct {
	base      string
	host      string
	container string
	token     string
}

// NewBuilder returns a Builder for the account at baseURL. A leading "?" on token is dropped.
func NewBuilder(baseURL, container, token string) (*Builder, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid blob base url %q", baseURL)
	}
	return &Builder{
		base:      strings.TrimRight(baseURL, "/"),
		host:      u.Host,
		container: container,
		token:     strings.TrimPrefix(token, "?"),
	}, nil
}

// Container returns the container resume files are stored in
func (b *Builder) Container() string { return b.container }

// Token returns the SAS token without a leading "?"
func (b *Builder) Token() string { return b.token }

// StandardName returns resume_<YYYYmmdd_HHMMSS>_<suffix>.pdf
func StandardName(now time.Time, suffix string) string {
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return namePrefix + now.Format(stampFmt) + "_" + suffix + nameSuffix
}

// IsStandardName reports whether name follows the resume_*.pdf pattern
func IsStandardName(name string) bool {
	return strings.HasPrefix(name, namePrefix) && strings.HasSuffix(name, nameSuffix)
}

// SanitizeName strips leading slashes and replaces characters blob names should not carry
func SanitizeName(name string) string {
	return invalidNameChars.ReplaceAllString(strings.TrimLeft(name, "/"), "_")
}

// SanitizeID turns a free-form name or title into a lower-case document id
func SanitizeID(s string) string {
	return strings.ToLower(invalidIDChars.ReplaceAllString(s, "_"))
}

// StripQuery drops everything from the first "?"
func StripQuery(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// DirectURL is the canonical location of name in the resume container
func (b *Builder) DirectURL(name string) string {
	return b.base + "/" + b.container + "/" + name
}

// SignedURL is DirectURL with the SAS token appended
func (b *Builder) SignedURL(name string) string {
	return b.Sign(b.DirectURL(name))
}

// Sign replaces whatever query raw carries with the SAS token
func (b *Builder) Sign(raw string) string {
	if b.token == "" {
		return StripQuery(raw)
	}
	return StripQuery(raw) + "?" + b.token
}

// WithSAS appends the SAS token unless the URL already carries SAS parameters
func (b *Builder) WithSAS(raw string) string {
	if b.token == "" {
		return raw
	}
	i := strings.IndexByte(raw, '?')
	if i < 0 {
		return raw + "?" + b.token
	}
	for _, param := range strings.Split(raw[i+1:], "&") {
		if strings.HasPrefix(param, "sp=") || strings.HasPrefix(param, "sv=") {
			return raw
		}
	}
	return raw + "&" + b.token
}

// HasToken reports whether raw already carries the configured SAS token
func (b *Builder) HasToken(raw string) bool {
	return b.token != "" && strings.Contains(raw, b.token)
}

// IsAccountURL reports whether raw points at the configured storage account
func (b *Builder) IsAccountURL(raw string) bool {
	return strings.Contains(raw, b.host)
}

// RepairSAS re-signs raw when it lacks the SAS token or points at the storage account.
// The second result reports whether the URL changed.
func (b *Builder) RepairSAS(raw string) (string, bool) {
	if raw == "" || b.token == "" {
		return raw, false
	}
	if !b.HasToken(raw) || b.IsAccountURL(raw) {
		signed := b.Sign(raw)
		return signed, signed != raw
	}
	return raw, false
}

// Standardize rewrites raw into the canonical account/container form.
//
// URLs already on the account and in the container are returned as they are.
// Otherwise the last resume_*.pdf path segment is kept. Without one, a fresh
// standard name derived from fallbackID is used; an empty fallbackID leaves raw untouched.
func (b *Builder) Standardize(raw, fallbackID string, now time.Time) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, false
	}

	parts := splitPath(u.Path)
	if u.Host == b.host && len(parts) > 0 && parts[0] == b.container {
		return raw, false
	}

	name := ""
	for i := len(parts) - 1; i >= 0; i-- {
		if IsStandardName(parts[i]) {
			name = parts[i]
			break
		}
	}
	if name == "" {
		if fallbackID == "" {
			return raw, false
		}
		name = StandardName(now, fallbackID)
	}

	return b.DirectURL(name), true
}

// BlobName extracts the blob name from a stored URL: the path after the container,
// or the last path segment when the container is not part of the path.
func (b *Builder) BlobName(raw string) string {
	u, err := url.Parse(StripQuery(raw))
	if err != nil {
		return ""
	}
	parts := splitPath(u.Path)
	if len(parts) > 1 && parts[0] == b.container {
		return strings.Join(parts[1:], "/")
	}
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// RecoveryPrefix is the listing prefix used to find a replacement for a missing blob:
// the first directory of the name, or the part before the first underscore.
func RecoveryPrefix(name string) string {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	if i := strings.IndexByte(name, '_'); i >= 0 {
		return name[:i]
	}
	return ""
}

// FileName returns the last path element of raw without its query
func FileName(raw string) string {
	return path.Base(StripQuery(raw))
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
