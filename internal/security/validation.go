// Package security guards what Chromaflow takes in from outside: theme
// source URLs, remote wallpapers and archive contents.
package security

import (
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateHTTPURL rejects URLs that are not safe to download from.
// Sources must be HTTPS and must not address the local machine or a
// private network directly.
func ValidateHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("URL must have a hostname")
	}
	if privateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// privateHost reports whether host names the local machine or a private
// network address. Only literal addresses are judged; what a public
// hostname resolves to is between the user and their resolver.
func privateHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsUnspecified()
}

// ValidateFilePath rejects archive member names that would land outside
// destDir once joined: absolute paths and anything traversing up via "..".
func ValidateFilePath(name, destDir string) error {
	if name == "" {
		return fmt.Errorf("empty file path")
	}
	if !filepath.IsLocal(name) {
		return fmt.Errorf("archive path %q would escape %s", name, destDir)
	}
	return nil
}

// SafeUint8 clamps v into a colour channel's 0..255 range.
func SafeUint8(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// LimitedReader fails a read once it has produced maxBytes, cutting
// decompression bombs short. Unlike io.LimitReader it surfaces an error
// instead of a silent EOF, so extraction reports the oversized archive.
type LimitedReader struct {
	r      io.Reader
	budget int64
}

// NewLimitedReader wraps r with a total byte budget.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{r: r, budget: maxBytes}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.budget <= 0 {
		return 0, fmt.Errorf("decompression size limit exceeded")
	}
	if int64(len(p)) > l.budget {
		p = p[:l.budget]
	}
	n, err := l.r.Read(p)
	l.budget -= int64(n)
	return n, err
}
