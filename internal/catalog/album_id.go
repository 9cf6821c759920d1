package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	albumRefPattern = regexp.MustCompile(`(?:spotify\.com/album/|:album:)([0-9A-Za-z]+)`)
	bareIDPattern   = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)
)

// ExtractAlbumID returns the album ID from a web link
// (https://open.spotify.com/album/<id>), a URI (spotify:album:<id>) or a
// bare 22-character ID.
//
// Returns ErrInvalidAlbumID when s holds none of these.
func ExtractAlbumID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := albumRefPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAlbumID, s)
}
