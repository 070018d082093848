// Package media resolves the external video references carried by technique
// nodes into a directly playable/embeddable form for the overlay player.
package media

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Resolve converts a known external host URL shape into its embeddable or
// direct form. Unknown shapes return an error; the caller reports it and
// does not open the overlay.
func Resolve(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty media reference")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing media url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported media scheme %q", u.Scheme)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		// watch?v=ID and /embed/ID both normalize to the embed form.
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id, nil
		}
		if strings.HasPrefix(u.Path, "/embed/") {
			return "https://www.youtube.com/embed/" + strings.TrimPrefix(u.Path, "/embed/"), nil
		}
		return "", fmt.Errorf("youtube url without video id: %q", raw)
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id == "" {
			return "", fmt.Errorf("youtu.be url without video id: %q", raw)
		}
		return "https://www.youtube.com/embed/" + id, nil
	case "vimeo.com":
		id := strings.Trim(u.Path, "/")
		if id == "" || strings.ContainsRune(id, '/') {
			return "", fmt.Errorf("vimeo url without plain video id: %q", raw)
		}
		return "https://player.vimeo.com/video/" + id, nil
	case "player.vimeo.com":
		return raw, nil
	}

	// Direct media files pass through unchanged.
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".mp4", ".webm", ".ogv", ".mov":
		return raw, nil
	}

	return "", fmt.Errorf("cannot resolve %q to a playable form", raw)
}
