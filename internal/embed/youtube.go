// Package embed normalizes the URLs of embedded learning artifacts: YouTube
// videos and playlists, Google Sheets documents and iframe heights.
package embed

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupportedURL marks a URL that is not in any accepted form.
var ErrUnsupportedURL = errors.New("unsupported URL")

const youTubeEmbedBase = "https://www.youtube.com/embed/"

// MaxOffset is the largest accepted start offset, in seconds.
const MaxOffset = 48 * 3600

var (
	youTubeID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// offsetPattern matches "535", "535s" and "1h2m3s" style offsets.
	offsetPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s?)?$`)
)

// YouTubeEmbed converts any accepted YouTube URL into its embed form,
// keeping the video ID, the playlist ID and the start offset in seconds:
//
//	https://www.youtube.com/embed/<ID>[?list=<LIST>&start=<N>]
//	https://www.youtube.com/embed/videoseries?list=<LIST>[&start=<N>]
//
// The result is itself accepted, and normalizing it again returns it as is.
func YouTubeEmbed(raw string) (string, error) {
	u, err := parseLoose(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedURL, raw, err)
	}

	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "m.", "music."} {
		host = strings.TrimPrefix(host, prefix)
	}

	q := u.Query()
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	var id string
	switch host {
	case "youtu.be":
		id = segs[0]
	case "youtube.com", "youtube-nocookie.com":
		switch segs[0] {
		case "watch":
			id = q.Get("v")
		case "shorts", "live", "embed", "v":
			if len(segs) > 1 {
				id = segs[1]
			}
		case "playlist":
		default:
			return "", fmt.Errorf("%w: %q: unknown YouTube path", ErrUnsupportedURL, raw)
		}
	default:
		return "", fmt.Errorf("%w: %q: not a YouTube host", ErrUnsupportedURL, raw)
	}
	if id == "videoseries" {
		id = ""
	}
	list := q.Get("list")

	if id != "" && !youTubeID.MatchString(id) {
		return "", fmt.Errorf("%w: %q: malformed video ID", ErrUnsupportedURL, raw)
	}
	if list != "" && !youTubeID.MatchString(list) {
		return "", fmt.Errorf("%w: %q: malformed playlist ID", ErrUnsupportedURL, raw)
	}
	if id == "" && list == "" {
		return "", fmt.Errorf("%w: %q: no video or playlist ID", ErrUnsupportedURL, raw)
	}

	start, err := startOffset(u)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedURL, raw, err)
	}

	params := url.Values{}
	if list != "" {
		params.Set("list", list)
	}
	if start > 0 {
		params.Set("start", strconv.Itoa(start))
	}
	out := youTubeEmbedBase + id
	if id == "" {
		out = youTubeEmbedBase + "videoseries"
	}
	if len(params) > 0 {
		out += "?" + params.Encode()
	}
	return out, nil
}

// startOffset reads the start offset from "start", "t" or a "#t=" fragment.
func startOffset(u *url.URL) (int, error) {
	q := u.Query()
	v := q.Get("start")
	if v == "" {
		v = q.Get("t")
	}
	if v == "" && strings.HasPrefix(u.Fragment, "t=") {
		v = strings.TrimPrefix(u.Fragment, "t=")
	}
	if v == "" {
		return 0, nil
	}
	return ParseOffset(v)
}

// ParseOffset converts "535", "535s", "8m55s" or "1h2m3s" to seconds.
func ParseOffset(s string) (int, error) {
	m := offsetPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil || s == "" {
		return 0, fmt.Errorf("invalid start offset %q", s)
	}
	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("invalid start offset %q: %w", s, err)
		}
		if err != nil || n > MaxOffset/mult {
			return 0, fmt.Errorf("start offset %q exceeds %d seconds", s, MaxOffset)
		}
		total += n * mult
	}
	if total > MaxOffset {
		return 0, fmt.Errorf("start offset %q exceeds %d seconds", s, MaxOffset)
	}
	return total, nil
}

// parseLoose parses raw, assuming https when the scheme is missing.
func parseLoose(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}
