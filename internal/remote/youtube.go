// Package remote holds the thin network glue around external video hosts:
// URL recognition, title lookup and preview download. No state machine
// lives here; failures fall back to caller-supplied defaults.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

// ErrPreviewNotFound reports that no hosted preview exists for a video.
var ErrPreviewNotFound = errors.New("remote: preview not found")

var (
	watchPattern = regexp.MustCompile(`(?i)v=([A-Za-z0-9_\-]{11})`)
	pathPattern  = regexp.MustCompile(`/([A-Za-z0-9_\-]{11})`)
	shortPattern = regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_\-]{11})`)
)

// Youtube talks to the public youtube endpoints. The base URLs are
// overridable for tests.
type Youtube struct {
	HTTP     *http.Client
	InfoBase string
	ImgBase  string
}

func NewYoutube() *Youtube {
	return &Youtube{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		InfoBase: "http://youtube.com",
		ImgBase:  "https://i.ytimg.com",
	}
}

// ParseVideoID recognizes the three supported link shapes: watch URLs with
// a v= query, /shorts/ links, and short youtu.be links.
func ParseVideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err == nil && u.RawQuery != "" {
		if m := watchPattern.FindStringSubmatch(u.RawQuery); m != nil {
			return m[1], nil
		}
	}
	if strings.Contains(rawURL, "/shorts/") {
		if m := pathPattern.FindStringSubmatch(rawURL[strings.Index(rawURL, "/shorts/")+7:]); m != nil {
			return m[1], nil
		}
	}
	if m := shortPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("remote: unrecognized video URL %q", rawURL)
}

// VideoTitle fetches the video title, returning def on any failure: the
// endpoint answers with a form-encoded body whose player_response field is a
// JSON document carrying videoDetails.title.
func (y *Youtube) VideoTitle(ctx context.Context, videoID, def string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/get_video_info?video_id=%s", y.InfoBase, url.QueryEscape(videoID)), nil)
	if err != nil {
		return def
	}

	resp, err := y.HTTP.Do(req)
	if err != nil {
		return def
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil || resp.StatusCode != http.StatusOK {
		return def
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return def
	}
	player := values.Get("player_response")
	if player == "" {
		return def
	}

	var pr struct {
		VideoDetails struct {
			Title string `json:"title"`
		} `json:"videoDetails"`
	}
	if err := json.Unmarshal([]byte(player), &pr); err != nil || pr.VideoDetails.Title == "" {
		return def
	}
	return pr.VideoDetails.Title
}

// DownloadPreview saves the hosted preview of videoID into target, trying
// the high-quality image first and the medium one on 404. Returns
// ErrPreviewNotFound when neither exists.
func (y *Youtube) DownloadPreview(ctx context.Context, videoID, target string) error {
	for _, variant := range []string{"hqdefault", "mqdefault"} {
		src := fmt.Sprintf("%s/vi/%s/%s.jpg", y.ImgBase, videoID, variant)
		err := y.fetchFile(ctx, src, target)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrPreviewNotFound) {
			return err
		}
	}
	return fmt.Errorf("%w: video %s", ErrPreviewNotFound, videoID)
}

func (y *Youtube) fetchFile(ctx context.Context, src, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return err
	}
	resp, err := y.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrPreviewNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote: fetch %s: status %d", src, resp.StatusCode)
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return err
	}
	return f.Close()
}
