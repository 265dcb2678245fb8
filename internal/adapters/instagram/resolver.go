package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"reelpipe/internal/core/domain"
)

const (
	graphqlURL = "https://www.instagram.com/api/graphql"
	// Web client doc id for the shortcode media query.
	postQueryDocID = "8845758582119845"
	webAppID       = "936619743392459"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
)

// Post pages carry the identifier under /p/, /reel/ or /tv/.
var postIDPattern = regexp.MustCompile(`/(?:reel|p|tv)/([A-Za-z0-9_-]+)`)

// PostIDFromURL derives the post identifier from a post page URL.
func PostIDFromURL(postURL string) (string, error) {
	m := postIDPattern.FindStringSubmatch(postURL)
	if m == nil {
		return "", fmt.Errorf("invalid post URL: %s", postURL)
	}
	return m[1], nil
}

// Resolver implements ports.Resolver against the Instagram web GraphQL
// endpoint.
type Resolver struct {
	enabled bool
	baseURL string
	client  *http.Client
}

// NewResolver creates a new Resolver. When enabled is false every
// Resolve call fails without a network round trip.
func NewResolver(enabled bool) *Resolver {
	return &Resolver{
		enabled: enabled,
		baseURL: graphqlURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Resolve retrieves metadata for the given post page URL.
func (r *Resolver) Resolve(ctx context.Context, postURL string) (*domain.PostMetadata, error) {
	if !r.enabled {
		return nil, fmt.Errorf("metadata resolver disabled by configuration")
	}

	postID, err := PostIDFromURL(postURL)
	if err != nil {
		return nil, err
	}

	variables, _ := json.Marshal(map[string]string{"shortcode": postID})
	form := url.Values{}
	form.Set("doc_id", postQueryDocID)
	form.Set("variables", string(variables))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", webAppID)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata request failed: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			ShortcodeMedia *struct {
				VideoURL   string `json:"video_url"`
				DisplayURL string `json:"display_url"`
				Owner      struct {
					Username      string `json:"username"`
					ProfilePicURL string `json:"profile_pic_url"`
				} `json:"owner"`
				EdgeMediaToCaption struct {
					Edges []struct {
						Node struct {
							Text string `json:"text"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"edge_media_to_caption"`
			} `json:"xdt_shortcode_media"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}

	media := out.Data.ShortcodeMedia
	if media == nil {
		return nil, fmt.Errorf("post not found: %s", postID)
	}

	meta := &domain.PostMetadata{
		Thumbnail: media.DisplayURL,
		Owner: &domain.PostOwner{
			Username:      media.Owner.Username,
			ProfilePicURL: media.Owner.ProfilePicURL,
		},
	}
	if media.VideoURL != "" {
		meta.Medias = []domain.PostMedia{{URL: media.VideoURL}}
	}
	if len(media.EdgeMediaToCaption.Edges) > 0 {
		meta.Title = media.EdgeMediaToCaption.Edges[0].Node.Text
	}
	return meta, nil
}
