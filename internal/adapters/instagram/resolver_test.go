package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostIDFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"reel", "https://www.instagram.com/reel/DTQpr8DjlkU/", "DTQpr8DjlkU", false},
		{"post", "https://www.instagram.com/p/Abc_12-xyz/", "Abc_12-xyz", false},
		{"tv", "https://www.instagram.com/tv/Xyz789/", "Xyz789", false},
		{"profile url", "https://www.instagram.com/somecook/", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostIDFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Disabled(t *testing.T) {
	r := NewResolver(false)
	_, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/DTQpr8DjlkU/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func graphqlResponse(videoURL string) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"xdt_shortcode_media": map[string]any{
				"video_url":   videoURL,
				"display_url": "https://cdn.example.com/thumb.jpg",
				"owner": map[string]any{
					"username":        "somecook",
					"profile_pic_url": "https://cdn.example.com/profile.jpg",
				},
				"edge_media_to_caption": map[string]any{
					"edges": []map[string]any{
						{"node": map[string]any{"text": "Easy pasta #recipe"}},
					},
				},
			},
		},
	}
}

func TestResolve_Success(t *testing.T) {
	var gotDocID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotDocID = r.PostFormValue("doc_id")
		_ = json.NewEncoder(w).Encode(graphqlResponse("https://cdn.example.com/video.mp4"))
	}))
	defer srv.Close()

	r := NewResolver(true)
	r.baseURL = srv.URL

	meta, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/DTQpr8DjlkU/")
	require.NoError(t, err)

	assert.Equal(t, postQueryDocID, gotDocID)
	assert.Equal(t, "https://cdn.example.com/video.mp4", meta.MediaURL())
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", meta.Thumbnail)
	require.NotNil(t, meta.Owner)
	assert.Equal(t, "https://cdn.example.com/profile.jpg", meta.Owner.ProfilePicURL)
	assert.Equal(t, "Easy pasta #recipe", meta.Title)
}

func TestResolve_NoVideoURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(graphqlResponse(""))
	}))
	defer srv.Close()

	r := NewResolver(true)
	r.baseURL = srv.URL

	meta, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/DTQpr8DjlkU/")
	require.NoError(t, err)
	assert.Empty(t, meta.MediaURL(), "image posts resolve without a media url")
}

func TestResolve_PostNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer srv.Close()

	r := NewResolver(true)
	r.baseURL = srv.URL

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/DTQpr8DjlkU/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolve_InvalidURL(t *testing.T) {
	r := NewResolver(true)
	_, err := r.Resolve(context.Background(), "https://www.instagram.com/somecook/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid post URL")
}
