package localstorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelpipe/internal/core/domain"
)

func TestInitItemIsIdempotent(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	require.NoError(t, s.InitItem(context.Background(), "abc123"))
	require.NoError(t, s.InitItem(context.Background(), "abc123"), "re-creating an existing directory must not fail")

	info, err := os.Stat(s.ItemPath("abc123"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveAssetOverwrites(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, s.InitItem(context.Background(), "abc123"))

	require.NoError(t, s.SaveAsset(context.Background(), "abc123", VideoFile, strings.NewReader("first")))
	require.NoError(t, s.SaveAsset(context.Background(), "abc123", VideoFile, strings.NewReader("second")))

	data, err := os.ReadFile(filepath.Join(s.ItemPath("abc123"), VideoFile))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSideAssetsShareTheItemDirectory(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, s.InitItem(context.Background(), "abc123"))

	require.NoError(t, s.SaveAsset(context.Background(), "abc123", ThumbnailFile, strings.NewReader("thumb")))
	require.NoError(t, s.SaveAsset(context.Background(), "abc123", ProfilePicFile, strings.NewReader("pic")))

	for _, name := range []string{ThumbnailFile, ProfilePicFile} {
		_, err := os.Stat(filepath.Join(s.ItemPath("abc123"), name))
		assert.NoError(t, err, name)
	}
}

func TestSaveMetadataWritesEnvelope(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, s.InitItem(context.Background(), "abc123"))

	env := &domain.MetadataEnvelope{
		Success: true,
		Message: "success",
		Data: &domain.PostMetadata{
			Medias: []domain.PostMedia{{URL: "https://cdn.example.com/v.mp4"}},
			Title:  "caption text",
		},
		Timestamp: "2026-08-29T10:00:00Z",
	}
	require.NoError(t, s.SaveMetadata(context.Background(), "abc123", env))

	data, err := os.ReadFile(filepath.Join(s.ItemPath("abc123"), MetadataFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"success": true`)
	assert.Contains(t, string(data), "caption text")
}

func TestTranscriptionRoundTrip(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, s.InitItem(context.Background(), "abc123"))

	written := &domain.TranscriptionRecord{
		Metadata: domain.RecordMetadata{Shortcode: "abc123", TranscribedAt: "2026-08-29 10:00:00 UTC"},
		LanguageDetection: domain.LanguageDetection{
			Language:             "en",
			ConfidencePercent:    99.8,
			DetectionTimeSeconds: 0.25,
		},
		TranscriptionInfo: domain.TranscriptionInfo{
			ModelUsed:            "tiny",
			Task:                 "transcribe",
			AudioDurationSeconds: 45.3,
		},
		Output: domain.RecordOutput{
			Transcription: "add two cups of flour",
			Caption:       "grandma's bread #baking",
		},
	}
	require.NoError(t, s.SaveTranscription(context.Background(), "abc123", written))

	read, err := s.ReadTranscription(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, written.Output.Transcription, read.Output.Transcription)
	assert.Equal(t, written.Output.Caption, read.Output.Caption)
	assert.Equal(t, written, read)
}

func TestReadTranscriptionMissing(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.ReadTranscription(context.Background(), "nope")
	assert.Error(t, err)
}

func TestSaveRecipeReturnsPath(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, s.InitItem(context.Background(), "abc123"))

	recipe := &domain.RecipeData{
		RecipeName:  "Bread",
		Ingredients: []domain.RecipeIngredient{{Item: "flour", Quantity: "2", Unit: "cups"}},
	}
	path, err := s.SaveRecipe(context.Background(), "abc123", recipe)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.ItemPath("abc123"), RecipeFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recipe_name": "Bread"`)
}
