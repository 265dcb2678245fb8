package localstorage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"reelpipe/internal/core/domain"
)

// Artifact filenames within a work item directory.
const (
	MetadataFile      = "metadata.json"
	VideoFile         = "video.mp4"
	ThumbnailFile     = "thumbnail.jpg"
	ProfilePicFile    = "profile.jpg"
	TranscriptionFile = "transcription-meta.json"
	RecipeFile        = "recipe.json"
)

// LocalStorage implements ports.Storage on the local filesystem. Every
// artifact of a work item lives under <BaseDir>/<shortcode>; all writes
// overwrite in place.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

// InitItem creates the work item directory, idempotently.
func (s *LocalStorage) InitItem(ctx context.Context, shortcode string) error {
	path := s.ItemPath(shortcode)
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create item directory %s: %w", path, err)
	}
	return nil
}

// SaveMetadata writes the resolved metadata envelope to metadata.json.
func (s *LocalStorage) SaveMetadata(ctx context.Context, shortcode string, env *domain.MetadataEnvelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	path := filepath.Join(s.ItemPath(shortcode), MetadataFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", MetadataFile, err)
	}
	return nil
}

// SaveAsset streams raw bytes into the named file.
func (s *LocalStorage) SaveAsset(ctx context.Context, shortcode, filename string, reader io.Reader) error {
	path := filepath.Join(s.ItemPath(shortcode), filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// SaveTranscription writes the transcription record.
func (s *LocalStorage) SaveTranscription(ctx context.Context, shortcode string, rec *domain.TranscriptionRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcription record: %w", err)
	}
	path := filepath.Join(s.ItemPath(shortcode), TranscriptionFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", TranscriptionFile, err)
	}
	return nil
}

// ReadTranscription reads back a previously written record.
func (s *LocalStorage) ReadTranscription(ctx context.Context, shortcode string) (*domain.TranscriptionRecord, error) {
	path := filepath.Join(s.ItemPath(shortcode), TranscriptionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TranscriptionFile, err)
	}
	var rec domain.TranscriptionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", TranscriptionFile, err)
	}
	return &rec, nil
}

// SaveRecipe writes recipe.json and returns its path.
func (s *LocalStorage) SaveRecipe(ctx context.Context, shortcode string, recipe *domain.RecipeData) (string, error) {
	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode recipe: %w", err)
	}
	path := filepath.Join(s.ItemPath(shortcode), RecipeFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", RecipeFile, err)
	}
	return path, nil
}

// ItemPath returns the path of the work item directory.
func (s *LocalStorage) ItemPath(shortcode string) string {
	return filepath.Join(s.BaseDir, shortcode)
}
