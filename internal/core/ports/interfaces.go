package ports

import (
	"context"
	"io"

	"reelpipe/internal/core/domain"
)

// Resolver defines the contract for fetching post metadata from the
// resolution service.
type Resolver interface {
	// Resolve retrieves metadata for the given post page URL. The post
	// identifier is derived from the URL; an underivable identifier is an
	// error.
	Resolve(ctx context.Context, postURL string) (*domain.PostMetadata, error)
}

// Downloader defines the contract for fetching media bytes.
type Downloader interface {
	// Download fetches the resource at the given URL.
	// Returns a ReadCloser that the caller must close. A non-2xx status
	// is an error.
	Download(ctx context.Context, mediaURL string) (io.ReadCloser, error)
}

// Transcriber defines the contract for the transcription service.
type Transcriber interface {
	// Transcribe submits the work item's video for transcription. The
	// adapter owns retry on transport errors; a completed-but-unsuccessful
	// response is returned as an error without retry.
	Transcribe(ctx context.Context, shortcode, caption string) (*domain.TranscriptionResult, error)
}

// RecipeExtractor defines the contract for structured recipe extraction
// from a transcription record.
type RecipeExtractor interface {
	Extract(ctx context.Context, rec *domain.TranscriptionRecord) (*domain.RecipeData, error)
}

// Storage defines the contract for persisting work item artifacts.
type Storage interface {
	// InitItem creates the work item directory, idempotently.
	InitItem(ctx context.Context, shortcode string) error

	// SaveMetadata writes the resolved metadata envelope to metadata.json.
	SaveMetadata(ctx context.Context, shortcode string, env *domain.MetadataEnvelope) error

	// SaveAsset streams raw bytes into the named file under the item
	// directory, overwriting any previous content.
	SaveAsset(ctx context.Context, shortcode, filename string, reader io.Reader) error

	// SaveTranscription writes the transcription record.
	SaveTranscription(ctx context.Context, shortcode string, rec *domain.TranscriptionRecord) error

	// ReadTranscription reads back a previously written record.
	ReadTranscription(ctx context.Context, shortcode string) (*domain.TranscriptionRecord, error)

	// SaveRecipe writes recipe.json and returns its path.
	SaveRecipe(ctx context.Context, shortcode string, recipe *domain.RecipeData) (string, error)

	// ItemPath returns the filesystem path of the item directory.
	ItemPath(shortcode string) string
}
