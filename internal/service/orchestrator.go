package service

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"reelpipe/internal/core/domain"
	"reelpipe/internal/core/ports"
	"reelpipe/internal/inflight"
	"reelpipe/internal/logger"
)

// Substitution values used when the transcription service omits
// diagnostic fields. Carried over from the previous implementation;
// unconfirmed whether they are meaningful.
const (
	defaultConfidencePercent = 99.8
	defaultDetectionTime     = 0.25
	defaultModel             = "tiny"
)

// Orchestrator coordinates the pipeline for one submitted URL: resolve
// metadata, materialize the work directory, download media and side
// assets, transcribe, and best-effort extract a structured recipe.
type Orchestrator struct {
	resolver    ports.Resolver
	downloader  ports.Downloader
	transcriber ports.Transcriber
	extractor   ports.RecipeExtractor
	storage     ports.Storage
	inflight    *inflight.Cache
	log         *logger.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	resolver ports.Resolver,
	downloader ports.Downloader,
	transcriber ports.Transcriber,
	extractor ports.RecipeExtractor,
	storage ports.Storage,
	cache *inflight.Cache,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		resolver:    resolver,
		downloader:  downloader,
		transcriber: transcriber,
		extractor:   extractor,
		storage:     storage,
		inflight:    cache,
		log:         log,
	}
}

// Run executes the complete pipeline for the given URL.
//
// Fatal stages abort the run with a typed error; best-effort stages
// (thumbnail, profile picture, transcription record write, recipe
// extraction) log and continue. The in-flight entry is removed on every
// exit path.
func (o *Orchestrator) Run(ctx context.Context, rawURL string) (*domain.PipelineResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.NewError(domain.KindValidation, "missing required field: url")
	}

	if !o.inflight.TryAdd(rawURL) {
		return nil, domain.NewError(domain.KindDuplicate, "request already being processed")
	}
	defer o.inflight.Remove(rawURL)

	log := o.log.WithField("url", rawURL)
	log.Info("pipeline started")

	meta, err := o.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return nil, domain.WrapError(domain.KindResolution, err, "failed to resolve post metadata")
	}
	mediaURL := meta.MediaURL()
	if mediaURL == "" {
		return nil, domain.NewError(domain.KindResolution, "no video URL found in metadata")
	}

	shortcode := Shortcode(rawURL)
	log = log.WithField("shortcode", shortcode)

	if err := o.storage.InitItem(ctx, shortcode); err != nil {
		return nil, domain.WrapError(domain.KindDirectory, err, "cannot create work directory for %s", shortcode)
	}

	envelope := &domain.MetadataEnvelope{
		Success:   true,
		Message:   "success",
		Data:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := o.storage.SaveMetadata(ctx, shortcode, envelope); err != nil {
		return nil, domain.WrapError(domain.KindDirectory, err, "failed to persist metadata")
	}
	log.Info("saved metadata")

	// Side assets are independent and idempotent; both must finish
	// before the primary media download starts.
	var wg sync.WaitGroup
	if meta.Thumbnail != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.fetchAsset(ctx, log, shortcode, meta.Thumbnail, "thumbnail.jpg")
		}()
	}
	if meta.Owner != nil && meta.Owner.ProfilePicURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.fetchAsset(ctx, log, shortcode, meta.Owner.ProfilePicURL, "profile.jpg")
		}()
	}
	wg.Wait()

	log.Info("downloading video")
	body, err := o.downloader.Download(ctx, mediaURL)
	if err != nil {
		return nil, domain.WrapError(domain.KindDownload, err, "failed to download video")
	}
	saveErr := o.storage.SaveAsset(ctx, shortcode, "video.mp4", body)
	body.Close()
	if saveErr != nil {
		return nil, domain.WrapError(domain.KindDownload, saveErr, "failed to save video")
	}
	videoPath := filepath.Join(o.storage.ItemPath(shortcode), "video.mp4")

	caption := meta.Title

	log.Info("starting transcription")
	tr, err := o.transcriber.Transcribe(ctx, shortcode, caption)
	if err != nil {
		return nil, domain.WrapError(domain.KindTranscription, err, "failed to transcribe video")
	}

	rec := buildRecord(shortcode, caption, tr)
	if err := o.storage.SaveTranscription(ctx, shortcode, rec); err != nil {
		// the transcript is already in memory, the run can still succeed
		log.WithError(err).Warn("failed to persist transcription record")
	}

	result := &domain.PipelineResult{
		Shortcode: shortcode,
		Stage1: domain.StageOne{
			VideoPath:        videoPath,
			AudioPath:        tr.AudioPath,
			TranscriptPath:   tr.TranscriptPath,
			Transcript:       tr.Transcript,
			DetectedLanguage: tr.DetectedLanguage,
		},
		CompletedAt: time.Now().UTC(),
	}

	log.Info("starting recipe extraction")
	recipe, recipePath, err := o.extractRecipe(ctx, shortcode)
	if err != nil {
		log.WithError(err).Warn("recipe extraction failed, continuing without recipe")
	} else {
		result.Recipe = recipe
		result.RecipePath = recipePath
	}

	log.Info("pipeline completed")
	return result, nil
}

// fetchAsset downloads one best-effort side asset. Failures are logged
// and skipped.
func (o *Orchestrator) fetchAsset(ctx context.Context, log *logrus.Entry, shortcode, assetURL, filename string) {
	body, err := o.downloader.Download(ctx, assetURL)
	if err != nil {
		log.WithError(err).WithField("asset", filename).Warn("asset download failed, skipping")
		return
	}
	defer body.Close()

	if err := o.storage.SaveAsset(ctx, shortcode, filename, body); err != nil {
		log.WithError(err).WithField("asset", filename).Warn("asset save failed, skipping")
		return
	}
	log.WithField("asset", filename).Info("saved asset")
}

// extractRecipe reads the just-written transcription record back from
// disk, runs LLM extraction on it, and persists the result.
func (o *Orchestrator) extractRecipe(ctx context.Context, shortcode string) (*domain.RecipeData, string, error) {
	rec, err := o.storage.ReadTranscription(ctx, shortcode)
	if err != nil {
		return nil, "", err
	}

	recipe, err := o.extractor.Extract(ctx, rec)
	if err != nil {
		return nil, "", err
	}

	path, err := o.storage.SaveRecipe(ctx, shortcode, recipe)
	if err != nil {
		return nil, "", err
	}
	return recipe, path, nil
}

// buildRecord maps the service response onto the on-disk record,
// substituting documented defaults for omitted diagnostics.
func buildRecord(shortcode, caption string, tr *domain.TranscriptionResult) *domain.TranscriptionRecord {
	language := tr.DetectedLanguage
	if language == "" {
		language = "en"
	}
	confidence := defaultConfidencePercent
	if tr.Confidence > 0 {
		confidence = round1(tr.Confidence * 100)
	}
	detectionTime := defaultDetectionTime
	if tr.DetectionTime > 0 {
		detectionTime = round2(tr.DetectionTime)
	}
	model := tr.Model
	if model == "" {
		model = defaultModel
	}
	if caption == "" {
		caption = "No caption available"
	}

	return &domain.TranscriptionRecord{
		Metadata: domain.RecordMetadata{
			Shortcode:     shortcode,
			TranscribedAt: time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		},
		LanguageDetection: domain.LanguageDetection{
			Language:             language,
			ConfidencePercent:    confidence,
			DetectionTimeSeconds: detectionTime,
		},
		TranscriptionInfo: domain.TranscriptionInfo{
			ModelUsed:                  model,
			Task:                       "transcribe",
			AudioDurationSeconds:       round2(tr.AudioDuration),
			TranscriptionTimeSeconds:   round2(tr.TranscriptionTime),
			TotalProcessingTimeSeconds: round2(tr.TotalProcessingTime),
		},
		Output: domain.RecordOutput{
			Transcription: tr.Transcript,
			Caption:       caption,
		},
	}
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round2(x float64) float64 { return math.Round(x*100) / 100 }
