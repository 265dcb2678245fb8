package domain

import "time"

// WorkItem represents a single pipeline run for one submitted URL.
type WorkItem struct {
	URL       string    `json:"url"`
	Shortcode string    `json:"shortcode"`
	Dir       string    `json:"dir"`
	CreatedAt time.Time `json:"created_at"`
}

// PostMedia is one downloadable rendition of the post's primary media.
type PostMedia struct {
	URL string `json:"url"`
}

// PostOwner holds the resolved account info for the post author.
type PostOwner struct {
	Username      string `json:"username,omitempty"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// PostMetadata is the resolver's view of one post. Title carries the
// caption text.
type PostMetadata struct {
	Medias    []PostMedia `json:"medias"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Owner     *PostOwner  `json:"owner,omitempty"`
	Title     string      `json:"title,omitempty"`
}

// MediaURL returns the first usable media URL, or "".
func (m *PostMetadata) MediaURL() string {
	if m == nil || len(m.Medias) == 0 {
		return ""
	}
	return m.Medias[0].URL
}

// MetadataEnvelope is the shape persisted to metadata.json.
type MetadataEnvelope struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Data      *PostMetadata `json:"data"`
	Timestamp string        `json:"timestamp"`
}

// TranscriptionResult is the transcription service's response payload.
type TranscriptionResult struct {
	Success             bool    `json:"success"`
	Transcript          string  `json:"transcript"`
	DetectedLanguage    string  `json:"detectedLanguage"`
	Confidence          float64 `json:"confidence"`
	DetectionTime       float64 `json:"detectionTime"`
	Model               string  `json:"model"`
	AudioDuration       float64 `json:"audioDuration"`
	TranscriptionTime   float64 `json:"transcriptionTime"`
	TotalProcessingTime float64 `json:"totalProcessingTime"`
	AudioPath           string  `json:"audioPath"`
	TranscriptPath      string  `json:"transcriptPath"`
	Error               string  `json:"error,omitempty"`
}

// TranscriptionRecord is the canonical on-disk transcription metadata
// (transcription-meta.json).
type TranscriptionRecord struct {
	Metadata          RecordMetadata    `json:"metadata"`
	LanguageDetection LanguageDetection `json:"language_detection"`
	TranscriptionInfo TranscriptionInfo `json:"transcription_info"`
	Output            RecordOutput      `json:"output"`
}

type RecordMetadata struct {
	Shortcode     string `json:"shortcode"`
	TranscribedAt string `json:"transcribed_at"`
}

type LanguageDetection struct {
	Language             string  `json:"language"`
	ConfidencePercent    float64 `json:"confidence_percent"`
	DetectionTimeSeconds float64 `json:"detection_time_seconds"`
}

type TranscriptionInfo struct {
	ModelUsed                  string  `json:"model_used"`
	Task                       string  `json:"task"`
	AudioDurationSeconds       float64 `json:"audio_duration_seconds"`
	TranscriptionTimeSeconds   float64 `json:"transcription_time_seconds"`
	TotalProcessingTimeSeconds float64 `json:"total_processing_time_seconds"`
}

type RecordOutput struct {
	Transcription string `json:"transcription"`
	Caption       string `json:"caption"`
}

// RecipeIngredient is one entry of the extracted ingredient list.
type RecipeIngredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Notes    string `json:"notes,omitempty"`
}

// RecipeInstruction is one numbered step of the extracted method.
type RecipeInstruction struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
}

// RecipeData is the structured extraction produced by the LLM service.
type RecipeData struct {
	RecipeName   string              `json:"recipe_name"`
	Servings     string              `json:"servings"`
	PrepTime     string              `json:"prep_time"`
	CookTime     string              `json:"cook_time"`
	TotalTime    string              `json:"total_time"`
	Ingredients  []RecipeIngredient  `json:"ingredients"`
	Instructions []RecipeInstruction `json:"instructions"`
	Tags         []string            `json:"tags"`
	Cuisine      string              `json:"cuisine"`
	Difficulty   string              `json:"difficulty"`
}

// StageOne groups the download/transcription outputs of a successful run.
type StageOne struct {
	VideoPath        string `json:"videoPath"`
	AudioPath        string `json:"audioPath"`
	TranscriptPath   string `json:"transcriptPath"`
	Transcript       string `json:"transcript"`
	DetectedLanguage string `json:"detectedLanguage"`
}

// PipelineResult holds the outcome of a completed pipeline run.
type PipelineResult struct {
	Shortcode   string      `json:"shortcode"`
	Stage1      StageOne    `json:"stage1"`
	Recipe      *RecipeData `json:"recipe,omitempty"`
	RecipePath  string      `json:"recipePath,omitempty"`
	CompletedAt time.Time   `json:"completedAt"`
}
