package storygeneration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"artisan-story-platform/backend/internal/coreengine/modeladapters"
	"artisan-story-platform/backend/internal/coreengine/storyextractor"
	"artisan-story-platform/backend/internal/coreengine/storypersistence"
	"artisan-story-platform/backend/internal/datastore"
)

// ErrGenerationFailed wraps transport/status failures from the generative
// model so callers can distinguish them from malformed-but-successful output
// (which never fails the request). Generation failures are retryable by the
// caller; this service does not retry.
var ErrGenerationFailed = errors.New("story generation failed")

const systemPrompt = "You are an expert cultural product storyteller. Your task is to visually analyze " +
	"product images and combine that with an artisan's description to generate a compelling story. " +
	"The final output must be a single, clean JSON object."

const userPromptTemplate = `Analyze the artisan's description and product images to generate a structured story.
Artisan's Spoken Description: "%s"
Artisan's Details: - Name: %s, - Shop Name: %s, - Location: %s
Classify the product into one of these categories: Pottery, Painting, Food, Fabric and Clothing, Glass Artefact, Sculptures.
Then, generate a JSON object with keys: "Title", "Category", "Tagline", "ForWhom", "Material", "Method", "CulturalSignificance", "WhoMadeIt".
The story must be inspired by the visuals in the images.`

// ArtisanDirectory is the profile lookup the service depends on.
type ArtisanDirectory interface {
	FetchArtisanProfile(ctx context.Context, artisanID string) (*datastore.ArtisanProfile, error)
}

// GenerateStoryInput carries one story generation request.
type GenerateStoryInput struct {
	ArtisanID       string
	ProductID       string
	AudioTranscript string
	ImagesBase64    []string
}

// GenerateStoryResult is what the service hands back to the transport layer.
type GenerateStoryResult struct {
	Record     *storypersistence.StoryRecord
	References *storypersistence.StorageReferences
	// Parsed is false when the model's output was malformed and the stored
	// record is a fallback carrying the raw text.
	Parsed bool
}

// StoryService orchestrates profile lookup, generation, extraction and
// persistence for one submission. All collaborators are injected.
type StoryService struct {
	model       modeladapters.GenerativeModelAdapter
	artisans    ArtisanDirectory
	coordinator *storypersistence.Coordinator
}

// NewStoryService creates a StoryService with its collaborators.
func NewStoryService(model modeladapters.GenerativeModelAdapter, artisans ArtisanDirectory, coordinator *storypersistence.Coordinator) *StoryService {
	return &StoryService{model: model, artisans: artisans, coordinator: coordinator}
}

// GenerateStory runs the full pipeline for one submission.
//
// A malformed model response is not a failure: the submission degrades to a
// persisted fallback record preserving the raw output, so nothing is lost.
// Failures before persistence (missing or incomplete profile, generation
// transport errors) abort the request; persistence failures are returned
// with per-sink detail from the coordinator.
func (s *StoryService) GenerateStory(ctx context.Context, input GenerateStoryInput) (*GenerateStoryResult, error) {
	profile, err := s.artisans.FetchArtisanProfile(ctx, input.ArtisanID)
	if err != nil {
		return nil, err
	}

	parts := make([]modeladapters.PromptPart, 0, len(input.ImagesBase64)+1)
	parts = append(parts, modeladapters.PromptPart{
		Text: fmt.Sprintf(userPromptTemplate, input.AudioTranscript, profile.Name, profile.ShopName, profile.Location),
	})
	for _, img := range input.ImagesBase64 {
		parts = append(parts, modeladapters.PromptPart{ImageBase64: img})
	}

	rawText, err := s.model.Generate(ctx, systemPrompt, parts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	outcome := storyextractor.Extract(rawText)

	record := &storypersistence.StoryRecord{
		ArtisanID: input.ArtisanID,
		ProductID: input.ProductID,
		Name:      profile.Name,
		ShopName:  profile.ShopName,
		Location:  profile.Location,
		Timestamp: storypersistence.NewTimestamp(time.Now()),
	}

	switch outcome.Kind {
	case storyextractor.OutcomeParsed:
		record.Story = outcome.Record
		record.CategoryStatus = storyextractor.ValidateCategory(outcome.Record)
		if record.CategoryStatus != storyextractor.CategoryRecognized {
			log.Printf("Category validation flagged story for artisan '%s', product '%s': %s",
				input.ArtisanID, input.ProductID, record.CategoryStatus)
		}
	case storyextractor.OutcomeMalformed:
		log.Printf("Model output malformed for artisan '%s', product '%s' (%s). Storing fallback record.",
			input.ArtisanID, input.ProductID, outcome.Fallback.Reason)
		record.Fallback = outcome.Fallback
		record.CategoryStatus = storyextractor.CategoryAbsent
	}

	refs, err := s.coordinator.Persist(ctx, record)
	if err != nil {
		// refs may still carry the document path after a blob-side failure;
		// pass both up so the transport layer can report which store is
		// inconsistent.
		return &GenerateStoryResult{Record: record, References: refs, Parsed: outcome.IsParsed()}, err
	}

	return &GenerateStoryResult{Record: record, References: refs, Parsed: outcome.IsParsed()}, nil
}
