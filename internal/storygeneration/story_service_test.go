package storygeneration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan-story-platform/backend/internal/coreengine/modeladapters"
	"artisan-story-platform/backend/internal/coreengine/storyextractor"
	"artisan-story-platform/backend/internal/coreengine/storypersistence"
	"artisan-story-platform/backend/internal/datastore"
)

type fakeDirectory struct {
	profile *datastore.ArtisanProfile
	err     error
}

func (f *fakeDirectory) FetchArtisanProfile(_ context.Context, _ string) (*datastore.ArtisanProfile, error) {
	return f.profile, f.err
}

type memoryDocumentSink struct {
	records map[string]*storypersistence.StoryRecord
}

func (m *memoryDocumentSink) MergeStory(_ context.Context, artisanID, productID string, record *storypersistence.StoryRecord) error {
	if m.records == nil {
		m.records = make(map[string]*storypersistence.StoryRecord)
	}
	m.records[artisanID+"/"+productID] = record
	return nil
}

type memoryBlobSink struct {
	objects map[string][]byte
}

func (m *memoryBlobSink) PutObject(_ context.Context, objectName string, data []byte, _ string) (string, error) {
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[objectName] = data
	return "https://blobs.test/" + objectName, nil
}

func newTestService(model modeladapters.GenerativeModelAdapter, directory ArtisanDirectory) (*StoryService, *memoryDocumentSink, *memoryBlobSink) {
	docs := &memoryDocumentSink{}
	blobs := &memoryBlobSink{}
	coordinator := storypersistence.NewCoordinator(docs, blobs)
	return NewStoryService(model, directory, coordinator), docs, blobs
}

func validProfile() *fakeDirectory {
	return &fakeDirectory{profile: &datastore.ArtisanProfile{
		ArtisanID: "u1",
		Name:      "Asha",
		ShopName:  "Asha Crafts",
		Location:  "Jaipur",
	}}
}

func TestGenerateStoryParsedAndPersisted(t *testing.T) {
	model := &modeladapters.MockModelAdapter{
		Response: "```json\n{\"Title\": \"Clay Pot\", \"Category\": \"Pottery\"}\n```",
	}
	service, docs, blobs := newTestService(model, validProfile())

	result, err := service.GenerateStory(context.Background(), GenerateStoryInput{
		ArtisanID:       "u1",
		ProductID:       "p1",
		AudioTranscript: "I shaped this pot from river clay.",
		ImagesBase64:    []string{"aGVsbG8="},
	})

	require.NoError(t, err)
	assert.True(t, result.Parsed)
	require.NotNil(t, result.Record.Story)
	assert.Equal(t, "Clay Pot", *result.Record.Story.Title)
	assert.Equal(t, storyextractor.CategoryRecognized, result.Record.CategoryStatus)
	assert.Nil(t, result.Record.Fallback)
	assert.Equal(t, "Asha", result.Record.Name)
	assert.NotEmpty(t, result.Record.Timestamp)

	assert.Contains(t, docs.records, "u1/p1")
	assert.Contains(t, blobs.objects, "stories/u1_p1.json")
	assert.Equal(t, "product_stories/u1/products/p1", result.References.DocumentPath)
}

func TestGenerateStoryMalformedOutputStoresFallback(t *testing.T) {
	model := &modeladapters.MockModelAdapter{Response: "Sorry, I cannot answer that."}
	service, docs, _ := newTestService(model, validProfile())

	result, err := service.GenerateStory(context.Background(), GenerateStoryInput{
		ArtisanID:       "u1",
		ProductID:       "p1",
		AudioTranscript: "transcript",
	})

	require.NoError(t, err, "malformed model output must not fail the request")
	assert.False(t, result.Parsed)
	assert.Nil(t, result.Record.Story)
	require.NotNil(t, result.Record.Fallback)
	assert.Equal(t, "Sorry, I cannot answer that.", result.Record.Fallback.RawOutput)
	assert.Equal(t, storyextractor.ReasonNoPayload, result.Record.Fallback.Reason)

	stored := docs.records["u1/p1"]
	require.NotNil(t, stored, "fallback records are persisted, not dropped")
	assert.NotNil(t, stored.Fallback)
}

func TestGenerateStoryUnrecognizedCategoryIsFlaggedNotRejected(t *testing.T) {
	model := &modeladapters.MockModelAdapter{
		Response: `{"Title": "Basket", "Category": "Basketry"}`,
	}
	service, docs, _ := newTestService(model, validProfile())

	result, err := service.GenerateStory(context.Background(), GenerateStoryInput{
		ArtisanID:       "u1",
		ProductID:       "p1",
		AudioTranscript: "transcript",
	})

	require.NoError(t, err)
	assert.Equal(t, storyextractor.CategoryUnrecognized, result.Record.CategoryStatus)
	assert.Equal(t, "Basketry", *result.Record.Story.Category)
	assert.Contains(t, docs.records, "u1/p1")
}

func TestGenerateStoryGenerationFailure(t *testing.T) {
	model := &modeladapters.MockModelAdapter{Err: errors.New("connection reset")}
	service, docs, blobs := newTestService(model, validProfile())

	result, err := service.GenerateStory(context.Background(), GenerateStoryInput{
		ArtisanID:       "u1",
		ProductID:       "p1",
		AudioTranscript: "transcript",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, result)
	assert.Empty(t, docs.records, "nothing is persisted when generation fails")
	assert.Empty(t, blobs.objects)
}

func TestGenerateStoryProfileNotFound(t *testing.T) {
	directory := &fakeDirectory{err: datastore.ErrArtisanNotFound}
	service, _, _ := newTestService(&modeladapters.MockModelAdapter{}, directory)

	_, err := service.GenerateStory(context.Background(), GenerateStoryInput{ArtisanID: "ghost"})

	assert.ErrorIs(t, err, datastore.ErrArtisanNotFound)
}

func TestGenerateStoryProfileIncomplete(t *testing.T) {
	directory := &fakeDirectory{err: datastore.ErrProfileIncomplete}
	service, docs, _ := newTestService(&modeladapters.MockModelAdapter{}, directory)

	_, err := service.GenerateStory(context.Background(), GenerateStoryInput{ArtisanID: "u1"})

	assert.ErrorIs(t, err, datastore.ErrProfileIncomplete)
	assert.Empty(t, docs.records)
}
