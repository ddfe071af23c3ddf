package storypersistence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan-story-platform/backend/internal/coreengine/storyextractor"
)

// fakeDocumentSink merges records into an in-memory map keyed the same way
// the real store is.
type fakeDocumentSink struct {
	docs    map[string]map[string]interface{}
	writes  int
	failErr error
}

func newFakeDocumentSink() *fakeDocumentSink {
	return &fakeDocumentSink{docs: make(map[string]map[string]interface{})}
}

func (f *fakeDocumentSink) MergeStory(_ context.Context, artisanID, productID string, record *StoryRecord) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.writes++
	key := artisanID + "/" + productID
	doc, ok := f.docs[key]
	if !ok {
		doc = make(map[string]interface{})
		f.docs[key] = doc
	}
	// Merge, not overwrite: fields set by other writers survive.
	doc["artisan_id"] = record.ArtisanID
	doc["product_id"] = record.ProductID
	doc["name"] = record.Name
	doc["story"] = record.Story
	doc["story_fallback"] = record.Fallback
	doc["timestamp"] = record.Timestamp
	return nil
}

type fakeBlobSink struct {
	objects map[string][]byte
	writes  int
	failErr error
}

func newFakeBlobSink() *fakeBlobSink {
	return &fakeBlobSink{objects: make(map[string][]byte)}
}

func (f *fakeBlobSink) PutObject(_ context.Context, objectName string, data []byte, _ string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	f.writes++
	f.objects[objectName] = data
	return "https://blobs.test/craft-stories/" + objectName, nil
}

func sampleRecord() *StoryRecord {
	title := "Clay Pot"
	category := "Pottery"
	return &StoryRecord{
		ArtisanID: "u1",
		ProductID: "p1",
		Name:      "Asha",
		ShopName:  "Asha Crafts",
		Location:  "Jaipur",
		Story: &storyextractor.StructuredRecord{
			Title:    &title,
			Category: &category,
		},
		CategoryStatus: storyextractor.CategoryRecognized,
		Timestamp:      NewTimestamp(time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)),
	}
}

func TestPersistWritesBothSinks(t *testing.T) {
	docs := newFakeDocumentSink()
	blobs := newFakeBlobSink()
	coordinator := NewCoordinator(docs, blobs)

	refs, err := coordinator.Persist(context.Background(), sampleRecord())

	require.NoError(t, err)
	require.NotNil(t, refs)
	assert.Equal(t, "product_stories/u1/products/p1", refs.DocumentPath)
	assert.Equal(t, "https://blobs.test/craft-stories/stories/u1_p1.json", refs.BlobURL)
	assert.Equal(t, 1, docs.writes)
	assert.Equal(t, 1, blobs.writes)
	assert.Contains(t, docs.docs, "u1/p1")
	assert.Contains(t, blobs.objects, "stories/u1_p1.json")
}

func TestPersistIdempotent(t *testing.T) {
	docs := newFakeDocumentSink()
	blobs := newFakeBlobSink()
	coordinator := NewCoordinator(docs, blobs)
	record := sampleRecord()

	first, err := coordinator.Persist(context.Background(), record)
	require.NoError(t, err)
	blobAfterFirst := append([]byte(nil), blobs.objects["stories/u1_p1.json"]...)
	docAfterFirst := docs.docs["u1/p1"]["timestamp"]

	second, err := coordinator.Persist(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, docs.docs, 1)
	assert.Len(t, blobs.objects, 1)
	assert.Equal(t, blobAfterFirst, blobs.objects["stories/u1_p1.json"], "blob must be bit-identical after a repeat write")
	assert.Equal(t, docAfterFirst, docs.docs["u1/p1"]["timestamp"])
}

func TestPersistMergePreservesUnrelatedFields(t *testing.T) {
	docs := newFakeDocumentSink()
	blobs := newFakeBlobSink()
	coordinator := NewCoordinator(docs, blobs)

	// Another writer already put an unrelated field on the document.
	docs.docs["u1/p1"] = map[string]interface{}{"featured": true}

	_, err := coordinator.Persist(context.Background(), sampleRecord())

	require.NoError(t, err)
	assert.Equal(t, true, docs.docs["u1/p1"]["featured"])
	assert.Equal(t, "u1", docs.docs["u1/p1"]["artisan_id"])
}

func TestPersistDocumentFailureSkipsBlob(t *testing.T) {
	docs := newFakeDocumentSink()
	docs.failErr = errors.New("connection refused")
	blobs := newFakeBlobSink()
	coordinator := NewCoordinator(docs, blobs)

	refs, err := coordinator.Persist(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.Nil(t, refs)
	assert.Equal(t, 0, blobs.writes, "blob write must not be attempted after a document failure")

	var sinkErr *SinkWriteError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, SinkDocumentStore, sinkErr.Sink)
}

func TestPersistBlobFailureReportsDurableDocument(t *testing.T) {
	docs := newFakeDocumentSink()
	blobs := newFakeBlobSink()
	blobs.failErr = errors.New("bucket unavailable")
	coordinator := NewCoordinator(docs, blobs)

	refs, err := coordinator.Persist(context.Background(), sampleRecord())

	require.Error(t, err)
	var sinkErr *SinkWriteError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, SinkBlobStore, sinkErr.Sink)

	// The caller must be able to see the record survived in the document
	// store and can retry just the archive.
	require.NotNil(t, refs)
	assert.Equal(t, "product_stories/u1/products/p1", refs.DocumentPath)
	assert.Empty(t, refs.BlobURL)
	assert.Equal(t, 1, docs.writes)
}

func TestPersistRejectsMissingArtisanID(t *testing.T) {
	coordinator := NewCoordinator(newFakeDocumentSink(), newFakeBlobSink())
	record := sampleRecord()
	record.ArtisanID = ""

	refs, err := coordinator.Persist(context.Background(), record)

	require.Error(t, err)
	assert.Nil(t, refs)
}

func TestStorageLocationsDeterministic(t *testing.T) {
	assert.Equal(t, DocumentPath("u1", "p1"), DocumentPath("u1", "p1"))
	assert.Equal(t, ObjectName("u1", "p1"), ObjectName("u1", "p1"))
	assert.Equal(t, "stories/u1_p1.json", ObjectName("u1", "p1"))
}

func TestObjectNameWithoutProductIDIsTimestampSuffixed(t *testing.T) {
	name := ObjectName("u1", "")

	assert.True(t, strings.HasPrefix(name, "stories/u1_"))
	assert.True(t, strings.HasSuffix(name, ".json"))
	assert.NotEqual(t, "stories/u1_.json", name)
}
