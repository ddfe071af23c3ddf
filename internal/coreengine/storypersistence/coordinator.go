package storypersistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// Sink names used in SinkWriteError so callers can tell which store is
// inconsistent after a partial failure.
const (
	SinkDocumentStore = "document_store"
	SinkBlobStore     = "blob_store"
)

// storyObjectPrefix is the folder all archived story objects live under.
const storyObjectPrefix = "stories/"

// SinkWriteError reports a failed write to one of the two backing stores.
type SinkWriteError struct {
	Sink string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("write to %s failed: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// DocumentSink is the keyed document store the coordinator writes to.
// MergeStory must upsert with merge semantics at the location identified by
// (artisanID, productID): unrelated fields already present on the document
// survive the write.
type DocumentSink interface {
	MergeStory(ctx context.Context, artisanID, productID string, record *StoryRecord) error
}

// BlobSink is the object store the coordinator archives full records into.
// PutObject overwrites any prior object at objectName and returns a
// retrievable reference URL.
type BlobSink interface {
	PutObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// StorageReferences carries the locations a persisted record can be read
// back from.
type StorageReferences struct {
	DocumentPath string `json:"document_path"`
	BlobURL      string `json:"blob_url"`
}

// Coordinator durably stores StoryRecords in a document store and a blob
// store. Both sinks are injected at construction so tests can substitute
// in-memory fakes; the coordinator never reaches for global clients.
type Coordinator struct {
	documents DocumentSink
	blobs     BlobSink
}

// NewCoordinator creates a Coordinator writing to the given sinks.
func NewCoordinator(documents DocumentSink, blobs BlobSink) *Coordinator {
	return &Coordinator{documents: documents, blobs: blobs}
}

// DocumentPath returns the deterministic document-store location for an
// (artisan, product) pair. Callers never construct storage paths themselves;
// this is exposed for reference reporting only.
func DocumentPath(artisanID, productID string) string {
	return fmt.Sprintf("product_stories/%s/products/%s", artisanID, productID)
}

// ObjectName returns the deterministic blob object name for an
// (artisan, product) pair. When no product id is available the name is
// timestamp-suffixed instead, trading idempotence for uniqueness.
func ObjectName(artisanID, productID string) string {
	if productID == "" {
		return fmt.Sprintf("%s%s_%s.json", storyObjectPrefix, artisanID, time.Now().UTC().Format("20060102T150405Z"))
	}
	return fmt.Sprintf("%s%s_%s.json", storyObjectPrefix, artisanID, productID)
}

// Persist writes the record to both stores and reports success only when
// both writes are confirmed.
//
// The document write runs first; if it fails the blob write is not attempted
// and the returned references are empty. If the document write succeeds and
// the blob write fails, the references carry the document path so the caller
// knows the record is durable in the document store but missing its archival
// copy, and the error identifies the blob sink. Both sink writes are
// attempted exactly once: merge and overwrite semantics make a repeat call
// with the same record and identities converge on the same end state, so
// retrying after a partial failure is safe and is the caller's decision.
func (c *Coordinator) Persist(ctx context.Context, record *StoryRecord) (*StorageReferences, error) {
	if record == nil {
		return nil, errors.New("record must not be nil")
	}
	if record.ArtisanID == "" {
		return nil, errors.New("record is missing the artisan id")
	}

	docPath := DocumentPath(record.ArtisanID, record.ProductID)
	objectName := ObjectName(record.ArtisanID, record.ProductID)

	if err := c.documents.MergeStory(ctx, record.ArtisanID, record.ProductID, record); err != nil {
		return nil, &SinkWriteError{Sink: SinkDocumentStore, Err: err}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		// Document write already landed; report the blob side as the
		// inconsistent one so the caller can retry just the archive.
		return &StorageReferences{DocumentPath: docPath},
			&SinkWriteError{Sink: SinkBlobStore, Err: fmt.Errorf("failed to serialize record: %w", err)}
	}

	blobURL, err := c.blobs.PutObject(ctx, objectName, data, "application/json")
	if err != nil {
		return &StorageReferences{DocumentPath: docPath},
			&SinkWriteError{Sink: SinkBlobStore, Err: err}
	}

	log.Printf("Story persisted for artisan '%s', product '%s' (document: %s, blob: %s)",
		record.ArtisanID, record.ProductID, docPath, objectName)

	return &StorageReferences{DocumentPath: docPath, BlobURL: blobURL}, nil
}
