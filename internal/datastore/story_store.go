package datastore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"artisan-story-platform/backend/internal/coreengine/storypersistence"
)

// StoryDocumentStore adapts the product_stories collection to the
// persistence coordinator's DocumentSink interface.
type StoryDocumentStore struct {
	stories *mongo.Collection
}

// StoryDocuments returns the DocumentSink backed by this store.
func (s *MongoStore) StoryDocuments() *StoryDocumentStore {
	return &StoryDocumentStore{stories: s.productStories}
}

// buildStoryUpdate flattens the record into a $set document plus a $unset
// clearing the story variant the record does not carry. The omitempty tags
// on Story/Fallback keep the nil variant out of $set, so without the $unset
// a regenerated story would merge alongside a previously stored fallback
// (or the reverse) instead of replacing it.
func buildStoryUpdate(record *storypersistence.StoryRecord) (bson.M, error) {
	data, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal story record: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to flatten story record: %w", err)
	}
	delete(fields, "_id")

	absent := "story_fallback"
	if record.Story == nil {
		absent = "story"
	}
	return bson.M{"$set": fields, "$unset": bson.M{absent: ""}}, nil
}

// MergeStory upserts the story record at the document identified by
// (artisanID, productID). $set merges into the existing document, so fields
// written by other operations on the same document are preserved; the story
// and fallback variants are the exception and always replace each other.
func (d *StoryDocumentStore) MergeStory(ctx context.Context, artisanID, productID string, record *storypersistence.StoryRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update, err := buildStoryUpdate(record)
	if err != nil {
		return err
	}
	filter := bson.M{"artisan_id": artisanID, "product_id": productID}

	_, err = d.stories.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert story for artisan '%s', product '%s': %w", artisanID, productID, err)
	}
	return nil
}

// GetStory retrieves a persisted story record, or nil when none exists.
func (d *StoryDocumentStore) GetStory(ctx context.Context, artisanID, productID string) (*storypersistence.StoryRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record storypersistence.StoryRecord
	err := d.stories.FindOne(ctx, bson.M{"artisan_id": artisanID, "product_id": productID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch story for artisan '%s', product '%s': %w", artisanID, productID, err)
	}
	return &record, nil
}
