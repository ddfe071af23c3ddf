package storypersistence

import (
	"time"

	"artisan-story-platform/backend/internal/coreengine/storyextractor"
)

// StoryRecord is the persisted unit: the extraction result enriched with the
// requester's identity and profile context. (ArtisanID, ProductID) is the
// logical primary key; the coordinator derives both storage locations from it.
// Records are composed once and never mutated after being handed to Persist.
type StoryRecord struct {
	ArtisanID string `json:"user_id" bson:"artisan_id"`
	ProductID string `json:"product_id" bson:"product_id"`

	Name     string `json:"name" bson:"name"`
	ShopName string `json:"shop_name" bson:"shop_name"`
	Location string `json:"location" bson:"location"`

	// Exactly one of Story or Fallback is set, mirroring the extraction
	// outcome the record was built from.
	Story    *storyextractor.StructuredRecord `json:"story,omitempty" bson:"story,omitempty"`
	Fallback *storyextractor.MalformedPayload `json:"story_fallback,omitempty" bson:"story_fallback,omitempty"`

	// CategoryStatus reflects validation against the closed category set.
	// An unrecognized category flags the record, it never rejects it.
	CategoryStatus storyextractor.CategoryStatus `json:"category_status" bson:"category_status"`

	Timestamp string `json:"timestamp" bson:"timestamp"`
}

// NewTimestamp returns the creation timestamp format used across the
// platform: UTC, ISO-8601.
func NewTimestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
