package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrArtisanNotFound is returned when no profile exists for the artisan id.
var ErrArtisanNotFound = errors.New("artisan not found")

// ErrProfileIncomplete is returned when a profile exists but is missing one
// of the required fields (name, shop name, location). Callers surface this
// as a precondition failure; fields are never silently defaulted.
var ErrProfileIncomplete = errors.New("artisan profile is missing required fields")

// FetchArtisanProfile retrieves an artisan profile and verifies the fields
// story generation depends on are all present.
func (s *MongoStore) FetchArtisanProfile(ctx context.Context, artisanID string) (*ArtisanProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile ArtisanProfile
	err := s.artisans.FindOne(ctx, bson.M{"artisan_id": artisanID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("artisan '%s': %w", artisanID, ErrArtisanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artisan '%s': %w", artisanID, err)
	}

	if profile.Name == "" || profile.ShopName == "" || profile.Location == "" {
		return nil, fmt.Errorf("artisan '%s': %w", artisanID, ErrProfileIncomplete)
	}

	return &profile, nil
}

// AppendProduct upserts the artisan document and appends the product entry
// to its products array. $addToSet gives array-union semantics: replaying
// the same entry does not duplicate it.
func (s *MongoStore) AppendProduct(ctx context.Context, artisanID string, entry ProductEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"artisan_id": artisanID}
	update := bson.M{
		"$set":      bson.M{"artisan_id": artisanID},
		"$addToSet": bson.M{"products": entry},
	}

	_, err := s.artisans.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to append product for artisan '%s': %w", artisanID, err)
	}
	return nil
}
