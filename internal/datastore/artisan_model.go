package datastore

// ProductEntry is one element of an artisan's products array.
type ProductEntry struct {
	Name      string `json:"name" bson:"name"`
	Bio       string `json:"bio" bson:"bio"`
	AudioFile string `json:"audio_file" bson:"audio_file"`
}

// ArtisanProfile maps to a document in the artisans collection.
type ArtisanProfile struct {
	ArtisanID string         `json:"artisan_id" bson:"artisan_id"`
	Name      string         `json:"name" bson:"name"`
	ShopName  string         `json:"shop_name" bson:"shop_name"`
	Location  string         `json:"location" bson:"location"`
	Products  []ProductEntry `json:"products,omitempty" bson:"products,omitempty"`
}
