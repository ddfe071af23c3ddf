package datastore

import "time"

// TranscriptionLog maps to a document in the transcriptions collection.
// One entry is written per transcription request for auditing.
type TranscriptionLog struct {
	ArtisanName string    `json:"artisan_name" bson:"artisan_name"`
	ProductName string    `json:"product_name" bson:"product_name"`
	Text        string    `json:"text" bson:"text"`
	AudioURL    string    `json:"audio_url" bson:"audio_url"`
	Lang        string    `json:"lang" bson:"lang"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}
