package storyextractor

// Categories form the closed set a product may be classified into. The model
// is prompted with exactly these values.
var Categories = []string{
	"Pottery",
	"Painting",
	"Food",
	"Fabric and Clothing",
	"Glass Artefact",
	"Sculptures",
}

// CategoryStatus reports the validation result for a record's Category field.
type CategoryStatus string

const (
	CategoryRecognized   CategoryStatus = "recognized"
	CategoryUnrecognized CategoryStatus = "unrecognized"
	CategoryAbsent       CategoryStatus = "absent"
)

// ValidateCategory checks a record's Category against the closed set.
// An out-of-set or absent category is a flagged condition, never a hard
// failure: the record still flows downstream with its status surfaced.
func ValidateCategory(record *StructuredRecord) CategoryStatus {
	if record == nil || record.Category == nil {
		return CategoryAbsent
	}
	for _, c := range Categories {
		if *record.Category == c {
			return CategoryRecognized
		}
	}
	return CategoryUnrecognized
}
