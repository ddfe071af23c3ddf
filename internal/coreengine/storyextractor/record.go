package storyextractor

// WhoMadeIt describes the artisan behind a product, as reported by the model.
type WhoMadeIt struct {
	Name     *string `json:"Name,omitempty" bson:"name,omitempty"`
	Location *string `json:"Location,omitempty" bson:"location,omitempty"`
	ShopName *string `json:"ShopName,omitempty" bson:"shop_name,omitempty"`
}

// StructuredRecord is the canonical output of a successful extraction.
// All fields are optional because the origin is an untrusted external model;
// a nil field means the model did not provide the key, which is distinct
// from an explicit empty string.
type StructuredRecord struct {
	Title                *string    `json:"Title,omitempty" bson:"title,omitempty"`
	Category             *string    `json:"Category,omitempty" bson:"category,omitempty"`
	Tagline              *string    `json:"Tagline,omitempty" bson:"tagline,omitempty"`
	ForWhom              *string    `json:"ForWhom,omitempty" bson:"for_whom,omitempty"`
	Material             *string    `json:"Material,omitempty" bson:"material,omitempty"`
	Method               *string    `json:"Method,omitempty" bson:"method,omitempty"`
	CulturalSignificance *string    `json:"CulturalSignificance,omitempty" bson:"cultural_significance,omitempty"`
	WhoMadeIt            *WhoMadeIt `json:"WhoMadeIt,omitempty" bson:"who_made_it,omitempty"`

	// Extra retains keys the model emitted that we do not recognize.
	// Information from the model is never silently dropped.
	Extra map[string]interface{} `json:"Extra,omitempty" bson:"extra,omitempty"`
}

// MalformedPayload carries the unusable model output for diagnosis.
type MalformedPayload struct {
	RawOutput string `json:"raw_output" bson:"raw_output"`
	Reason    string `json:"error" bson:"error"`
}

// Reasons reported in MalformedPayload.Reason.
const (
	ReasonNoPayload      = "no structured payload found"
	ReasonInvalidPayload = "payload present but invalid"
)

// OutcomeKind tags the variant of an ExtractionOutcome.
type OutcomeKind int

const (
	OutcomeParsed OutcomeKind = iota
	OutcomeMalformed
)

// ExtractionOutcome is a tagged union: exactly one of Record or Fallback is
// set, selected by Kind. Callers must switch on Kind rather than probe for
// field presence.
type ExtractionOutcome struct {
	Kind     OutcomeKind
	Record   *StructuredRecord
	Fallback *MalformedPayload
}

// IsParsed reports whether the outcome carries a structured record.
func (o ExtractionOutcome) IsParsed() bool {
	return o.Kind == OutcomeParsed
}
