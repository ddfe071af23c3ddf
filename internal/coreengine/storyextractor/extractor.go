package storyextractor

import (
	"encoding/json"
	"regexp"
	"strings"
)

// codeFencePattern matches markdown code fences with an optional language tag
// in any letter-case (```json, ```JSON, ``` ...). Models wrap their JSON in
// these inconsistently, so stripping must tolerate zero, one or many fences.
var codeFencePattern = regexp.MustCompile("(?i)```[a-z]*")

// Extract converts a raw model response into an ExtractionOutcome.
//
// It strips code-fence markers, takes the span from the first '{' to the
// last '}' as the JSON candidate, and attempts a strict parse. The greedy
// outermost-brace span is intentional: models routinely surround a single
// top-level object with commentary, and nested objects (such as WhoMadeIt)
// must not terminate the span early. If the model emits two sibling
// top-level objects the span covers both and the parse fails; that is a
// known limitation of the heuristic, reported as a Malformed outcome.
//
// Extract is a pure function of its input. It never returns an error: a
// response without a usable payload degrades to a Malformed outcome that
// preserves the complete original text, never just the candidate span.
func Extract(rawText string) ExtractionOutcome {
	cleaned := codeFencePattern.ReplaceAllString(rawText, "")

	start := strings.Index(cleaned, "{")
	if start == -1 {
		return ExtractionOutcome{
			Kind:     OutcomeMalformed,
			Fallback: &MalformedPayload{RawOutput: rawText, Reason: ReasonNoPayload},
		}
	}

	// An opening brace without a closing one is a started-but-unterminated
	// payload (typically a truncated response), not a missing payload.
	end := strings.LastIndex(cleaned, "}")
	if end < start {
		return ExtractionOutcome{
			Kind:     OutcomeMalformed,
			Fallback: &MalformedPayload{RawOutput: rawText, Reason: ReasonInvalidPayload},
		}
	}

	candidate := cleaned[start : end+1]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return ExtractionOutcome{
			Kind:     OutcomeMalformed,
			Fallback: &MalformedPayload{RawOutput: rawText, Reason: ReasonInvalidPayload},
		}
	}

	return ExtractionOutcome{Kind: OutcomeParsed, Record: coerceRecord(fields)}
}

// coerceRecord maps parsed JSON fields onto a StructuredRecord. Recognized
// keys whose values do not have the expected shape are kept under Extra
// instead of being discarded.
func coerceRecord(fields map[string]json.RawMessage) *StructuredRecord {
	record := &StructuredRecord{}

	for key, raw := range fields {
		switch key {
		case "Title":
			assignString(raw, &record.Title, record, key)
		case "Category":
			assignString(raw, &record.Category, record, key)
		case "Tagline":
			assignString(raw, &record.Tagline, record, key)
		case "ForWhom":
			assignString(raw, &record.ForWhom, record, key)
		case "Material":
			assignString(raw, &record.Material, record, key)
		case "Method":
			assignString(raw, &record.Method, record, key)
		case "CulturalSignificance":
			assignString(raw, &record.CulturalSignificance, record, key)
		case "WhoMadeIt":
			var who WhoMadeIt
			if err := json.Unmarshal(raw, &who); err != nil {
				record.putExtra(key, raw)
				continue
			}
			record.WhoMadeIt = &who
		default:
			record.putExtra(key, raw)
		}
	}

	return record
}

func assignString(raw json.RawMessage, dst **string, record *StructuredRecord, key string) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		record.putExtra(key, raw)
		return
	}
	*dst = &s
}

func (r *StructuredRecord) putExtra(key string, raw json.RawMessage) {
	if r.Extra == nil {
		r.Extra = make(map[string]interface{})
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		// Unreachable for members of an already-parsed object, but keep the
		// raw bytes rather than lose the key.
		value = string(raw)
	}
	r.Extra[key] = value
}
