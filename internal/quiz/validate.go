package quiz

import (
	"errors"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

const entrySchemaURL = "mathspace://problem-entry.json"

// entrySchemaJSON is the shape every entry must have. Whether the answer
// is among the options and whether ids repeat are checked in Go.
const entrySchemaJSON = `{
	"type": "object",
	"required": ["id", "question", "options", "correctAnswer", "explanation", "hint"],
	"properties": {
		"id":            {"type": "string", "minLength": 1},
		"question":      {"type": "string", "minLength": 1},
		"options":       {"type": "array", "minItems": 1, "items": {"type": "string"}},
		"correctAnswer": {"type": "string", "minLength": 1},
		"explanation":   {"type": "string"},
		"hint":          {"type": "string"}
	}
}`

var entrySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(entrySchemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(entrySchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(entrySchemaURL)
})

// ValidateBatch converts raw source entries into problems. Each entry is
// checked on its own; a bad entry is reported as a Rejection and the rest
// of the batch is kept in order.
func ValidateBatch(raw []RawProblem) ([]Problem, []Rejection) {
	var (
		valid    []Problem
		rejected []Rejection
		seen     = make(map[string]bool, len(raw))
	)

	schema, serr := entrySchema()
	for i, r := range raw {
		id := deref(r.ID)
		var reason string
		if serr != nil {
			reason = "entry schema: " + serr.Error()
		} else {
			reason = checkEntry(schema, r)
		}
		if reason != "" {
			rejected = append(rejected, Rejection{Index: i, ID: id, Reason: reason})
			continue
		}
		if seen[id] {
			rejected = append(rejected, Rejection{Index: i, ID: id, Reason: "duplicate id"})
			continue
		}
		seen[id] = true

		valid = append(valid, Problem{
			ID:            id,
			Question:      *r.Question,
			Options:       append([]string(nil), r.Options...),
			CorrectAnswer: *r.CorrectAnswer,
			Explanation:   *r.Explanation,
			Hint:          *r.Hint,
		})
	}
	return valid, rejected
}

// checkEntry returns the reason an entry is unusable, or "" if it is fine.
func checkEntry(schema *jsonschema.Schema, r RawProblem) string {
	if err := schema.Validate(entryValue(r)); err != nil {
		return schemaReason(err)
	}

	matches := 0
	for _, opt := range r.Options {
		if opt == *r.CorrectAnswer {
			matches++
		}
	}
	switch matches {
	case 0:
		return "correctAnswer is not one of the options"
	case 1:
		return ""
	default:
		return "correctAnswer matches more than one option"
	}
}

// entryValue is the JSON instance for r. Nil fields are left out so they
// count as missing rather than null.
func entryValue(r RawProblem) map[string]any {
	v := make(map[string]any, 6)
	put := func(key string, s *string) {
		if s != nil {
			v[key] = *s
		}
	}
	put("id", r.ID)
	put("question", r.Question)
	put("correctAnswer", r.CorrectAnswer)
	put("explanation", r.Explanation)
	put("hint", r.Hint)
	if r.Options != nil {
		opts := make([]any, len(r.Options))
		for i, o := range r.Options {
			opts[i] = o
		}
		v["options"] = opts
	}
	return v
}

// schemaReason turns the first failing keyword into a short reason.
func schemaReason(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	field := strings.Join(verr.InstanceLocation, "/")

	switch k := verr.ErrorKind.(type) {
	case *kind.Required:
		if len(k.Missing) > 0 {
			return "missing " + k.Missing[0]
		}
	case *kind.MinLength:
		return "empty " + field
	case *kind.MinItems:
		return "no " + field
	case *kind.Type:
		return field + " must be " + strings.Join(k.Want, " or ")
	}
	return verr.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
