package problemgen

import "github.com/abhisek/mathspace/internal/llm"

// BatchSchema defines the JSON schema for a batch of generated problems.
// Responses are validated against the envelope only; entries are checked
// one by one by quiz.ValidateBatch so a single bad entry does not discard
// the batch.
var BatchSchema = &llm.Schema{
	Name:        "problem-batch",
	Description: "A batch of multiple-choice math problems for children",
	Envelope:    batchEnvelope,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type":        "array",
				"description": "The requested problems, in the order they should be asked",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Short identifier, unique within the batch",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the child, in plain text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer options",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied character for character from options",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A short explanation of why the answer is correct",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A hint for a child who is stuck, without giving the answer away",
						},
					},
					"required":             []any{"id", "question", "options", "correctAnswer", "explanation", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}

// batchEnvelope accepts {"problems": [...]} or a bare array of entries.
var batchEnvelope = map[string]any{
	"oneOf": []any{
		map[string]any{
			"type":     "object",
			"required": []any{"problems"},
			"properties": map[string]any{
				"problems": map[string]any{"type": "array"},
			},
		},
		map[string]any{"type": "array"},
	},
}
