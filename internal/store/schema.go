package store

import (
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	llmRequestEventsTable = "llm_request_events"
	missionEventsTable    = "mission_events"
	answerEventsTable     = "answer_events"
	askEventsTable        = "ask_events"
	snapshotsTable        = "snapshots"
)

const textSize = 2147483647

// eventColumns returns the id, sequence and timestamp columns every event
// table starts with, followed by cols.
func eventColumns(cols ...*entschema.Column) []*entschema.Column {
	base := []*entschema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, cols...)
}

// eventTable builds a table with the standard primary key and a timestamp
// index, plus an index on each named column. The unique sequence column is
// indexed by its constraint.
func eventTable(name string, cols []*entschema.Column, indexed ...string) *entschema.Table {
	t := &entschema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*entschema.Column{cols[0]},
	}
	for _, colName := range append([]string{"timestamp"}, indexed...) {
		for _, c := range cols {
			if c.Name == colName {
				t.Indexes = append(t.Indexes, &entschema.Index{
					Name:    name + "_" + colName,
					Columns: []*entschema.Column{c},
				})
			}
		}
	}
	return t
}

var (
	llmRequestEventsColumns = eventColumns(
		&entschema.Column{Name: "provider", Type: field.TypeString},
		&entschema.Column{Name: "model", Type: field.TypeString},
		&entschema.Column{Name: "purpose", Type: field.TypeString},
		&entschema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&entschema.Column{Name: "success", Type: field.TypeBool},
		&entschema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&entschema.Column{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		&entschema.Column{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	)
	// LLMRequestEventsTable records every provider call.
	LLMRequestEventsTable = eventTable(llmRequestEventsTable, llmRequestEventsColumns, "provider", "purpose", "success")

	missionEventsColumns = eventColumns(
		&entschema.Column{Name: "session_id", Type: field.TypeString},
		&entschema.Column{Name: "action", Type: field.TypeString},
		&entschema.Column{Name: "category", Type: field.TypeString},
		&entschema.Column{Name: "difficulty", Type: field.TypeString},
		&entschema.Column{Name: "problem_count", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "answered", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "correct", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	// MissionEventsTable records mission start and end.
	MissionEventsTable = eventTable(missionEventsTable, missionEventsColumns, "session_id", "action", "category")

	answerEventsColumns = eventColumns(
		&entschema.Column{Name: "session_id", Type: field.TypeString},
		&entschema.Column{Name: "problem_id", Type: field.TypeString},
		&entschema.Column{Name: "category", Type: field.TypeString},
		&entschema.Column{Name: "difficulty", Type: field.TypeString},
		&entschema.Column{Name: "question", Type: field.TypeString, Size: textSize},
		&entschema.Column{Name: "correct_answer", Type: field.TypeString},
		&entschema.Column{Name: "given_answer", Type: field.TypeString},
		&entschema.Column{Name: "correct", Type: field.TypeBool},
		&entschema.Column{Name: "points", Type: field.TypeInt, Default: 0},
		&entschema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)
	// AnswerEventsTable records each submitted answer.
	AnswerEventsTable = eventTable(answerEventsTable, answerEventsColumns, "session_id", "category", "correct")

	askEventsColumns = eventColumns(
		&entschema.Column{Name: "question", Type: field.TypeString, Size: textSize},
		&entschema.Column{Name: "answer", Type: field.TypeString, Size: textSize},
		&entschema.Column{Name: "fallback", Type: field.TypeBool, Default: false},
		&entschema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
	)
	// AskEventsTable records questions put to Professor Robot.
	AskEventsTable = eventTable(askEventsTable, askEventsColumns)

	snapshotsColumns = []*entschema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds periodic captures of player progress.
	SnapshotsTable = eventTable(snapshotsTable, snapshotsColumns, "sequence")

	// Tables lists every table managed by migration.
	Tables = []*entschema.Table{
		LLMRequestEventsTable,
		MissionEventsTable,
		AnswerEventsTable,
		AskEventsTable,
		SnapshotsTable,
	}
)
