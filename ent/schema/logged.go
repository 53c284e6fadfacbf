package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// Logged adds the columns every event-log table carries. Sequence is
// shared across tables, so the log can be merged back into one timeline.
type Logged struct {
	mixin.Schema
}

func (Logged) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Positive().
			Unique().
			Immutable().
			Comment("Position in the store-wide event order, starting at 1"),
		field.Time("timestamp").
			Default(func() time.Time { return time.Now().UTC() }).
			Immutable().
			Comment("When the event was appended, UTC"),
	}
}

func (Logged) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
