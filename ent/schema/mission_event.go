package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// MissionEvent records mission lifecycle events (start, end, abandon).
type MissionEvent struct {
	ent.Schema
}

func (MissionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{Logged{}}
}

func (MissionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Quiz session identity"),
		field.String("action").
			NotEmpty().
			Comment("start, end or abandon"),
		field.String("category"),
		field.String("difficulty"),
		field.Int("problem_count").
			Default(0).
			Comment("Problems loaded for the mission"),
		field.Int("answered").
			Default(0),
		field.Int("correct").
			Default(0),
		field.Int("score").
			Default(0),
		field.Int("duration_secs").
			Default(0).
			Comment("Play time (end and abandon only)"),
	}
}

func (MissionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
		index.Fields("category"),
	}
}
