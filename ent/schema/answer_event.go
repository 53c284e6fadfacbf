package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answer within a mission.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{Logged{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to MissionEvent"),
		field.String("problem_id"),
		field.String("category"),
		field.String("difficulty"),
		field.Text("question"),
		field.String("correct_answer"),
		field.String("given_answer").
			Comment("The option the player picked"),
		field.Bool("correct"),
		field.Int("points").
			Default(0),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds from showing the problem to answering"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("category"),
		index.Fields("correct"),
	}
}
