package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// AskEvent records a question put to Professor Robot and the reply.
type AskEvent struct {
	ent.Schema
}

func (AskEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{Logged{}}
}

func (AskEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Text("question"),
		field.Text("answer"),
		field.Bool("fallback").
			Default(false).
			Comment("The reply is a canned fallback message"),
		field.Int64("latency_ms").
			Default(0),
	}
}
