package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot holds the folded progress state (points, badges, counters) as
// of a sequence number. Loading starts from the newest snapshot and
// replays only later events.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			NonNegative().
			Comment("Last event sequence folded into data"),
		field.Time("timestamp").
			Default(func() time.Time { return time.Now().UTC() }),
		field.JSON("data", json.RawMessage{}).
			Comment("Versioned progress document"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("sequence"),
	}
}
