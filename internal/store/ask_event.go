package store

import (
	"context"
	"fmt"
)

var askEventColumns = []string{
	"id", "sequence", "timestamp", "question", "answer", "fallback", "latency_ms",
}

func (r *eventRepo) AppendAskEvent(ctx context.Context, data AskEventData) error {
	err := r.insert(ctx, askEventsTable, askEventColumns[3:],
		data.Question,
		data.Answer,
		data.Fallback,
		data.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("save ask event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAskEvents(ctx context.Context, opts QueryOpts) ([]AskRecord, error) {
	b := builder()
	query, args := opts.apply(b.Select(askEventColumns...).From(b.Table(askEventsTable))).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ask events: %w", err)
	}
	defer rows.Close()

	var asks []AskRecord
	for rows.Next() {
		var a AskRecord
		if err := rows.Scan(&a.ID, &a.Sequence, &a.Timestamp, &a.Question, &a.Answer, &a.Fallback, &a.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan ask event: %w", err)
		}
		asks = append(asks, a)
	}
	return asks, rows.Err()
}
