package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose restricts LLM events to one purpose label.
	Purpose string

	// FailedOnly restricts LLM events to unsuccessful calls.
	FailedOnly bool
}

// apply adds the filters and pagination in opts to sel and orders the
// results newest first.
func (opts QueryOpts) apply(sel *entsql.Selector) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage for one request purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Mission actions.
const (
	MissionStart   = "start"
	MissionEnd     = "end"
	MissionAbandon = "abandon"
)

// MissionEventData records a mission starting or ending.
type MissionEventData struct {
	SessionID    string
	Action       string // MissionStart, MissionEnd or MissionAbandon
	Category     string
	Difficulty   string
	ProblemCount int
	Answered     int
	Correct      int
	Score        int
	DurationSecs int
}

// MissionRecord is a stored mission event.
type MissionRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	MissionEventData
}

// AnswerEventData records one submitted answer.
type AnswerEventData struct {
	SessionID     string
	ProblemID     string
	Category      string
	Difficulty    string
	Question      string
	CorrectAnswer string
	GivenAnswer   string
	Correct       bool
	Points        int
	TimeMs        int64
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// CategoryStats aggregates answers for one category.
type CategoryStats struct {
	Category string
	Answered int
	Correct  int
	Points   int
}

// Accuracy returns the fraction answered correctly, or 0 with no answers.
func (c CategoryStats) Accuracy() float64 {
	if c.Answered == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Answered)
}

// AskEventData records a question put to the tutor.
type AskEventData struct {
	Question  string
	Answer    string
	Fallback  bool
	LatencyMs int64
}

// AskRecord is a stored tutor question.
type AskRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AskEventData
}

// LLMEventRepo records and queries provider calls.
type LLMEventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// MissionRepo records and queries missions and the answers given in them.
type MissionRepo interface {
	AppendMissionEvent(ctx context.Context, data MissionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryMissions returns finished missions (MissionEnd events) newest first.
	QueryMissions(ctx context.Context, opts QueryOpts) ([]MissionRecord, error)

	// QueryAnswers returns the answers for a mission in submission order.
	QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// CategoryStats aggregates all answers per category.
	CategoryStats(ctx context.Context) ([]CategoryStats, error)
}

// AskRepo records and queries tutor questions.
type AskRepo interface {
	AppendAskEvent(ctx context.Context, data AskEventData) error
	QueryAskEvents(ctx context.Context, opts QueryOpts) ([]AskRecord, error)
}

// EventRepo provides append and query access to all domain events.
type EventRepo interface {
	LLMEventRepo
	MissionRepo
	AskRepo

	// LastSequence returns the highest sequence number assigned so far.
	LastSequence(ctx context.Context) (int64, error)
}
