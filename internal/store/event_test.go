package store

import (
	"context"
	"testing"
	"time"
)

func TestLLMEventsQueryAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"problem-gen", "explanation", "speech"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			InputTokens:  10 * (i + 1),
			OutputTokens: 5,
			LatencyMs:    100,
			Success:      i != 2,
			ErrorMessage: map[bool]string{true: "", false: "boom"}[i != 2],
			RequestBody:  "req",
			ResponseBody: "resp",
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Purpose != "speech" {
		t.Errorf("newest purpose = %q, want speech", events[0].Purpose)
	}
	if events[0].Success {
		t.Error("speech event should be a failure")
	}
	if events[0].ErrorMessage != "boom" {
		t.Errorf("error message = %q, want boom", events[0].ErrorMessage)
	}
	if events[2].Sequence >= events[0].Sequence {
		t.Errorf("sequences not descending: %d then %d", events[2].Sequence, events[0].Sequence)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d events", len(limited))
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Purpose != "speech" {
		t.Errorf("after filter returned %+v", after)
	}

	speech, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "speech", Limit: 5})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(speech) != 1 || speech[0].Purpose != "speech" {
		t.Errorf("purpose filter returned %+v", speech)
	}

	failed, err := repo.QueryLLMEvents(ctx, QueryOpts{FailedOnly: true, Limit: 1})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Success || failed[0].Purpose != "speech" {
		t.Errorf("failed filter returned %+v", failed)
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Purpose != "explanation" || got.RequestBody != "req" {
		t.Errorf("get returned %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMEventsFailedOnlyBeforeLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "gemini", Model: "m", Purpose: "problem-gen", Success: false, ErrorMessage: "rate limited"},
		{Provider: "gemini", Model: "m", Purpose: "speech", Success: false, ErrorMessage: "down"},
		{Provider: "gemini", Model: "m", Purpose: "problem-gen", Success: true},
		{Provider: "gemini", Model: "m", Purpose: "explanation", Success: true},
		{Provider: "gemini", Model: "m", Purpose: "problem-gen", Success: true},
	}
	for _, r := range rows {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	failed, err := repo.QueryLLMEvents(ctx, QueryOpts{FailedOnly: true, Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("got %d failures, want 2", len(failed))
	}
	if failed[0].ErrorMessage != "down" || failed[1].ErrorMessage != "rate limited" {
		t.Errorf("failures = %+v", failed)
	}

	gen, err := repo.QueryLLMEvents(ctx, QueryOpts{FailedOnly: true, Purpose: "problem-gen"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(gen) != 1 || gen[0].Success {
		t.Errorf("failed problem-gen = %+v", gen)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "problem-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "problem-gen", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash-preview-tts", Purpose: "speech", InputTokens: 20, OutputTokens: 0, LatencyMs: 900, Success: true},
	}
	for _, r := range rows {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	gen := byPurpose[0]
	if gen.Purpose != "problem-gen" || gen.Calls != 2 || gen.InputTokens != 400 || gen.OutputTokens != 200 {
		t.Errorf("problem-gen usage = %+v", gen)
	}
	if gen.AvgLatencyMs != 300 {
		t.Errorf("avg latency = %d, want 300", gen.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
	if byModel[0].Model != "gemini-2.5-flash-preview-tts" || byModel[0].Calls != 1 {
		t.Errorf("first model usage = %+v", byModel[0])
	}
}

func TestMissionAndAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	start := MissionEventData{SessionID: "s1", Action: MissionStart, Category: "Addition", Difficulty: "Easy", ProblemCount: 2}
	if err := repo.AppendMissionEvent(ctx, start); err != nil {
		t.Fatalf("append start: %v", err)
	}

	answers := []AnswerEventData{
		{SessionID: "s1", ProblemID: "p1", Category: "Addition", Difficulty: "Easy", Question: "2 + 3 = ?", CorrectAnswer: "5", GivenAnswer: "5", Correct: true, Points: 10},
		{SessionID: "s1", ProblemID: "p2", Category: "Addition", Difficulty: "Easy", Question: "4 + 4 = ?", CorrectAnswer: "8", GivenAnswer: "9", Correct: false},
		{SessionID: "s2", ProblemID: "g1", Category: "Geometry", Difficulty: "Easy", Question: "Sides of a triangle?", CorrectAnswer: "3", GivenAnswer: "3", Correct: true, Points: 10},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}

	end := start
	end.Action = MissionEnd
	end.Answered, end.Correct, end.Score = 2, 1, 10
	if err := repo.AppendMissionEvent(ctx, end); err != nil {
		t.Fatalf("append end: %v", err)
	}

	missions, err := repo.QueryMissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query missions: %v", err)
	}
	if len(missions) != 1 {
		t.Fatalf("got %d finished missions, want 1", len(missions))
	}
	if m := missions[0]; m.SessionID != "s1" || m.Score != 10 || m.Correct != 1 || m.Answered != 2 {
		t.Errorf("mission = %+v", m)
	}

	got, err := repo.QueryAnswers(ctx, "s1")
	if err != nil {
		t.Fatalf("query answers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d answers, want 2", len(got))
	}
	if got[0].ProblemID != "p1" || !got[0].Correct || got[1].GivenAnswer != "9" || got[1].Correct {
		t.Errorf("answers = %+v", got)
	}

	stats, err := repo.CategoryStats(ctx)
	if err != nil {
		t.Fatalf("category stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d categories, want 2", len(stats))
	}
	add := stats[0]
	if add.Category != "Addition" || add.Answered != 2 || add.Correct != 1 || add.Points != 10 {
		t.Errorf("addition stats = %+v", add)
	}
	if add.Accuracy() != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", add.Accuracy())
	}
}

func TestAppendMissionEventRejectsUnknownAction(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendMissionEvent(context.Background(), MissionEventData{SessionID: "s1", Action: "pause"})
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if n := countRows(t, s, missionEventsTable); n != 0 {
		t.Errorf("rows = %d, want 0", n)
	}
}

func TestAskEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAskEvent(ctx, AskEventData{Question: "What is 7 + 5?", Answer: "12!", LatencyMs: 80}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendAskEvent(ctx, AskEventData{Question: "Why?", Answer: "Oops", Fallback: true}); err != nil {
		t.Fatalf("append: %v", err)
	}

	asks, err := repo.QueryAskEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(asks) != 2 {
		t.Fatalf("got %d asks, want 2", len(asks))
	}
	if !asks[0].Fallback || asks[1].Answer != "12!" {
		t.Errorf("asks = %+v", asks)
	}
}

func TestQueryOptsTimeRange(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Minute)
	if err := repo.AppendAskEvent(ctx, AskEventData{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	inRange, err := repo.QueryAskEvents(ctx, QueryOpts{From: before})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(inRange) != 1 {
		t.Errorf("from filter returned %d, want 1", len(inRange))
	}

	none, err := repo.QueryAskEvents(ctx, QueryOpts{To: before})
	if err != nil {
		t.Fatalf("query to: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("to filter returned %d, want 0", len(none))
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAskEvent(ctx, AskEventData{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("append ask: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "explanation", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}

	last, err := repo.LastSequence(ctx)
	if err != nil {
		t.Fatalf("last sequence: %v", err)
	}
	if last != 2 {
		t.Errorf("last sequence = %d, want 2", last)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Sequence != 2 {
		t.Errorf("llm event sequence = %+v, want 2", events)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAskEvent(ctx, AskEventData{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 1, Data: SnapshotData{Version: SnapshotVersion}}); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, table := range Tables {
		if n := countRows(t, s, table.Name); n != 0 {
			t.Errorf("%s has %d rows after reset", table.Name, n)
		}
	}
	last, err := repo.LastSequence(ctx)
	if err != nil {
		t.Fatalf("last sequence: %v", err)
	}
	if last != 0 {
		t.Errorf("sequence after reset = %d, want 0", last)
	}
}
