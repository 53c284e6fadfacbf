package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mathspace/internal/audio"
	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/tutor"
)

// MaxCount caps the problems per mission.
const MaxCount = 20

type problemView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Hint     string   `json:"hint"`
}

type badgeView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earnedAt"`
}

// missionView is a mission as sent to clients. The correct answer and
// explanation only appear in Feedback, after the answer is submitted.
type missionView struct {
	SessionID      string          `json:"sessionId"`
	Category       quiz.Category   `json:"category"`
	Difficulty     quiz.Difficulty `json:"difficulty"`
	Status         string          `json:"status"`
	Error          string          `json:"error,omitempty"`
	ProblemCount   int             `json:"problemCount"`
	CurrentIndex   int             `json:"currentIndex"`
	Current        *problemView    `json:"current,omitempty"`
	SelectedAnswer *string         `json:"selectedAnswer"`
	Corrected      bool            `json:"corrected"`
	Feedback       *quiz.Feedback  `json:"feedback,omitempty"`
	Score          int             `json:"score"`
	Correct        int             `json:"correct"`
	Finished       bool            `json:"finished"`
	Badges         []badgeView     `json:"badges,omitempty"`
}

func viewOf(m *mission) missionView {
	st := m.session.Snapshot()
	v := missionView{
		SessionID:      st.SessionID,
		Category:       st.Category,
		Difficulty:     st.Difficulty,
		Status:         st.Status,
		Error:          st.Error,
		ProblemCount:   st.ProblemCount,
		CurrentIndex:   st.CurrentIndex,
		SelectedAnswer: st.SelectedAnswer,
		Corrected:      st.Corrected,
		Feedback:       st.Feedback,
		Score:          st.Score,
		Correct:        st.Correct,
		Finished:       st.Finished,
		Badges:         badgeViews(m.badges),
	}
	if p := st.Current; p != nil {
		v.Current = &problemView{ID: p.ID, Question: p.Question, Options: p.Options, Hint: p.Hint}
	}
	return v
}

func badgeViews(badges []progress.Badge) []badgeView {
	if len(badges) == 0 {
		return nil
	}
	out := make([]badgeView, len(badges))
	for i, b := range badges {
		out[i] = badgeView{ID: string(b.ID), Name: b.Name, EarnedAt: b.EarnedAt}
	}
	return out
}

func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":   quiz.Categories,
		"difficulties": quiz.Difficulties,
		"defaultCount": s.opts.Quiz.Count,
	})
}

func (s *Server) createMission(c *gin.Context) {
	var req struct {
		Category   string `json:"category" binding:"required"`
		Difficulty string `json:"difficulty"`
		Count      int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	category, err := quiz.ParseCategory(req.Category)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	difficulty := s.opts.Quiz.Difficulty
	if req.Difficulty != "" {
		if difficulty, err = quiz.ParseDifficulty(req.Difficulty); err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	count := req.Count
	if count <= 0 {
		count = s.opts.Quiz.Count
	}
	if count > MaxCount {
		errorJSON(c, http.StatusBadRequest, "count must be at most "+strconv.Itoa(MaxCount))
		return
	}

	ctx := c.Request.Context()
	now := time.Now()
	m := &mission{
		session: quiz.Load(ctx, s.opts.Source, category, difficulty, count),
		started: now,
		shown:   now,
	}
	s.put(m)
	s.metrics.missions.WithLabelValues(string(category), m.session.Status().String()).Inc()
	if m.session.Status() == quiz.StatusPlaying {
		s.opts.Journal.Start(ctx, m.session)
	}

	c.JSON(http.StatusCreated, viewOf(m))
}

func (s *Server) getMission(c *gin.Context) {
	m, ok := s.get(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "mission not found")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c.JSON(http.StatusOK, viewOf(m))
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req struct {
		Answer *string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	m, ok := s.get(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "mission not found")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, _ := m.session.Current()
	fb, ok := m.session.SubmitAnswer(*req.Answer)
	if !ok {
		errorJSON(c, http.StatusConflict, "answer not accepted in state "+m.session.Status().String())
		return
	}
	s.metrics.answers.WithLabelValues(string(m.session.Category()), strconv.FormatBool(fb.Correct)).Inc()
	s.opts.Journal.Answer(c.Request.Context(), m.session, p, fb, time.Since(m.shown))

	c.JSON(http.StatusOK, viewOf(m))
}

func (s *Server) advance(c *gin.Context) {
	m, ok := s.get(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "mission not found")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Advance() {
		errorJSON(c, http.StatusConflict, "submit an answer before advancing")
		return
	}
	m.shown = time.Now()
	if m.session.Finished() && !m.recorded {
		m.recorded = true
		m.badges = s.opts.Journal.Finish(c.Request.Context(), m.session, time.Since(m.started))
		s.metrics.missions.WithLabelValues(string(m.session.Category()), "finished").Inc()
	}
	c.JSON(http.StatusOK, viewOf(m))
}

func (s *Server) ask(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
		Speak    bool   `json:"speak"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if s.opts.Tutor == nil {
		errorJSON(c, http.StatusServiceUnavailable, "tutor not configured")
		return
	}

	ctx := c.Request.Context()
	ans, err := s.opts.Tutor.Explain(ctx, req.Question)
	switch {
	case errors.Is(err, tutor.ErrEmptyQuestion):
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, tutor.ErrBusy):
		errorJSON(c, http.StatusTooManyRequests, err.Error())
		return
	case err != nil:
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.asks.WithLabelValues(strconv.FormatBool(ans.Fallback)).Inc()

	resp := gin.H{
		"question": ans.Question,
		"answer":   ans.Text,
		"fallback": ans.Fallback,
	}
	if req.Speak {
		payload := s.opts.Tutor.Speak(ctx, ans.Text)
		s.observeSpeech(payload)
		resp["audio"] = payload
		resp["sampleRate"] = audio.SpeechFormat.SampleRate
		resp["channels"] = audio.SpeechFormat.Channels
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) speech(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if s.opts.Tutor == nil || !s.opts.Tutor.SpeechEnabled() {
		errorJSON(c, http.StatusServiceUnavailable, "speech not configured")
		return
	}
	payload := s.opts.Tutor.Speak(c.Request.Context(), req.Text)
	s.observeSpeech(payload)
	c.JSON(http.StatusOK, gin.H{
		"audio":      payload,
		"sampleRate": audio.SpeechFormat.SampleRate,
		"channels":   audio.SpeechFormat.Channels,
	})
}

func (s *Server) observeSpeech(payload string) {
	if payload != "" {
		s.metrics.speechLen.Observe(float64(len(payload)))
	}
}

func (s *Server) stats(c *gin.Context) {
	if s.opts.Progress == nil {
		errorJSON(c, http.StatusServiceUnavailable, "progress not configured")
		return
	}
	st := s.opts.Progress.Stats()
	c.JSON(http.StatusOK, gin.H{
		"points":            st.Points,
		"level":             st.Level,
		"completedProblems": st.CompletedProblems,
		"missions":          st.Missions,
		"perfectMissions":   st.PerfectMissions,
		"categoriesPlayed":  st.CategoriesPlayed,
		"badges":            badgeViews(st.BadgeList()),
	})
}
