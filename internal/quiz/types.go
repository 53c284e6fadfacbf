package quiz

import (
	"fmt"
	"strings"
)

// PointsPerCorrect is the score awarded for each correctly answered problem.
const PointsPerCorrect = 10

// Category is the mission topic a batch of problems is generated for.
type Category string

const (
	Addition       Category = "Addition"
	Subtraction    Category = "Subtraction"
	Multiplication Category = "Multiplication"
	Division       Category = "Division"
	Geometry       Category = "Geometry"
	Logic          Category = "Logic"
)

// Categories lists every category in menu order.
var Categories = []Category{Addition, Subtraction, Multiplication, Division, Geometry, Logic}

// ParseCategory resolves a category name, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Difficulty is the requested problem difficulty.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists every difficulty from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty resolves a difficulty name, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Next returns the following difficulty, wrapping from Hard back to Easy.
func (d Difficulty) Next() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Easy
}

// Problem is a single multiple-choice question. It is treated as read-only
// once it has passed validation.
type Problem struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Hint          string   `json:"hint"`
}

// IsCorrect reports whether answer matches the correct answer exactly.
// No trimming, case folding or numeric normalization is applied.
func (p Problem) IsCorrect(answer string) bool {
	return answer == p.CorrectAnswer
}

// RawProblem is a problem entry as decoded from a source response, before
// validation. Pointer fields distinguish a missing key from an empty value.
type RawProblem struct {
	ID            *string  `json:"id"`
	Question      *string  `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correctAnswer"`
	Explanation   *string  `json:"explanation"`
	Hint          *string  `json:"hint"`
}

// Feedback describes the outcome of a submitted answer.
type Feedback struct {
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Points        int    `json:"points"`
}

// Result summarizes a finished (or abandoned) mission.
type Result struct {
	SessionID  string
	Category   Category
	Difficulty Difficulty
	Score      int
	Correct    int
	Answered   int
	Total      int
}

// Perfect reports whether every problem was answered correctly.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}
