package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathspace/internal/quiz"
)

const systemPrompt = `You write math problems for children in primary school, aged 7 to 10, for a space-themed math game.

Rules:
- Every problem is multiple choice with exactly 4 options and exactly one correct option.
- correctAnswer must be copied character for character from one of the options.
- Distractors should reflect common mistakes, not random values.
- Use plain text for all math. No LaTeX. Use + - × and ÷ for the operators.
- Keep questions short, friendly, and self-contained. Space, planets and rockets make good settings.
- The explanation says in one or two sentences why the answer is correct.
- The hint nudges a stuck child toward the method without giving the answer.
- Give every problem an id that is unique within the batch.
- Do not repeat any question from the "already asked" list.`

// categoryFocus describes what each category covers.
var categoryFocus = map[quiz.Category]string{
	quiz.Addition:       "adding whole numbers",
	quiz.Subtraction:    "subtracting whole numbers, never going below zero",
	quiz.Multiplication: "multiplication facts and simple products",
	quiz.Division:       "sharing equally and exact division without remainders",
	quiz.Geometry:       "shapes, sides, corners, and simple perimeter",
	quiz.Logic:          "number patterns, sequences, and simple reasoning puzzles",
}

// difficultyGuide maps difficulty to an age-appropriate number range.
var difficultyGuide = map[quiz.Difficulty]string{
	quiz.Easy:   "numbers up to 20, one step",
	quiz.Medium: "numbers up to 100, one or two steps",
	quiz.Hard:   "numbers up to 1000, up to three steps",
}

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	language := cfg.Language
	if language == "" {
		language = "English"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d math problems.\n", input.Count)
	fmt.Fprintf(&b, "Category: %s\n", input.Category)
	if focus, ok := categoryFocus[input.Category]; ok {
		fmt.Fprintf(&b, "Focus: %s\n", focus)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	if guide, ok := difficultyGuide[input.Difficulty]; ok {
		fmt.Fprintf(&b, "Range: %s\n", guide)
	}
	fmt.Fprintf(&b, "Language: write every question, option, explanation and hint in child-friendly %s.\n", language)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(priorList(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}
