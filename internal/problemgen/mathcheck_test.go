package problemgen

import (
	"testing"

	"github.com/abhisek/mathspace/internal/quiz"
)

func strp(s string) *string { return &s }

func arithProblem(question, answer string) quiz.RawProblem {
	return quiz.RawProblem{
		ID:            strp("p1"),
		Question:      strp(question),
		Options:       []string{answer, "0", "1", "2"},
		CorrectAnswer: strp(answer),
		Explanation:   strp("Count it out."),
		Hint:          strp("Use your fingers."),
	}
}

func TestMathCheck_Arithmetic(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		category quiz.Category
		question string
		right    string
		wrong    string
	}{
		{quiz.Addition, "What is 345 + 278?", "623", "612"},
		{quiz.Subtraction, "567 - 289 = ?", "278", "288"},
		{quiz.Multiplication, "What is 23 × 45?", "1035", "1025"},
		{quiz.Multiplication, "What is 6 * 7?", "42", "36"},
		{quiz.Division, "What is 144 ÷ 12?", "12", "11"},
		{quiz.Division, "What is 144 / 12?", "12", "11"},
	}

	for _, tt := range tests {
		in := GenerateInput{Category: tt.category}
		if err := v.Validate(arithProblem(tt.question, tt.right), in); err != nil {
			t.Errorf("%q = %s should pass: %v", tt.question, tt.right, err)
		}
		if err := v.Validate(arithProblem(tt.question, tt.wrong), in); err == nil {
			t.Errorf("%q = %s should fail", tt.question, tt.wrong)
		}
	}
}

func TestMathCheck_FractionArithmetic(t *testing.T) {
	v := &MathCheckValidator{}
	in := GenerateInput{Category: quiz.Addition}

	tests := []struct {
		text   string
		answer string
	}{
		{"What is 1/4 + 1/2?", "3/4"},
		{"What is 3/4 - 1/3?", "5/12"},
		{"What is 2/3 * 3/4?", "1/2"},
		{"What is 1/2 ÷ 1/4?", "2"},
	}

	for _, tc := range tests {
		if err := v.Validate(arithProblem(tc.text, tc.answer), in); err != nil {
			t.Errorf("expected %q with answer %q to pass: %v", tc.text, tc.answer, err)
		}
	}

	if err := v.Validate(arithProblem("What is 1/4 + 1/2?", "2/6"), in); err == nil {
		t.Fatal("wrong fraction answer should fail")
	}
}

func TestMathCheck_NonComputable(t *testing.T) {
	v := &MathCheckValidator{}
	in := GenerateInput{Category: quiz.Subtraction}

	texts := []string{
		"Which fraction is larger: 3/4 or 2/3?",
		"A rocket has 345 bolts and loses 123. How many are left?",
		"What place value does 5 have in 5,432?",
	}

	for _, text := range texts {
		if err := v.Validate(arithProblem(text, "222"), in); err != nil {
			t.Errorf("non-computable %q should pass silently: %v", text, err)
		}
	}
}

func TestMathCheck_SkipsOtherCategories(t *testing.T) {
	v := &MathCheckValidator{}
	p := arithProblem("What comes next: 2 + 2 = 4, 3 + 3 = 6, 4 + 4 = ?", "8")
	if err := v.Validate(p, GenerateInput{Category: quiz.Logic}); err != nil {
		t.Fatalf("logic problems are not recomputed: %v", err)
	}
	if err := v.Validate(p, GenerateInput{Category: quiz.Addition}); err == nil {
		t.Fatal("the same text in Addition is recomputed from its first expression")
	}
}

func TestMathCheck_TextAnswerPasses(t *testing.T) {
	v := &MathCheckValidator{}
	if err := v.Validate(arithProblem("What is 2 + 3?", "five"), GenerateInput{Category: quiz.Addition}); err != nil {
		t.Fatalf("non-numeric answers are not checked: %v", err)
	}
}

func TestMathCheck_MissingFieldsPass(t *testing.T) {
	v := &MathCheckValidator{}
	if err := v.Validate(quiz.RawProblem{}, GenerateInput{Category: quiz.Addition}); err != nil {
		t.Fatalf("missing fields are left to quiz validation: %v", err)
	}
}

func TestMathCheck_LargeNumbers(t *testing.T) {
	v := &MathCheckValidator{}
	in := GenerateInput{Category: quiz.Multiplication}

	tests := []struct {
		text   string
		answer string
	}{
		{"What is 12345 + 67890?", "80235"},
		{"What is 456 * 789?", "359784"},
	}

	for _, tc := range tests {
		if err := v.Validate(arithProblem(tc.text, tc.answer), in); err != nil {
			t.Errorf("expected %q with answer %q to pass: %v", tc.text, tc.answer, err)
		}
	}
}
