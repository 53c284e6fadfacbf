package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/mathspace/internal/quiz"
)

// answerType is the numeric form of a correct answer.
type answerType int

const (
	answerInteger answerType = iota
	answerDecimal
	answerFraction
)

// MathCheckValidator independently recomputes the answer of plain
// arithmetic questions in the arithmetic categories. Word problems and
// questions it cannot parse pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p quiz.RawProblem, input GenerateInput) *ValidationError {
	switch input.Category {
	case quiz.Addition, quiz.Subtraction, quiz.Multiplication, quiz.Division:
	default:
		return nil
	}
	if p.Question == nil || p.CorrectAnswer == nil {
		return nil
	}

	at, ok := inferAnswerType(*p.CorrectAnswer)
	if !ok {
		return nil
	}
	computed, err := computeAnswer(*p.Question, at)
	if err != nil {
		return nil
	}
	if !answersEqual(computed, *p.CorrectAnswer, at) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but LLM claimed %q", computed, *p.CorrectAnswer),
		}
	}
	return nil
}

// inferAnswerType reports the numeric form of answer, or false when it is
// not a number.
func inferAnswerType(answer string) (answerType, bool) {
	answer = strings.TrimSpace(answer)
	if _, err := strconv.ParseInt(answer, 10, 64); err == nil {
		return answerInteger, true
	}
	if _, err := strconv.ParseFloat(answer, 64); err == nil {
		return answerDecimal, true
	}
	if _, den, err := parseFraction(answer); err == nil && den != 0 {
		return answerFraction, true
	}
	return 0, false
}

// Regex patterns for extracting arithmetic expressions from question text.
var (
	// Fraction arithmetic: "a/b + c/d", "a/b - c/d", "a/b * c/d", "a/b ÷ c/d"
	fractionArithRe = regexp.MustCompile(`(-?\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(-?\d+)\s*/\s*(\d+)`)

	// Integer/decimal arithmetic with +, -, *, ×
	intArithRe = regexp.MustCompile(`(?:^|[^\d/])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)(?:[^\d/]|$)`)

	// Division requires spaces around the operator to distinguish from fractions (3/4 vs 144 / 12).
	intDivRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)`)
)

// computeAnswer extracts and computes the answer from question text.
// Returns an error if the text holds no computable expression.
func computeAnswer(text string, at answerType) (string, error) {
	if at == answerFraction || at == answerInteger {
		if result, err := tryFractionArith(text); err == nil {
			return result, nil
		}
	}
	if at == answerInteger || at == answerDecimal {
		if result, err := tryIntArith(text, at); err == nil {
			return result, nil
		}
	}
	return "", fmt.Errorf("not computable")
}

// tryFractionArith tries to extract and compute fraction arithmetic.
func tryFractionArith(text string) (string, error) {
	matches := fractionArithRe.FindStringSubmatch(text)
	if matches == nil {
		return "", fmt.Errorf("no fraction expression found")
	}

	aN, _ := strconv.ParseInt(matches[1], 10, 64)
	aD, _ := strconv.ParseInt(matches[2], 10, 64)
	op := normalizeOp(matches[3])
	bN, _ := strconv.ParseInt(matches[4], 10, 64)
	bD, _ := strconv.ParseInt(matches[5], 10, 64)

	if aD == 0 || bD == 0 {
		return "", fmt.Errorf("zero denominator")
	}

	var rN, rD int64
	switch op {
	case "+":
		rN, rD = aN*bD+bN*aD, aD*bD
	case "-":
		rN, rD = aN*bD-bN*aD, aD*bD
	case "*":
		rN, rD = aN*bN, aD*bD
	case "/":
		if bN == 0 {
			return "", fmt.Errorf("division by zero")
		}
		rN, rD = aN*bD, aD*bN
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	return formatFraction(rN, rD), nil
}

// tryIntArith tries to extract and compute integer/decimal arithmetic.
func tryIntArith(text string, at answerType) (string, error) {
	if m := intArithRe.FindStringSubmatch(text); m != nil {
		return computeIntOp(m[1], normalizeOp(m[2]), m[3], at)
	}
	if m := intDivRe.FindStringSubmatch(text); m != nil {
		return computeIntOp(m[1], "/", m[2], at)
	}
	return "", fmt.Errorf("no arithmetic expression found")
}

// computeIntOp evaluates a binary arithmetic operation on two number strings.
func computeIntOp(aStr, op, bStr string, at answerType) (string, error) {
	a, err := strconv.ParseFloat(aStr, 64)
	if err != nil {
		return "", err
	}
	b, err := strconv.ParseFloat(bStr, 64)
	if err != nil {
		return "", err
	}

	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	if at == answerInteger {
		if result != float64(int64(result)) {
			return "", fmt.Errorf("non-integer result %v", result)
		}
		return strconv.FormatInt(int64(result), 10), nil
	}
	return strconv.FormatFloat(result, 'f', -1, 64), nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// answersEqual compares two answers numerically, falling back to trimmed
// text when either does not parse.
func answersEqual(a, b string, at answerType) bool {
	na, errA := normalizeAnswer(a, at)
	nb, errB := normalizeAnswer(b, at)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return na == nb
}

// normalizeAnswer normalizes an answer string for comparison.
func normalizeAnswer(answer string, at answerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch at {
	case answerInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil
	case answerDecimal:
		f, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		num, den, err := parseFraction(answer)
		if err != nil {
			return "", err
		}
		if den == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		return formatFraction(num, den), nil
	}
}

// formatFraction reduces num/den and renders whole results without a
// denominator.
func formatFraction(num, den int64) string {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	num /= g
	den /= g
	if den == 1 {
		return strconv.FormatInt(num, 10)
	}
	return fmt.Sprintf("%d/%d", num, den)
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
