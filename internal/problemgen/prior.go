package problemgen

import (
	"fmt"
	"strings"
)

// priorList renders already-asked questions as a numbered list for the
// prompt. Repeats are listed once at their newest position and only the
// newest max survive (max <= 0 keeps all).
func priorList(questions []string, max int) string {
	seen := make(map[string]bool, len(questions))
	var kept []string
	for i := len(questions) - 1; i >= 0; i-- {
		q := strings.Join(strings.Fields(questions[i]), " ")
		key := strings.ToLower(q)
		if q == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, q)
		if max > 0 && len(kept) == max {
			break
		}
	}
	if len(kept) == 0 {
		return "None"
	}

	var b strings.Builder
	for i := range kept {
		fmt.Fprintf(&b, "%d. %s\n", i+1, kept[len(kept)-1-i])
	}
	return strings.TrimRight(b.String(), "\n")
}
