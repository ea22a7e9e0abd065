package completions

import (
	"slices"
	"strings"
)

// Collect queries complete with increasing state until it is exhausted or repeats itself.
func Collect(complete Func, text string) (ret []string) {
	seen := make(map[string]bool)
	for state := 0; ; state++ {
		candidate, ok := complete(text, state)
		if !ok || seen[candidate] {
			return
		}
		seen[candidate] = true
		ret = append(ret, candidate)
	}
}

// Display formats candidates as a sorted block, one indented candidate per line.
func Display(candidates []string) string {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)
	var b strings.Builder
	for _, candidate := range sorted {
		b.WriteString(" ")
		b.WriteString(candidate)
		b.WriteString("\n")
	}
	return b.String()
}
