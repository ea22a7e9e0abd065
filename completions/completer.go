package completions

import (
	"regexp"
	"slices"
	"strings"

	"github.com/reusee/starconsole/evals"
	"go.starlark.net/starlark"
)

// Func returns the state-th completion of text, or false when there are no more.
type Func func(text string, state int) (string, bool)

// Completer completes names and attributes against a namespace, in the manner of a readline
// completer: state 0 computes the matches, later states index into them.
type Completer struct {
	namespace *evals.Namespace
	matches   []string
}

func New(namespace *evals.Namespace) *Completer {
	return &Completer{
		namespace: namespace,
	}
}

var _ Func = new(Completer).Complete

func (c *Completer) Complete(text string, state int) (string, bool) {
	if state == 0 {
		c.matches = c.compute(text)
	}
	if state < 0 || state >= len(c.matches) {
		return "", false
	}
	return c.matches[state], true
}

func (c *Completer) compute(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if strings.Contains(text, ".") {
		return c.attrMatches(text)
	}
	return c.globalMatches(text)
}

var keywords = []string{
	"and", "break", "continue", "def", "elif", "else", "for", "if",
	"in", "lambda", "load", "not", "or", "pass", "return", "while",
}

// keywords that are complete statements on their own
var bareKeywords = map[string]bool{
	"break":    true,
	"continue": true,
	"pass":     true,
	"else":     true,
}

func (c *Completer) globalMatches(text string) (ret []string) {
	seen := make(map[string]bool)
	for _, word := range keywords {
		if !strings.HasPrefix(word, text) {
			continue
		}
		seen[word] = true
		switch {
		case word == "else":
			ret = append(ret, word+":")
		case bareKeywords[word]:
			ret = append(ret, word)
		default:
			ret = append(ret, word+" ")
		}
	}
	for _, name := range c.namespace.Names() {
		if seen[name] || !strings.HasPrefix(name, text) {
			continue
		}
		seen[name] = true
		value, _ := c.namespace.Lookup(name)
		ret = append(ret, withCallSuffix(name, value))
	}
	return
}

var attrPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\.([A-Za-z0-9_]*)$`)

func (c *Completer) attrMatches(text string) (ret []string) {
	m := attrPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	expr, attr := m[1], m[2]

	value, ok := c.resolve(expr)
	if !ok {
		return nil
	}
	hasAttrs, ok := value.(starlark.HasAttrs)
	if !ok {
		return nil
	}
	names := hasAttrs.AttrNames()
	slices.Sort(names)
	for _, name := range names {
		if !strings.HasPrefix(name, attr) {
			continue
		}
		// private attributes only when asked for
		if strings.HasPrefix(name, "_") && !strings.HasPrefix(attr, "_") {
			continue
		}
		v, err := hasAttrs.Attr(name)
		if err != nil {
			continue
		}
		ret = append(ret, withCallSuffix(expr+"."+name, v))
	}
	return
}

// resolve looks up a dotted path without evaluating calls.
func (c *Completer) resolve(path string) (starlark.Value, bool) {
	parts := strings.Split(path, ".")
	for _, part := range parts {
		if slices.Contains(keywords, part) {
			return nil, false
		}
	}
	value, ok := c.namespace.Lookup(parts[0])
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		hasAttrs, ok := value.(starlark.HasAttrs)
		if !ok {
			return nil, false
		}
		v, err := hasAttrs.Attr(part)
		if err != nil || v == nil {
			return nil, false
		}
		value = v
	}
	return value, true
}

func withCallSuffix(word string, value starlark.Value) string {
	if _, ok := value.(starlark.Callable); ok {
		return word + "("
	}
	return word
}
