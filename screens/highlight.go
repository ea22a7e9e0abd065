package screens

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

type tokenClass uint8

const (
	classNone tokenClass = iota
	classKeyword
	classString
	classNumber
	classComment
)

// starlark shares its lexical structure with python
var commandLexer = func() chroma.Lexer {
	lexer := lexers.Get("python")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}()

// classify returns the token class of each rune in code.
// Unlexable code yields nil, and runs unhighlighted.
func classify(code string) []tokenClass {
	iterator, err := commandLexer.Tokenise(nil, code)
	if err != nil {
		return nil
	}
	classes := make([]tokenClass, 0, len(code))
	for _, token := range iterator.Tokens() {
		class := classOf(token.Type)
		for range token.Value {
			classes = append(classes, class)
		}
	}
	return classes
}

func classOf(t chroma.TokenType) tokenClass {
	switch {
	case t.InCategory(chroma.Keyword):
		return classKeyword
	case t.InSubCategory(chroma.LiteralString):
		return classString
	case t.InSubCategory(chroma.LiteralNumber):
		return classNumber
	case t.InCategory(chroma.Comment):
		return classComment
	}
	return classNone
}
