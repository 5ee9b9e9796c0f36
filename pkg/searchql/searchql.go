// Package searchql lexes the ticket search mini-language: terms split
// on whitespace, double quotes keep phrases together, a leading !
// inverts a term and key:value forms typed predicates. The lexer never
// fails, key and value validation belongs to the caller.
package searchql

import "strings"

// Term is one parsed search term. Key is empty for free-text terms.
type Term struct {
	Key     string
	Value   string
	Inverse bool
}

func (t Term) String() string {
	var b strings.Builder
	if t.Inverse {
		b.WriteByte('!')
	}
	if t.Key != "" {
		b.WriteString(t.Key)
		b.WriteByte(':')
	}
	if strings.ContainsAny(t.Value, " \t\n") {
		b.WriteByte('"')
		b.WriteString(t.Value)
		b.WriteByte('"')
	} else {
		b.WriteString(t.Value)
	}
	return b.String()
}

// Parse splits input into terms. An unterminated quote runs to the end
// of the input.
func Parse(input string) []Term {
	var terms []Term
	i := 0
	for i < len(input) {
		for i < len(input) && isSpace(input[i]) {
			i++
		}
		if i >= len(input) {
			break
		}
		term, next := lexTerm(input, i)
		i = next
		if term.Key == "" && term.Value == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

func lexTerm(s string, i int) (Term, int) {
	var term Term
	if s[i] == '!' {
		term.Inverse = true
		i++
	}

	var b strings.Builder
	colon := -1
	inQuote := false
	for i < len(s) {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			i++
			continue
		}
		if !inQuote && isSpace(c) {
			break
		}
		if !inQuote && c == ':' && colon == -1 {
			colon = b.Len()
		}
		b.WriteByte(c)
		i++
	}

	token := b.String()
	// A colon in first position makes no key, the token is a value.
	if colon > 0 {
		term.Key = token[:colon]
		term.Value = token[colon+1:]
	} else {
		term.Value = token
	}
	return term, i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
