package schema

import "strings"

type tokenKind int

const (
	tokName tokenKind = iota
	tokCard
	tokConnector
	tokLabel
)

type token struct {
	kind  tokenKind
	value string
}

// Connectors recognized by the tokenizer, longest first so that a two
// character connector never swallows the prefix of a longer one.
var connectors = []string{"--|>", "*--", "..>", "--"}

// tokenize splits one diagram line into tokens. It reports false when the
// line contains anything the grammar has no token for; such lines are
// dropped by the caller.
func tokenize(line string) ([]token, bool) {
	var toks []token
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == ':':
			toks = append(toks, token{tokLabel, strings.TrimSpace(line[i+1:])})
			return toks, true

		case c == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				return nil, false
			}
			toks = append(toks, token{tokCard, strings.TrimSpace(line[i+1 : i+1+end])})
			i += end + 2

		case c == 'o' && strings.HasPrefix(line[i:], "o--") && expectsConnector(toks):
			toks = append(toks, token{tokConnector, "o--"})
			i += 3

		case isNameByte(c):
			j := i
			for j < len(line) && isNameByte(line[j]) {
				j++
			}
			toks = append(toks, token{tokName, line[i:j]})
			i = j

		default:
			conn := matchConnector(line[i:])
			if conn == "" {
				return nil, false
			}
			toks = append(toks, token{tokConnector, conn})
			i += len(conn)
		}
	}
	return toks, true
}

// expectsConnector reports whether the next token should be a connector,
// which disambiguates the aggregation marker "o--" from a name starting with o.
func expectsConnector(toks []token) bool {
	if len(toks) == 0 {
		return false
	}
	last := toks[len(toks)-1].kind
	return last == tokName || last == tokCard
}

func matchConnector(s string) string {
	for _, c := range connectors {
		if strings.HasPrefix(s, c) {
			return c
		}
	}
	return ""
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
