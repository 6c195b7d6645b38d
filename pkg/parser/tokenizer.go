package parser

import "fmt"

// TokenKind classifies a lexeme produced by Tokenize.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenString
	TokenIdent
	TokenPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenIdent:
		return "ident"
	case TokenPunct:
		return "punct"
	default:
		return fmt.Sprintf("unknown_token_kind_%d", int(k))
	}
}

// Token is a classified lexeme. String tokens keep their surrounding quotes;
// the compiler and evaluator rely on that to tell them apart from identifiers.
type Token struct {
	Kind TokenKind
	Text string
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// Tokenize splits an expression into tokens. It never fails: malformed input
// (such as an unterminated string) yields a token holding the unconsumed
// remainder. Whitespace is insignificant. A dot inside an identifier is part
// of the name, which is how dotted builtins like Math.sqrt stay one token.
func Tokenize(s string) []Token {
	var tokens []Token
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSpace(c) {
			continue
		}

		switch {
		// Number: a digit, or a dot followed by a digit.
		case isDigit(c) || (c == '.' && i+1 < len(s) && isDigit(s[i+1])):
			start := i
			for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: s[start:i]})
			i--

		// Identifier: letters, digits, underscores and dots after the head.
		case isLetter(c) || c == '_' || c == '$':
			start := i
			i++
			for i < len(s) && (isLetter(s[i]) || isDigit(s[i]) || s[i] == '_' || s[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenIdent, Text: s[start:i]})
			i--

		// String literal: runs through the next matching unescaped quote.
		case c == '"' || c == '\'':
			quote := c
			start := i
			i++
			for i < len(s) {
				if s[i] == quote && s[i-1] != '\\' {
					break
				}
				i++
			}
			if i < len(s) {
				tokens = append(tokens, Token{Kind: TokenString, Text: s[start : i+1]})
			} else {
				// Unterminated: emit the remainder as-is.
				tokens = append(tokens, Token{Kind: TokenString, Text: s[start:]})
				i = len(s)
			}

		default:
			tokens = append(tokens, Token{Kind: TokenPunct, Text: string(c)})
		}
	}
	return tokens
}
