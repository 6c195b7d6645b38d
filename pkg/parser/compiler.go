package parser

// The expression compiler converts a token sequence into a postfix
// instruction sequence via the shunting-yard algorithm, with call sites
// encoded as an argument-count marker followed by a function-name marker.
// It raises no errors: malformed expressions degrade into sequences whose
// missing operands later evaluate to Undefined.

// InstrKind classifies a postfix instruction.
type InstrKind int

const (
	InstrOperand  InstrKind = iota // literal or identifier token
	InstrOperator                  // binary operator
	InstrArgCount                  // argument-count marker for the next call
	InstrCall                      // function-name marker
)

// Instruction is one element of a postfix program.
type Instruction struct {
	Kind InstrKind
	Tok  Token  // operand token (InstrOperand)
	Op   string // operator symbol (InstrOperator)
	Name string // callee name (InstrCall)
	Argc int    // argument count (InstrArgCount)
}

var precedence = map[string]int{
	"**": 7,
	"*":  6, "/": 6, "%": 6,
	"+": 5, "-": 5,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"==": 3, "!=": 3, "===": 3, "!==": 3,
	"&&": 2,
	"||": 1,
}

// Precedence returns the binding strength of an operator, or -1 when the
// symbol is not a known operator.
func Precedence(op string) int {
	if p, ok := precedence[op]; ok {
		return p
	}
	return -1
}

// IsOperator reports whether the symbol is a recognized binary operator.
func IsOperator(op string) bool {
	_, ok := precedence[op]
	return ok
}

// coalesce merges adjacent single-character punctuation tokens into
// multi-character operators (`=`+`=` becomes `==`, and so on).
func coalesce(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	punctAt := func(i int, text string) bool {
		return i < len(tokens) && tokens[i].Kind == TokenPunct && tokens[i].Text == text
	}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != TokenPunct {
			out = append(out, tok)
			continue
		}
		switch tok.Text {
		case "=", "!":
			if punctAt(i+1, "=") {
				if punctAt(i+2, "=") {
					out = append(out, Token{Kind: TokenPunct, Text: tok.Text + "=="})
					i += 2
				} else {
					out = append(out, Token{Kind: TokenPunct, Text: tok.Text + "="})
					i++
				}
				continue
			}
		case "<", ">":
			if punctAt(i+1, "=") {
				out = append(out, Token{Kind: TokenPunct, Text: tok.Text + "="})
				i++
				continue
			}
		case "&":
			if punctAt(i+1, "&") {
				out = append(out, Token{Kind: TokenPunct, Text: "&&"})
				i++
				continue
			}
		case "|":
			if punctAt(i+1, "|") {
				out = append(out, Token{Kind: TokenPunct, Text: "||"})
				i++
				continue
			}
		case "*":
			if punctAt(i+1, "*") {
				out = append(out, Token{Kind: TokenPunct, Text: "**"})
				i++
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

type opEntryKind int

const (
	opOperator opEntryKind = iota
	opFunction
	opParen
)

type opEntry struct {
	kind opEntryKind
	text string
}

// Compile converts tokens into a postfix instruction sequence.
func Compile(tokens []Token) []Instruction {
	toks := coalesce(tokens)

	var out []Instruction
	var ops []opEntry
	var argCount []int

	top := func() *opEntry {
		if len(ops) == 0 {
			return nil
		}
		return &ops[len(ops)-1]
	}
	pop := func() opEntry {
		e := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return e
	}
	emit := func(e opEntry) {
		switch e.kind {
		case opOperator:
			out = append(out, Instruction{Kind: InstrOperator, Op: e.text})
		case opFunction:
			// A function name stranded without its closing paren falls
			// back to a plain operand.
			out = append(out, Instruction{Kind: InstrOperand, Tok: Token{Kind: TokenIdent, Text: e.text}})
		}
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		if tok.Kind != TokenPunct {
			// Call detection is positional: an identifier directly
			// followed by `(` is a pending function name.
			if tok.Kind == TokenIdent && i+1 < len(toks) &&
				toks[i+1].Kind == TokenPunct && toks[i+1].Text == "(" {
				ops = append(ops, opEntry{kind: opFunction, text: tok.Text})
			} else {
				out = append(out, Instruction{Kind: InstrOperand, Tok: tok})
			}
			continue
		}

		switch tok.Text {
		case ",":
			for top() != nil && top().kind == opOperator {
				emit(pop())
			}
			if len(argCount) > 0 {
				argCount[len(argCount)-1]++
			}
		case "(":
			ops = append(ops, opEntry{kind: opParen})
			// A call's counter starts at 1: it covers at least one
			// argument, so a zero-argument call over-counts by one.
			if i > 0 && toks[i-1].Kind == TokenIdent {
				argCount = append(argCount, 1)
			}
		case ")":
			for top() != nil && top().kind != opParen {
				emit(pop())
			}
			if top() != nil && top().kind == opParen {
				pop()
			}
			if top() != nil && top().kind == opFunction {
				name := pop().text
				argc := 0
				if len(argCount) > 0 {
					argc = argCount[len(argCount)-1]
					argCount = argCount[:len(argCount)-1]
				}
				out = append(out, Instruction{Kind: InstrArgCount, Argc: argc})
				out = append(out, Instruction{Kind: InstrCall, Name: name})
			}
		default:
			// Binary operator, or an unknown symbol with precedence -1
			// that the evaluator later collapses to Undefined. `**` is
			// right-associative: it yields only to strictly stronger
			// pending operators.
			prec := Precedence(tok.Text)
			for top() != nil && top().kind == opOperator {
				topPrec := Precedence(top().text)
				if topPrec < prec || (topPrec == prec && tok.Text == "**") {
					break
				}
				emit(pop())
			}
			ops = append(ops, opEntry{kind: opOperator, text: tok.Text})
		}
	}

	for len(ops) > 0 {
		emit(pop())
	}
	return out
}

// CompileExpression tokenizes and compiles an expression in one step.
func CompileExpression(expr string) []Instruction {
	return Compile(Tokenize(expr))
}
