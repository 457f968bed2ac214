package cpu

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// LineKind is the classification of a source line.
type LineKind int

//go:generate go tool stringer -linecomment -type=LineKind
const (
	LINE_LABEL = LineKind(0) // label
	LINE_ALIAS = LineKind(1) // .alias
	LINE_CONST = LineKind(2) // .const
	LINE_OP    = LineKind(3) // op
)

// Line is a classified line of assembly source.
//
// A label followed by an instruction on the same source line becomes two
// Lines sharing a LineNo.
type Line struct {
	LineNo int      // 1-based source line number.
	Text   string   // Raw source line.
	Kind   LineKind // Classification.
	Name   string   // Label, alias or constant being defined.
	Words  []string // Mnemonic and operands, or the definition value.
}

var (
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	constRe = regexp.MustCompile(`^\$?[A-Za-z_][A-Za-z0-9_.]*$`)
)

// directiveMap maps definition directives to their line kind.
var directiveMap = map[string]LineKind{
	".alias": LINE_ALIAS,
	".const": LINE_CONST,
	".equ":   LINE_CONST,
}

// splitWords splits a line into words, dropping any ';' comment.
// Quoted strings and $(...) expressions are kept whole.
func splitWords(text string) (words []string, err error) {
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for n := 0; n < len(text); n++ {
		c := text[n]
		switch {
		case c == ';':
			flush()
			return
		case c == ' ' || c == '\t' || c == ',':
			flush()
		case c == '"':
			end := n + 1
			for ; end < len(text) && text[end] != '"'; end++ {
				if text[end] == '\\' {
					end++
				}
			}
			if end >= len(text) {
				err = ErrGrammar(f("unterminated string"))
				return
			}
			word.WriteString(text[n : end+1])
			n = end
		case c == '$' && word.Len() == 0 && strings.HasPrefix(text[n:], "$("):
			depth := 0
			end := n + 1
			for ; end < len(text); end++ {
				if text[end] == '(' {
					depth++
				} else if text[end] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if end >= len(text) {
				err = ErrGrammar(f("unterminated expression"))
				return
			}
			word.WriteString(text[n : end+1])
			n = end
		default:
			word.WriteByte(c)
		}
	}

	flush()

	return
}

// classify converts one line of source into zero or more Lines.
func classify(text string, lineno int) (lines []Line, err error) {
	words, err := splitWords(text)
	if err != nil {
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !identRe.MatchString(label) {
			err = ErrGrammar(f("invalid label %q", label))
			return
		}
		lines = append(lines, Line{LineNo: lineno, Text: text, Kind: LINE_LABEL, Name: label})
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	kind, ok := directiveMap[strings.ToLower(words[0])]
	if ok {
		if len(words) != 3 {
			err = ErrGrammar(f("%v expects a name and a value", words[0]))
			return
		}
		nameRe := identRe
		if kind == LINE_CONST {
			nameRe = constRe
		}
		if !nameRe.MatchString(words[1]) {
			err = ErrGrammar(f("invalid name %q", words[1]))
			return
		}
		lines = append(lines, Line{LineNo: lineno, Text: text, Kind: kind, Name: words[1], Words: words[2:]})
		return
	}

	if !identRe.MatchString(words[0]) {
		err = ErrGrammar(f("invalid instruction %q", words[0]))
		return
	}

	lines = append(lines, Line{LineNo: lineno, Text: text, Kind: LINE_OP, Words: words})

	return
}

// Tokenize reads assembly source and classifies each line.
// Blank and comment-only lines are dropped.
func Tokenize(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		var classified []Line
		classified, err = classify(text, lineno)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}
		lines = append(lines, classified...)
	}

	err = scanner.Err()
	if err != nil {
		err = ErrGrammar(err.Error())
		lines = nil
	}

	return
}
