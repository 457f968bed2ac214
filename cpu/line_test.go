package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWords(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		words []string
	}){
		{"", nil},
		{"   ; just a comment", nil},
		{"add x1, x2, x3", []string{"add", "x1", "x2", "x3"}},
		{"\tli x1 5 ; load", []string{"li", "x1", "5"}},
		{`li x1 "a;b"`, []string{"li", "x1", `"a;b"`}},
		{`li x1 "a b"`, []string{"li", "x1", `"a b"`}},
		{`li x1 "\" x"`, []string{"li", "x1", `"\" x"`}},
		{"li x1 $(A + (B * 2))", []string{"li", "x1", "$(A + (B * 2))"}},
	}

	for _, entry := range table {
		words, err := splitWords(entry.text)
		assert.NoError(err, entry.text)
		assert.Equal(entry.words, words, entry.text)
	}

	for _, text := range []string{`li x1 "abc`, `li x1 "abc\"`, "li x1 $(1 + (2)"} {
		_, err := splitWords(text)
		var eg ErrGrammar
		assert.True(errors.As(err, &eg), text)
	}
}

func TestTokenize(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"; header",
		"start:",
		"  li x1 1",
		"",
		"loop: addi x1 x1 1",
		".alias counter x1",
		".CONST LIMIT 10",
		".equ $LOCAL 3",
		"a: b: nop",
	}, "\n")

	lines, err := Tokenize(strings.NewReader(source))
	assert.NoError(err)

	expected := []Line{
		{2, "start:", LINE_LABEL, "start", nil},
		{3, "  li x1 1", LINE_OP, "", []string{"li", "x1", "1"}},
		{5, "loop: addi x1 x1 1", LINE_LABEL, "loop", nil},
		{5, "loop: addi x1 x1 1", LINE_OP, "", []string{"addi", "x1", "x1", "1"}},
		{6, ".alias counter x1", LINE_ALIAS, "counter", []string{"x1"}},
		{7, ".CONST LIMIT 10", LINE_CONST, "LIMIT", []string{"10"}},
		{8, ".equ $LOCAL 3", LINE_CONST, "$LOCAL", []string{"3"}},
		{9, "a: b: nop", LINE_LABEL, "a", nil},
		{9, "a: b: nop", LINE_LABEL, "b", nil},
		{9, "a: b: nop", LINE_OP, "", []string{"nop"}},
	}

	assert.Equal(expected, lines)
}

func TestTokenizeErrSyntax(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		prog string
		line int
	}){
		{"nop\n9lives:\n", 2},
		{".alias\n", 1},
		{".alias A\n", 1},
		{".alias A 1 2\n", 1},
		{".alias $A 1\n", 1},
		{"nop\nnop\n.const 1A 2\n", 3},
		{"\"str\" x1\n", 1},
		{"li x1 \"open\n", 1},
		{"li x1 $(1 + 2\n", 1},
	}

	for _, entry := range table {
		_, err := Tokenize(strings.NewReader(entry.prog))
		var se *ErrSyntax
		if assert.True(errors.As(err, &se), entry.prog) {
			assert.Equal(entry.line, se.LineNo, entry.prog)
			var eg ErrGrammar
			assert.True(errors.As(err, &eg), entry.prog)
		}
	}
}

func TestLineKindString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("label", LINE_LABEL.String())
	assert.Equal(".alias", LINE_ALIAS.String())
	assert.Equal(".const", LINE_CONST.String())
	assert.Equal("op", LINE_OP.String())
}
