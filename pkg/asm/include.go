package asm

import (
	"fmt"
	"os"
	"strings"
)

// collectTokens runs the lexer over path, recursively expanding any
// `.include 'path'` directive at the point it occurs, and returns the
// flattened, directive-free token stream; whatever diagnostics are
// raised along the way are recorded in diags. Directives are resolved and consumed entirely
// in this phase, so the encoder never sees one.
//
// Cycles are not detected: a self-including file recurses until the
// process runs out of stack, and that is the user's problem.
func collectTokens(path string, diags *Diagnostics) []Token {
	fp, err := os.Open(path)
	if err != nil {
		diags.Add(0, fmt.Errorf("%s: couldn't open %q", path, path))
		return nil
	}
	defer fp.Close()

	var tokens []Token
	for toe := range StartLexing(fp) {
		if toe.Err != nil {
			diags.Add(0, toe.Err)
			continue
		}
		tok := toe.Token
		if tok.Kind != KindDirective {
			tokens = append(tokens, tok)
			continue
		}
		tokens = append(tokens, runDirective(tok, diags)...)
	}
	return tokens
}

// runDirective dispatches a .directive token. The only directive
// defined is include; anything else is a diagnostic.
func runDirective(tok Token, diags *Diagnostics) []Token {
	name, rest := splitDirective(tok.Text)
	switch name {
	case "include":
		return runInclude(tok.Line, rest, diags)
	default:
		diags.Add(tok.Line, fmt.Errorf("unknown directive %q", name))
		return nil
	}
}

func splitDirective(text string) (name, rest string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

// runInclude parses the single-quoted path argument to .include and
// recursively tokenizes that file. The path is opened as written, so a
// relative path resolves against the working directory, not against the
// including file's directory.
func runInclude(line int, arg string, diags *Diagnostics) []Token {
	path, ok := unquote(arg)
	if !ok {
		diags.Add(line, fmt.Errorf("expected value in include"))
		return nil
	}
	return collectTokens(path, diags)
}

// unquote extracts the contents of a single-quoted path: 'like/this'.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '\'' {
		return "", false
	}
	end := strings.IndexByte(s[1:], '\'')
	if end < 0 {
		return "", false
	}
	return s[1 : 1+end], true
}
