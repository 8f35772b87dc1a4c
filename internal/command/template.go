// Package command turns the configured upscaler template into runnable
// argument vectors and executes them through a substitutable Executor, so the
// pipeline never depends on a real tool being installed.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadTemplate is wrapped by every template validation failure. Template
// problems are fatal to the whole run: a broken template fails identically
// for every file, so it is rejected before any file is processed.
var ErrBadTemplate = errors.New("bad command template")

// Substitution carries the per-file values rendered into the template and
// exported to the child process environment.
type Substitution struct {
	Input  string
	Output string
	Scale  int
	Kind   string
	Width  int
	Height int
}

var placeholderRe = regexp.MustCompile(`\{[a-z]+\}`)

// knownPlaceholders is the full recognized set. {input} and {output} are
// mandatory; the rest are optional.
var knownPlaceholders = map[string]bool{
	"{input}":  true,
	"{output}": true,
	"{scale}":  true,
	"{kind}":   true,
	"{width}":  true,
	"{height}": true,
}

// Template is a validated, tokenized command template. Tokenizing before
// substitution means paths containing spaces stay single arguments and no
// shell is involved.
type Template struct {
	raw    string
	tokens []string
}

// ParseTemplate validates and tokenizes s. It fails with ErrBadTemplate when
// s is empty or whitespace, when {input} or {output} is missing, or when an
// unrecognized {name} placeholder appears.
func ParseTemplate(s string) (*Template, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrBadTemplate)
	}

	for _, ph := range placeholderRe.FindAllString(s, -1) {
		if !knownPlaceholders[ph] {
			return nil, fmt.Errorf("%w: unknown placeholder %s", ErrBadTemplate, ph)
		}
	}
	for _, required := range []string{"{input}", "{output}"} {
		if !strings.Contains(s, required) {
			return nil, fmt.Errorf("%w: missing required placeholder %s", ErrBadTemplate, required)
		}
	}

	return &Template{raw: s, tokens: tokens}, nil
}

// String returns the raw template text, for logging and the manifest.
func (t *Template) String() string { return t.raw }

// Tool returns the command name (the first token), for dependency checks.
func (t *Template) Tool() string { return t.tokens[0] }

// Render substitutes sub into the template tokens and returns the argument
// vector. Substitution is literal per token; a token may mix placeholder and
// surrounding text (e.g. "--out={output}").
func (t *Template) Render(sub Substitution) []string {
	pairs := []string{
		"{input}", sub.Input,
		"{output}", sub.Output,
		"{scale}", strconv.Itoa(sub.Scale),
		"{kind}", sub.Kind,
		"{width}", strconv.Itoa(sub.Width),
		"{height}", strconv.Itoa(sub.Height),
	}
	r := strings.NewReplacer(pairs...)

	argv := make([]string, len(t.tokens))
	for i, tok := range t.tokens {
		argv[i] = r.Replace(tok)
	}
	return argv
}

// Env returns the TEXFORGE_* environment variables for sub, the fallback
// channel for tools that cannot take the metadata as CLI placeholders.
func Env(sub Substitution) []string {
	return []string{
		"TEXFORGE_INPUT=" + sub.Input,
		"TEXFORGE_OUTPUT=" + sub.Output,
		"TEXFORGE_SCALE=" + strconv.Itoa(sub.Scale),
		"TEXFORGE_KIND=" + sub.Kind,
		"TEXFORGE_WIDTH=" + strconv.Itoa(sub.Width),
		"TEXFORGE_HEIGHT=" + strconv.Itoa(sub.Height),
	}
}
