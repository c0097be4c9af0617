package shell

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

type Parser interface {
	Parse(line string) (Command, error)
}

// Lookup resolves a command name on the search path.
type Lookup interface {
	ResolveFirst(name string) (string, bool, error)
}

type DefaultParser struct {
	lookup    Lookup
	newReader func(string) io.RuneReader
}

func NewDefaultParser(lookup Lookup) *DefaultParser {
	d := &DefaultParser{
		lookup: lookup,
		newReader: func(s string) io.RuneReader {
			return strings.NewReader(s)
		},
	}

	return d
}

// tokenBuffer tracks the byte span of the field being read so fields are
// sliced from the input unchanged, including bytes that are not valid UTF-8.
type tokenBuffer struct {
	line  string
	start int
}

func newTokenBuffer(line string) *tokenBuffer {
	return &tokenBuffer{line: line, start: -1}
}

func (tokenBuffer *tokenBuffer) isEmpty() bool {
	return tokenBuffer.start < 0
}

func (tokenBuffer *tokenBuffer) extend(at int) {
	if tokenBuffer.isEmpty() {
		tokenBuffer.start = at
	}
}

func (tokenBuffer *tokenBuffer) flushIfNotEmpty(args []string, end int) []string {
	if !tokenBuffer.isEmpty() {
		args = append(args, tokenBuffer.line[tokenBuffer.start:end])
		tokenBuffer.start = -1
	}

	return args
}

// tokens holds the whitespace-split fields of a trimmed line and the byte
// offset just past the single separator rune that ends the first field.
// rest is len(line) when the line is a single field.
type tokens struct {
	fields []string
	rest   int
}

func (p *DefaultParser) tokenize(line string) (tokens, error) {
	runeReader := p.newReader(line)
	tokenBuffer := newTokenBuffer(line)

	tk := tokens{fields: []string{}, rest: len(line)}
	pos := 0
	restSet := false

	for {
		ch, size, err := runeReader.ReadRune()

		if err == io.EOF {
			break
		}

		if err != nil {
			return tokens{}, err
		}

		at := pos
		pos += size

		if unicode.IsSpace(ch) {
			if !restSet && !tokenBuffer.isEmpty() {
				tk.rest = pos
				restSet = true
			}
			tk.fields = tokenBuffer.flushIfNotEmpty(tk.fields, at)
			continue
		}

		tokenBuffer.extend(at)
	}

	tk.fields = tokenBuffer.flushIfNotEmpty(tk.fields, pos)

	return tk, nil
}

// Parse classifies one raw input line. Built-in names are matched before any
// search path lookup.
func (p *DefaultParser) Parse(raw string) (Command, error) {
	line := strings.TrimSpace(raw)

	tk, err := p.tokenize(line)
	if err != nil {
		return nil, &Error{Op: "read input", Kind: KindIO, Err: err}
	}

	if len(tk.fields) == 0 {
		return Empty{}, nil
	}

	name := tk.fields[0]

	switch name {
	case nameExit:
		return p.parseExit(tk.fields)
	case nameEcho:
		return BuiltIn{Cmd: Echo{Content: line[tk.rest:]}}, nil
	case nameType:
		return p.parseType(tk.fields)
	}

	path, ok, err := p.lookup.ResolveFirst(name)
	if err != nil {
		return nil, err
	}

	if !ok {
		return NotFound{Name: name}, nil
	}

	return External{Name: name, Path: path, Args: tk.fields[1:]}, nil
}

func (p *DefaultParser) parseExit(fields []string) (Command, error) {
	if len(fields) < 2 {
		return BuiltIn{Cmd: Exit{Code: 0}}, nil
	}

	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, &Error{Op: "exit", Kind: KindUserInput, Err: err}
	}

	return BuiltIn{Cmd: Exit{Code: code}}, nil
}

func (p *DefaultParser) parseType(fields []string) (Command, error) {
	// no target: nothing to print, just re-prompt
	if len(fields) < 2 {
		return Empty{}, nil
	}

	target := fields[1]

	if IsBuiltin(target) {
		return BuiltIn{Cmd: Type{Name: target, Kind: TypeBuiltIn{}}}, nil
	}

	path, ok, err := p.lookup.ResolveFirst(target)
	if err != nil {
		return nil, err
	}

	if ok {
		return BuiltIn{Cmd: Type{Name: target, Kind: TypeOther{Path: path}}}, nil
	}

	return BuiltIn{Cmd: Type{Name: target, Kind: TypeInvalid{}}}, nil
}
