package ast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoParser is returned when no HDL front-end is configured.
var ErrNoParser = errors.New("no parser configured")

// ParseRequest describes one file to parse.
type ParseRequest struct {
	Path        string
	IncludeDirs []string
	Defines     []string
}

// Parser turns a cleaned source file into a syntax tree.
type Parser interface {
	Parse(ctx context.Context, req ParseRequest) (*Source, error)
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(ctx context.Context, req ParseRequest) (*Source, error)

// Parse implements Parser.
func (f ParserFunc) Parse(ctx context.Context, req ParseRequest) (*Source, error) {
	return f(ctx, req)
}

// ParseError reports a front-end failure for one file.
type ParseError struct {
	Path   string
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse %s: %v: %s", e.Path, e.Err, e.Detail)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CommandParser runs an external front-end that prints the JSON form of the
// tree on stdout. The command receives `-I dir` and `-D macro` arguments
// followed by the file path.
type CommandParser struct {
	Command []string
}

// NewCommandParser returns a parser for the given command line. An empty
// command yields a parser that always fails with ErrNoParser.
func NewCommandParser(command []string) *CommandParser {
	return &CommandParser{Command: command}
}

// Args returns the full argument list passed to the front-end for req.
func (p *CommandParser) Args(req ParseRequest) []string {
	args := make([]string, 0, len(p.Command)+2*len(req.IncludeDirs)+2*len(req.Defines)+1)
	if len(p.Command) > 1 {
		args = append(args, p.Command[1:]...)
	}
	for _, dir := range req.IncludeDirs {
		args = append(args, "-I", dir)
	}
	for _, def := range req.Defines {
		args = append(args, "-D", def)
	}
	return append(args, req.Path)
}

// Parse implements Parser.
func (p *CommandParser) Parse(ctx context.Context, req ParseRequest) (*Source, error) {
	if p == nil || len(p.Command) == 0 {
		return nil, &ParseError{Path: req.Path, Err: ErrNoParser}
	}

	//nolint:gosec // G204: the front-end command comes from user configuration
	cmd := exec.CommandContext(ctx, p.Command[0], p.Args(req)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ParseError{Path: req.Path, Detail: strings.TrimSpace(stderr.String()), Err: err}
	}

	src, err := DecodeJSON(&stdout)
	if err != nil {
		return nil, &ParseError{Path: req.Path, Err: err}
	}
	return src, nil
}
