package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultPrompt is written before every read.
const DefaultPrompt = "$ "

type Shell struct {
	in       *bufio.Reader
	Out      io.Writer
	Err      io.Writer
	prompt   string
	logger   *slog.Logger
	resolver *Resolver
	parser   Parser
	executor Executor
}

type Option func(*Shell)

// WithSearchPath replaces the search path read from PATH.
func WithSearchPath(path SearchPath) Option {
	return func(s *Shell) {
		s.resolver = NewResolver(path)
	}
}

func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(reader io.Reader, out, errw io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:     bufio.NewReader(reader),
		Out:    out,
		Err:    errw,
		prompt: DefaultPrompt,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.resolver == nil {
		s.resolver = NewResolver(SearchPathFromEnv())
	}

	s.parser = NewDefaultParser(s.resolver)
	s.executor = NewDefaultExecutor(IOBindings{
		Stdin:  childStdin(reader),
		Stdout: out,
		Stderr: errw,
	}, s.logger)

	return s
}

// childStdin returns the stream external commands inherit. Only an *os.File
// is passed through; any other reader would be drained by os/exec's copy
// goroutine, so children get the null device instead.
func childStdin(reader io.Reader) io.Reader {
	if f, ok := reader.(*os.File); ok {
		return f
	}
	return nil
}

// SearchPath returns the directories the shell resolves commands against.
func (s *Shell) SearchPath() SearchPath {
	return s.resolver.SearchPath()
}

// Run reads and executes lines until exit, end of input, or a failure.
// The returned code is the status the process should exit with.
func (s *Shell) Run(ctx context.Context) (int, error) {
	s.logger.Debug("shell started", "search_path_dirs", s.resolver.SearchPath().Len())

	for {
		fmt.Fprint(s.Out, s.prompt)

		line, readErr := s.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return 1, &Error{Op: "read input", Kind: KindIO, Err: readErr}
		}

		// end of input with nothing pending
		if readErr != nil && line == "" {
			s.logger.Debug("end of input")
			return 0, nil
		}

		cmd, err := s.parser.Parse(line)
		if err != nil {
			return 1, err
		}

		s.logger.Debug("parsed command", "type", fmt.Sprintf("%T", cmd))

		cont, err := s.executor.Execute(ctx, cmd)
		if err != nil {
			return 1, err
		}

		if !cont {
			return ExitCode(cmd), nil
		}

		if readErr != nil {
			s.logger.Debug("end of input")
			return 0, nil
		}
	}
}
