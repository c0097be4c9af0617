package shell

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"syscall"
)

// SearchPath is the ordered list of directories consulted for external
// commands. It is built once and never mutated.
type SearchPath struct {
	dirs []string
}

// NewSearchPath splits a PATH-style value using the platform list separator.
func NewSearchPath(value string) SearchPath {
	return SearchPath{dirs: filepath.SplitList(value)}
}

// SearchPathFromEnv reads PATH from the process environment.
func SearchPathFromEnv() SearchPath {
	return NewSearchPath(os.Getenv("PATH"))
}

// Dirs returns a copy of the directories in lookup order.
func (p SearchPath) Dirs() []string {
	return slices.Clone(p.dirs)
}

// Len returns the number of directories.
func (p SearchPath) Len() int {
	return len(p.dirs)
}

// CandidateState is the outcome of probing one directory.
type CandidateState int

const (
	CandidateNotFound CandidateState = iota
	CandidateNotRunnable
	CandidateRunnable
)

func (s CandidateState) String() string {
	switch s {
	case CandidateRunnable:
		return "runnable"
	case CandidateNotRunnable:
		return "not runnable"
	default:
		return "not found"
	}
}

// Candidate is the result of a single probe. Path is only set when runnable.
type Candidate struct {
	State CandidateState
	Path  string
}

// executable bits for owner, group and other
const execMask fs.FileMode = 0o111

// Resolver locates executables on a SearchPath.
type Resolver struct {
	path SearchPath
	stat func(name string) (fs.FileInfo, error)
}

// NewResolver returns a Resolver that stats candidates on the real filesystem.
func NewResolver(path SearchPath) *Resolver {
	return &Resolver{
		path: path,
		stat: os.Stat,
	}
}

// SearchPath returns the directories the resolver walks.
func (r *Resolver) SearchPath() SearchPath {
	return r.path
}

// Probe checks whether dir/name is a runnable regular file.
func (r *Resolver) Probe(dir, name string) (Candidate, error) {
	pathToCheck := filepath.Join(dir, name)

	info, err := r.stat(pathToCheck)
	if err != nil {
		// a PATH entry that is a plain file yields ENOTDIR, which is still "absent"
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return Candidate{State: CandidateNotFound}, nil
		}
		return Candidate{}, &Error{Op: "stat", Kind: KindResolution, Path: pathToCheck, Err: err}
	}

	if !info.Mode().IsRegular() {
		return Candidate{State: CandidateNotFound}, nil
	}

	if info.Mode().Perm()&execMask == 0 {
		return Candidate{State: CandidateNotRunnable}, nil
	}

	return Candidate{State: CandidateRunnable, Path: pathToCheck}, nil
}

// ResolveFirst returns the first runnable match in search path order.
func (r *Resolver) ResolveFirst(name string) (string, bool, error) {
	for _, dir := range r.path.dirs {
		c, err := r.Probe(dir, name)
		if err != nil {
			return "", false, err
		}

		if c.State == CandidateRunnable {
			return c.Path, true, nil
		}
	}

	return "", false, nil
}
