package shell

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor() (*DefaultExecutor, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	e := NewDefaultExecutor(IOBindings{Stdout: &out, Stderr: &errb}, slog.New(slog.DiscardHandler))
	return e, &out, &errb
}

func TestExecutor_Execute(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected string
		cont     bool
	}{
		{
			name:     "empty",
			cmd:      Empty{},
			expected: "",
			cont:     true,
		},
		{
			name:     "not found",
			cmd:      NotFound{Name: "nonexistentcmd123"},
			expected: "nonexistentcmd123: command not found\n",
			cont:     true,
		},
		{
			name:     "exit stops the loop",
			cmd:      BuiltIn{Cmd: Exit{Code: 3}},
			expected: "",
			cont:     false,
		},
		{
			name:     "echo",
			cmd:      BuiltIn{Cmd: Echo{Content: "  hello   world"}},
			expected: "  hello   world\n",
			cont:     true,
		},
		{
			name:     "echo empty",
			cmd:      BuiltIn{Cmd: Echo{}},
			expected: "\n",
			cont:     true,
		},
		{
			name:     "type builtin",
			cmd:      BuiltIn{Cmd: Type{Name: "echo", Kind: TypeBuiltIn{}}},
			expected: "echo is a shell builtin\n",
			cont:     true,
		},
		{
			name:     "type other",
			cmd:      BuiltIn{Cmd: Type{Name: "ls", Kind: TypeOther{Path: "/bin/ls"}}},
			expected: "ls is /bin/ls\n",
			cont:     true,
		},
		{
			name:     "type invalid",
			cmd:      BuiltIn{Cmd: Type{Name: "nope", Kind: TypeInvalid{}}},
			expected: "nope: not found\n",
			cont:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, out, _ := newTestExecutor()

			cont, err := e.Execute(context.Background(), tt.cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.cont, cont)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestExecutor_External(t *testing.T) {
	dir := t.TempDir()

	script := filepath.Join(dir, "greet")
	writeScript(t, script, "#!/bin/sh\necho \"$1:$2\"\necho oops >&2\n")

	failing := filepath.Join(dir, "fail")
	writeScript(t, failing, "#!/bin/sh\nexit 5\n")

	t.Run("runs with args and streams", func(t *testing.T) {
		e, out, errb := newTestExecutor()

		cont, err := e.Execute(context.Background(), External{Name: "greet", Path: script, Args: []string{"a", "b"}})

		require.NoError(t, err)
		assert.True(t, cont)
		assert.Equal(t, "a:b\n", out.String())
		assert.Equal(t, "oops\n", errb.String())
	})

	t.Run("child exit status is ignored", func(t *testing.T) {
		e, _, _ := newTestExecutor()

		cont, err := e.Execute(context.Background(), External{Name: "fail", Path: failing, Args: []string{}})

		require.NoError(t, err)
		assert.True(t, cont)
	})

	t.Run("vanished binary is a spawn error", func(t *testing.T) {
		e, out, _ := newTestExecutor()

		_, err := e.Execute(context.Background(), External{Name: "gone", Path: filepath.Join(dir, "gone")})

		require.Error(t, err)
		assert.True(t, IsKind(err, KindSpawn))
		assert.NotContains(t, out.String(), "command not found")
	})
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	require.NoError(t, os.Chmod(path, 0o755))
}
