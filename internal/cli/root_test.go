package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/satcalc/internal/testutil"
)

var testEpoch = time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

// newTestOptions returns options with deterministic identifier sources.
// Reuse the same options across executions to continue the sequences.
func newTestOptions() *RootOptions {
	return &RootOptions{
		Now:   testutil.NewSteppingClock(testEpoch, time.Second).Now,
		NewID: testutil.NewSequenceUUIDs().New,
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := newRootCommand(opts)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "satcalc", cmd.Use)
	assert.Contains(t, cmd.Long, "Saturating")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"add", "words", "id", "tally"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestRoot_Demo(t *testing.T) {
	out, _, err := execute(t, newTestOptions())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "demo", []byte(out))
}

func TestRoot_DemoJSON(t *testing.T) {
	out, _, err := execute(t, newTestOptions(), "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   AddResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, AddResult{A: 3, B: 5, Result: 8, Overflow: "none"}, resp.Data)
}

func TestRoot_DemoFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "satcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 2147483647\nb: 2147483647\n"), 0644))

	out, _, err := execute(t, newTestOptions(), "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2147483647 + b: 2147483647 => result: 2147483647\n", out)
}

func TestRoot_BadConfig(t *testing.T) {
	out, _, err := execute(t, newTestOptions(), "--config", filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
}

func TestRoot_InvalidFormat(t *testing.T) {
	out, _, err := execute(t, newTestOptions(), "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "invalid format")
}

func TestRoot_UnknownFlag(t *testing.T) {
	_, _, err := execute(t, newTestOptions(), "--nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, newTestOptions(), "--verbose")
	require.NoError(t, err)
	assert.Equal(t, "a: 3 + b: 5 => result: 8\n", out)
	assert.Contains(t, errOut, "added")
	assert.Contains(t, errOut, "result=8")
}

func TestRoot_QuietByDefault(t *testing.T) {
	_, errOut, err := execute(t, newTestOptions())
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestColorEnabled(t *testing.T) {
	t.Run("buffer", func(t *testing.T) {
		assert.False(t, colorEnabled(&bytes.Buffer{}))
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
		require.NoError(t, err)
		defer f.Close()
		assert.False(t, colorEnabled(f))
	})

	t.Run("NO_COLOR wins", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, colorEnabled(os.Stderr))
	})
}

func TestRoot_VerboseLogsHaveNoEscapes(t *testing.T) {
	_, errOut, err := execute(t, newTestOptions(), "--verbose")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "\x1b[")
}
