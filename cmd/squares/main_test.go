package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(normalizeArgs(append([]string{"squares"}, args...)))
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"equal weights", []string{"1", "2", "4"}, "7.0\n"},
		{"repeated weights flag", []string{"--weights", "1", "-w", "0.5", "2", "4"}, "6.0\n"},
		{"quoted weights", []string{"-w", "1 0.5", "2", "4"}, "6.0\n"},
		{"comma weights", []string{"-w", "1,0.5", "2", "4"}, "6.0\n"},
		{"quoted numbers", []string{"1 2", " 4 "}, "7.0\n"},
		{"fractional result", []string{"1", "2"}, "2.5\n"},
		{"negative after separator", []string{"--", "-2", "2"}, "4.0\n"},
		{"leading negative", []string{"-1", "2"}, "2.5\n"},
		{"negative after weights flag", []string{"-w", "1 1", "-1", "2"}, "2.5\n"},
		{"weights after numbers", []string{"2", "4", "--weights", "1", "0.5"}, "6.0\n"},
		{"short weights after numbers", []string{"2", "4", "-w", "1", "0.5"}, "6.0\n"},
		{"weights after numbers with value", []string{"2", "4", "--weights=1", "0.5"}, "6.0\n"},
		{"negative weight after numbers", []string{"2", "4", "-w", "-1", "0.5"}, "2.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	tests := []struct {
		name string
		args []string
		is   func(error) bool
	}{
		{"no numbers", nil, apperrors.IsInvalidArgument},
		{"length mismatch", []string{"-w", "1 0.5", "1", "2", "4"}, apperrors.IsInvalidArgument},
		{"bad number", []string{"1", "two"}, apperrors.IsFormat},
		{"bad weight", []string{"-w", "x", "1"}, apperrors.IsFormat},
		{"unknown flag", []string{"--bogus", "1"}, apperrors.IsInvalidArgument},
		{"greedy weights flag", []string{"--weights", "1", "0.5", "2", "4"}, apperrors.IsInvalidArgument},
		{"flag after numbers", []string{"1", "2", "--record"}, apperrors.IsInvalidArgument},
		{"empty trailing weights", []string{"1", "2", "--weights"}, apperrors.IsInvalidArgument},
		{"both weight sources", []string{"-w", "1", "--weights-file", missing, "1"}, apperrors.IsInvalidArgument},
		{"missing weights file", []string{"--weights-file", missing, "1"}, apperrors.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error kind: %v", err)
			assert.Empty(t, out, "nothing is printed on failure")
		})
	}
}

func TestLengthMismatchMessage(t *testing.T) {
	_, _, err := run(t, "-w", "1 0.5", "1", "2", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2 weights for 3 numbers")
	assert.Equal(t, 2, apperrors.ExitCode(err))
}

func TestTrailingFlagMessage(t *testing.T) {
	_, _, err := run(t, "1", "2", "--bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must come before the numbers")
	assert.Equal(t, 2, apperrors.ExitCode(err))
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"leading negative", []string{"squares", "-1", "2"}, []string{"squares", "--", "-1", "2"}},
		{"negative after value flag", []string{"squares", "-w", "-1", "-2"}, []string{"squares", "-w", "-1", "--", "-2"}},
		{"negative after bool flag", []string{"squares", "--record", "-3"}, []string{"squares", "--record", "--", "-3"}},
		{"positive first", []string{"squares", "1", "-2"}, []string{"squares", "1", "-2"}},
		{"subcommand", []string{"squares", "file", "x.txt"}, []string{"squares", "file", "x.txt"}},
		{"separator present", []string{"squares", "--", "-1"}, []string{"squares", "--", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(tt.in))
		})
	}
}

func TestFileCommand(t *testing.T) {
	out, _, err := run(t, "file", writeFile(t, "1 2 4\nignored line\n"))
	require.NoError(t, err)
	assert.Equal(t, "7.0\n", out)

	numbers := writeFile(t, "2 4\n")
	weights := writeFile(t, "1 0.5\n")
	out, _, err = run(t, "file", "--weights", weights, numbers)
	require.NoError(t, err)
	assert.Equal(t, "6.0\n", out)

	empty := writeFile(t, "")
	out, _, err = run(t, "file", empty)
	require.NoError(t, err)
	assert.Equal(t, "0.0\n", out)
}

func TestFileCommandErrors(t *testing.T) {
	_, _, err := run(t, "file")
	assert.True(t, apperrors.IsInvalidArgument(err))

	_, _, err = run(t, "file", filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 4, apperrors.ExitCode(err))

	_, _, err = run(t, "file", writeFile(t, "1 2 three\n"))
	assert.True(t, apperrors.IsFormat(err))
	assert.Equal(t, 3, apperrors.ExitCode(err))
}

func TestRecordUsesMemoryHistory(t *testing.T) {
	t.Setenv("SQUARES_DATABASE_URL", "")
	t.Setenv("SQUARES_HERMES_URL", "")
	t.Setenv("SQUARES_LOG_FORMAT", "text")

	out, logs, err := run(t, "--record", "1", "2", "4")
	require.NoError(t, err)
	assert.Equal(t, "7.0\n", out)
	assert.Contains(t, logs, "calculation recorded")
	assert.Contains(t, logs, "in memory only")
}

func TestRecordBadConfig(t *testing.T) {
	_, _, err := run(t, "--record", "--config", filepath.Join(t.TempDir(), "none.yaml"), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{7, "7.0"},
		{0, "0.0"},
		{6.25, "6.25"},
		{1234567.5, "1234567.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e20, "1e+20"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatResult(tt.in), "formatResult(%v)", tt.in)
	}
}
