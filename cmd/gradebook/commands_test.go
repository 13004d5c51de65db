package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-gradebook/internal/cli"
)

func writeFixture(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	files := []struct{ name, content string }{
		{"courses.csv", "id,name,teacher\n1,Math,Mr. X\n2,Art,Ms. Y\n"},
		{"students.csv", "id,name\n1,A\n"},
		{"tests.csv", "id,course_id,weight\n1,1,100\n2,2,100\n"},
		{"marks.csv", "test_id,student_id,mark\n1,1,70\n2,1,90\n"},
	}

	args := make([]string, 0, len(files)+1)
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		require.NoError(t, os.WriteFile(path, []byte(f.content), 0o600))
		args = append(args, path)
	}
	return append(args, filepath.Join(dir, "out.json"))
}

func TestExecute(t *testing.T) {
	t.Setenv("GRADEBOOK_TEMPORAL_HOST_PORT", "")

	t.Run("root command builds the report", func(t *testing.T) {
		args := writeFixture(t)

		code, err := newRootCmd().execute(context.Background(), args)
		require.NoError(t, err)
		assert.Equal(t, cli.ExitOK, code)

		data, err := os.ReadFile(args[4])
		require.NoError(t, err)
		assert.Contains(t, string(data), `"totalAverage": 80`)
	})

	t.Run("report subcommand", func(t *testing.T) {
		args := writeFixture(t)

		code, err := newRootCmd().execute(context.Background(), append([]string{"report", "--log-level", "error"}, args...))
		require.NoError(t, err)
		assert.Equal(t, cli.ExitOK, code)
	})

	t.Run("missing arguments", func(t *testing.T) {
		code, err := newRootCmd().execute(context.Background(), []string{"a.csv"})
		assert.Equal(t, cli.ExitFailure, code)

		var invErr *cli.InvocationError
		require.True(t, errors.As(err, &invErr))
		assert.Equal(t, "Error: arguments missing", invErr.Message)
	})

	t.Run("invalid log level", func(t *testing.T) {
		args := writeFixture(t)
		code, err := newRootCmd().execute(context.Background(), append([]string{"--log-level", "loud"}, args...))
		require.Error(t, err)
		assert.Equal(t, cli.ExitFailure, code)
	})

	t.Run("worker rejects arguments", func(t *testing.T) {
		_, err := newRootCmd().execute(context.Background(), []string{"worker", "extra"})
		assert.Error(t, err)
	})
}
