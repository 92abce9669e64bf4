package executor

import (
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := New()
	ctx := context.Background()

	out, err := e.Execute(ctx, "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	_, err = e.Execute(ctx, "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stderr: boom")
}

func TestExecuteInDir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()

	_, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "echo x > marker")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "marker"))
}

func TestExecuteWithInput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	input := strings.Repeat("ữ", 200000)

	out, err := New().ExecuteWithInput(context.Background(), input, "sh", "-c", "wc -c")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(len(input)), strings.TrimSpace(out))
}

func TestLastLines(t *testing.T) {
	assert.Equal(t, "a\nb", lastLines("a\nb", 5))
	assert.Equal(t, "c\nd", lastLines("a\nb\nc\nd", 2))
}
