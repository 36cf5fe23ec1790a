package util

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteToFile(t *testing.T) {
	file := path.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteToFile(file, "a", "b"))

	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", string(bs))
}

func TestAppendToFile(t *testing.T) {
	file := path.Join(t.TempDir(), "out.txt")
	require.NoError(t, AppendToFile(file, "a"))
	require.NoError(t, AppendToFile(file, "b", "c"))

	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\n", string(bs))
}
