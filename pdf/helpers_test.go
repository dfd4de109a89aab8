package pdf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFakeGhostscript writes an executable shell script standing in for gs
func writeFakeGhostscript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ghostscript scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "gs")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// outputFileScript extracts the -sOutputFile argument into $out
const outputFileScript = `out=""
for arg in "$@"; do
  case "$arg" in
    -sOutputFile=*) out="${arg#-sOutputFile=}" ;;
  esac
done`
