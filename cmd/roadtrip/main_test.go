package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoads(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roads.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_PromptsForFile(t *testing.T) {
	path := writeRoads(t, "A;B;5\nB;C;3\nA;C;10\n")
	t.Setenv("ROADTRIP_FILE", "")
	t.Setenv("DB_DSN", "")

	var out, errOut strings.Builder
	in := strings.NewReader(path + "\nro\nA\nC\n\n")
	code := run(nil, in, &out, &errOut)

	assert.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "Enter input file name: "+
		"Enter action> Enter departure city: Enter destination city: A-B-C (8 km)\n\n"+
		"Enter action> Done and done!\n", out.String())
}

func TestRun_FileFlag(t *testing.T) {
	path := writeRoads(t, "A;B;4\n")

	var out, errOut strings.Builder
	code := run([]string{"-file", path, "-strategy", "scan"}, strings.NewReader("ro\nB\nA\n\n"), &out, &errOut)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "No route found between 'B' and 'A'.\n")
}

func TestRun_Dump(t *testing.T) {
	path := writeRoads(t, "B;C;3\nA;C;10\nA;B;5\nA;B;6\n")

	var out, errOut strings.Builder
	code := run([]string{"-file", path, "-dump"}, strings.NewReader(""), &out, &errOut)

	assert.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "A;B;6\nA;C;10\nB;C;3\n", out.String())
}

func TestRun_UnreadableFile(t *testing.T) {
	path := writeRoads(t, "A;B;4\nA;B\n")

	var out, errOut strings.Builder
	code := run([]string{"-file", path}, strings.NewReader(""), &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: '"+path+"' can not be read.\n", out.String())

	out.Reset()
	missing := filepath.Join(t.TempDir(), "nope.txt")
	code = run([]string{"-file", missing}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: '"+missing+"' can not be read.\n", out.String())
}

func TestRun_BadFlags(t *testing.T) {
	var out, errOut strings.Builder
	code := run([]string{"-strategy", "greedy"}, strings.NewReader(""), &out, &errOut)
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, errOut.String())
}
