package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Fmt(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"stdin", "{'b':1, \"a\":[2]}", []string{"fmt"}, "{'a':[2,],'b':1,}\n"},
		{"dash", "[1 2]", []string{"fmt", "-"}, "[1,2,]\n"},
		{"json output", "{'a':[1,2.5]}", []string{"fmt", "-o", "json"}, "{\"a\":[1,2.5]}\n"},
		{"yaml output", "{'a':'x'}", []string{"fmt", "--output=yaml"}, "a: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.stdin, tt.args...)
			require.NoError(t, res.err, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestRun_ParseEchoes(t *testing.T) {
	path := writeFile(t, "in.vimson", "{ 'k' : 'it''s' }\n")

	res := runCLI(t, "", "parse", path)
	require.NoError(t, res.err)
	assert.Equal(t, "{ 'k' : 'it''s' }\n{'k':'it''s',}\n", res.stdout)

	res = runCLI(t, "", "parse", "--echo=false", path)
	require.NoError(t, res.err)
	assert.Equal(t, "{'k':'it''s',}\n", res.stdout)

	res = runCLI(t, "[1]", "parse")
	require.NoError(t, res.err)
	assert.Equal(t, "[1]\n[1,]\n", res.stdout)
}

func TestRun_ParseError(t *testing.T) {
	res := runCLI(t, "[1, 2", "fmt", "--no-color")
	require.ErrorIs(t, res.err, errReported)
	assert.Empty(t, res.stdout)
	assert.Equal(t,
		"<stdin>:1:6: ExpectedToken: expected ]\n[1, 2\n     ^ expected ]\n",
		res.stderr)
}

func TestRun_Options(t *testing.T) {
	res := runCLI(t, "[[1]]", "fmt", "--max-depth", "1", "--no-color")
	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "DepthExceeded")

	res = runCLI(t, "[[1]]", "fmt", "--max-depth", "0")
	require.NoError(t, res.err)

	res = runCLI(t, "1 2", "fmt")
	require.NoError(t, res.err)
	assert.Equal(t, "1\n", res.stdout)

	res = runCLI(t, "1 2", "fmt", "--reject-trailing", "--no-color")
	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "TrailingData")

	res = runCLI(t, "1", "fmt", "--output", "xml")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "vimson: ")
}

func TestRun_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "output: json\nrejectTrailing: true\n")

	res := runCLI(t, "{'a':1}", "fmt", "--config", cfg)
	require.NoError(t, res.err)
	assert.Equal(t, "{\"a\":1}\n", res.stdout)

	res = runCLI(t, "{'a':1} x", "fmt", "--config", cfg, "--no-color")
	require.ErrorIs(t, res.err, errReported)

	// Flags take priority over the file.
	res = runCLI(t, "{'a':1}", "fmt", "--config", cfg, "-o", "vimson")
	require.NoError(t, res.err)
	assert.Equal(t, "{'a':1,}\n", res.stdout)
}

func TestRun_Conversions(t *testing.T) {
	res := runCLI(t, "{'b':[1,2.0],'a':'x'}", "to-json")
	require.NoError(t, res.err)
	assert.Equal(t, "{\"a\":\"x\",\"b\":[1,2.0]}\n", res.stdout)

	res = runCLI(t, "{'b':[1,2.0],'a':'x'}", "to-yaml")
	require.NoError(t, res.err)
	assert.Equal(t, "a: x\nb:\n    - 1\n    - 2.0\n", res.stdout)

	res = runCLI(t, `{"a": true, "b": [1, 1.5]}`, "from-json")
	require.NoError(t, res.err)
	assert.Equal(t, "{'a':1,'b':[1,1.5,],}\n", res.stdout)

	res = runCLI(t, `{"data": {"items": ["x", "y"]}}`, "from-json", "--path", "data.items")
	require.NoError(t, res.err)
	assert.Equal(t, "['x','y',]\n", res.stdout)

	res = runCLI(t, `{"data": {}}`, "from-json", "--path", "data.missing")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, `path "data.missing" not found`)

	res = runCLI(t, "name: x\nports: [80, 443]\n", "from-yaml")
	require.NoError(t, res.err)
	assert.Equal(t, "{'name':'x','ports':[80,443,],}\n", res.stdout)

	res = runCLI(t, "a: null\n", "from-yaml")
	require.Error(t, res.err)
}

func TestRun_Hash(t *testing.T) {
	res := runCLI(t, "{ 'a' : [1, 2] }", "hash")
	require.NoError(t, res.err)

	sum := sha256.Sum256([]byte("{'a':[1,2,],}"))
	assert.Equal(t, hex.EncodeToString(sum[:])+"\n", res.stdout)

	res = runCLI(t, "{'a':[1,2,],}", "hash", "--check", hex.EncodeToString(sum[:]))
	require.NoError(t, res.err)
	assert.Equal(t, "OK\n", res.stdout)

	res = runCLI(t, "{'a':[1]}", "hash", "--check", hex.EncodeToString(sum[:]))
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "digest mismatch")
}

func TestRun_Inspect(t *testing.T) {
	res := runCLI(t, "{'a':[1,'x'],'b':2.5}", "inspect")
	require.NoError(t, res.err)
	for _, want := range []string{"$['a'][1]", "(2 items)", "'x'", "2.5", "float"} {
		assert.Contains(t, res.stdout, want)
	}

	res = runCLI(t, "{'a':[1,'x']}", "inspect", "--dump", "--no-color")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"a"`)
	assert.Contains(t, res.stdout, `"x"`)
}

func TestRun_Version(t *testing.T) {
	res := runCLI(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "vimson "+libVersion+"\n", res.stdout)
}

func TestRun_MissingFile(t *testing.T) {
	res := runCLI(t, "", "fmt", filepath.Join(t.TempDir(), "nope.vimson"))
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "failed to read input")
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 60)
	res := runCLI(t, "['"+long+"']", "inspect")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "'"+strings.Repeat("a", 36)+"...")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "abc", "abc"},
		{"exact", strings.Repeat("a", 10), strings.Repeat("a", 10)},
		{"ascii", strings.Repeat("a", 12), strings.Repeat("a", 7) + "..."},
		{"rune on cut", strings.Repeat("a", 6) + "é" + "bbbb", strings.Repeat("a", 6) + "..."},
		{"rune before cut", strings.Repeat("a", 5) + "é" + "bbbb", strings.Repeat("a", 5) + "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, 10)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), 10)
		})
	}
}

func TestRun_InspectMultibytePreview(t *testing.T) {
	res := runCLI(t, "['"+strings.Repeat("a", 35)+"日本語']", "inspect")
	require.NoError(t, res.err)
	assert.True(t, utf8.ValidString(res.stdout))
	assert.Contains(t, res.stdout, "'"+strings.Repeat("a", 35)+"...")
}

func TestRun_NoColorIsScopedToRun(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	res := runCLI(t, "[1, 2", "fmt", "--no-color")
	require.ErrorIs(t, res.err, errReported)
	assert.NotContains(t, res.stderr, "\x1b[")
	assert.False(t, color.NoColor)

	res = runCLI(t, "[1, 2", "fmt")
	require.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "\x1b[")
}
