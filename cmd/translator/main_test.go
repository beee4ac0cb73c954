package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goa.design/clue/log"
)

func testContext() context.Context {
	return log.Context(context.Background(), log.WithOutput(io.Discard))
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-o", "out.c", "-include", "stdio.h", "-include", "stdlib.h", "-validate", "prog.yaml"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "prog.yaml", cfg.input)
	assert.Equal(t, "out.c", cfg.output)
	assert.Equal(t, []string{"stdio.h", "stdlib.h"}, cfg.includes)
	assert.True(t, cfg.validate)
	assert.Equal(t, "\t", cfg.indent)

	cfg, err = parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "-", cfg.input)

	_, err = parseFlags([]string{"a.yaml", "b.yaml"}, io.Discard)
	require.Error(t, err)

	_, err = parseFlags([]string{"-unknown"}, io.Discard)
	require.Error(t, err)
}

func TestRunStdin(t *testing.T) {
	in := strings.NewReader("main: f\nfunctions:\n  - name: f\n    body:\n      - return: 0\n")
	var out bytes.Buffer
	err := run(testContext(), config{input: "-", indent: "\t"}, in, &out)
	require.NoError(t, err)
	assert.Equal(t, "int identifier_0(void) {\n\treturn 0;\n}\n\nint main(void) { return identifier_0(); }\n", out.String())
}

func TestRunAutoInclude(t *testing.T) {
	var out bytes.Buffer
	cfg := config{input: filepath.Join("..", "..", "testdata", "echo.yaml"), autoInclude: true, validate: true}
	require.NoError(t, run(testContext(), cfg, nil, &out))
	assert.True(t, strings.HasPrefix(out.String(), "#include <stdio.h>\n\n"))

	out.Reset()
	cfg.includes = []string{"<stdio.h>"}
	require.NoError(t, run(testContext(), cfg, nil, &out))
	assert.Equal(t, 1, strings.Count(out.String(), "#include"))
}

func TestRunOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meeting_point.c")
	cfg := config{input: filepath.Join("..", "..", "testdata", "meeting_point.yaml"), output: path}
	var out bytes.Buffer
	require.NoError(t, run(testContext(), cfg, nil, &out))
	assert.Empty(t, out.String())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("..", "..", "testdata", "meeting_point.c"))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimRight(string(want), "\n")+"\n", string(got))
}

func TestRunValidateAndNoCustom(t *testing.T) {
	in := strings.NewReader("functions:\n  - name: f\n    body:\n      - custom: \"\"\n      - return: 0\n")
	var out bytes.Buffer
	// Warnings alone do not fail the run.
	require.NoError(t, run(testContext(), config{input: "-", validate: true}, in, &out))

	in = strings.NewReader("functions:\n  - name: f\n    body:\n      - custom: x\n")
	err := run(testContext(), config{input: "-", noCustom: true}, in, &out)
	require.Error(t, err)
}

func TestRunDecodeError(t *testing.T) {
	err := run(testContext(), config{input: "-"}, strings.NewReader("functions: ["), io.Discard)
	require.Error(t, err)
}
