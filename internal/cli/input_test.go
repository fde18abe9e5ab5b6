package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanner(s string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var w bytes.Buffer
	sc := scanner("  hello world \nsecond")

	got, err := GetSimpleText(sc, "Say something", &w)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Say something\n> ", w.String())

	got, err = GetSimpleText(sc, "Again", &w)
	require.NoError(t, err)
	assert.Equal(t, "second", got, "last line without newline is returned")

	_, err = GetSimpleText(sc, "More", &w)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_Terminal(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var w bytes.Buffer
	pw, err := GetPassword(scanner(""), &w)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", w.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = GetPassword(scanner(""), &w)
	assert.EqualError(t, err, "tty gone")
}

func TestGetPassword_PipedInput(t *testing.T) {
	origTerm := isTerminal
	t.Cleanup(func() { isTerminal = origTerm })
	isTerminal = func(int) bool { return false }

	var w bytes.Buffer
	pw, err := GetPassword(scanner("admin123\n"), &w)
	require.NoError(t, err)
	assert.Equal(t, []byte("admin123"), pw)
	assert.Contains(t, w.String(), "Enter password")
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false}
	for in, want := range tests {
		got, err := confirm(scanner(in), "Sure?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}
