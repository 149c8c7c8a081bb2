package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	oldTerm, oldRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal = oldTerm
		readPassword = oldRead
	})
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)

	var out bytes.Buffer
	pw, err := GetPassword(rdr("ignored\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), &out)
	assert.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	var out bytes.Buffer
	pw, err := GetPassword(rdr("piped\nnext\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("piped"), pw)
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in), func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetConfirmation(rdr(tt.in), "Sure?", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Sure? (y/n)")
		})
	}
}
