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

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
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

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetWithDefault(rdr("\n"), "Dirección", "Calle 1", &out)
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", got)
	assert.Contains(t, out.String(), "Dirección [Calle 1]")

	got, err = GetWithDefault(rdr("Calle 2\n"), "Dirección", "Calle 1", &out)
	require.NoError(t, err)
	assert.Equal(t, "Calle 2", got)
}

func TestGetList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "comma separated", input: "Consolas, Mouse\n", expected: []string{"Consolas", "Mouse"}},
		{name: "blank items dropped", input: " ,Consolas,,\n", expected: []string{"Consolas"}},
		{name: "empty line", input: "\n", expected: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetList(rdr(tc.input), "Gustos", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestGetYesNo(t *testing.T) {
	for input, want := range map[string]bool{"s\n": true, "Sí\n": true, "yes\n": true, "n\n": false, "\n": false} {
		var out bytes.Buffer
		got, err := GetYesNo(rdr(input), "¿Acepta?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("secreto"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secreto", string(pw))

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	assert.Error(t, err)
}
