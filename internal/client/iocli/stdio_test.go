package iocli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdio_ReadInput(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdio(strings.NewReader("acme.owner\nsecond\n"), &out)

	first, err := stdio.ReadInput("Username: ")
	require.NoError(t, err)
	assert.Equal(t, "acme.owner", first)

	second, err := stdio.ReadInput("Again: ")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	assert.Equal(t, "Username: Again: ", out.String())
}

func TestStdio_ReadPassword_NotTerminal(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdio(strings.NewReader("  s3cret-pass  \n"), &out)

	password, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", password)
	assert.Equal(t, "Password: ", out.String())
}

func TestStdio_LastLineWithoutNewline(t *testing.T) {
	stdio := NewStdio(strings.NewReader("tail"), &bytes.Buffer{})

	line, err := stdio.ReadInput("> ")
	require.NoError(t, err)
	assert.Equal(t, "tail", line)

	_, err = stdio.ReadInput("> ")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestStdio_Print(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdio(strings.NewReader(""), &out)

	stdio.Println("signed in as", "acme")
	stdio.Printf("%d drafts\n", 3)

	assert.Equal(t, "signed in as acme\n3 drafts\n", out.String())
}
