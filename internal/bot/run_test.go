package bot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contactbook/internal/config"
)

func TestRun_UntilExit(t *testing.T) {
	b := newTestBot(t, "en")
	in := strings.NewReader("hello\n\nadd Anna 0501234567\nexit\nadd Bob 0501112233\n")
	var out bytes.Buffer

	require.NoError(t, b.Run(context.Background(), in, &out))

	transcript := out.String()
	assert.True(t, strings.HasPrefix(transcript, "How can I help you?\n"+config.ReplPrompt))
	assert.Contains(t, transcript, "Contact Anna created with phone +380501234567.\n")
	assert.True(t, strings.HasSuffix(transcript, "Good bye!\n"))
	assert.False(t, b.Book.Has("Bob"), "lines after exit are not processed")
}

func TestRun_EndOfInput(t *testing.T) {
	b := newTestBot(t, "en")
	var out bytes.Buffer

	require.NoError(t, b.Run(context.Background(), strings.NewReader("add Anna 0501234567"), &out))
	assert.True(t, b.Book.Has("Anna"))
}

func TestRun_ContextCancelled(t *testing.T) {
	b := newTestBot(t, "en")
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, pr, io.Discard) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRun_ReadError(t *testing.T) {
	err := newTestBot(t, "en").Run(context.Background(), failingReader{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrReadInput)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRun_WriteError(t *testing.T) {
	err := newTestBot(t, "en").Run(context.Background(), strings.NewReader("hello\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrWriteOutput)
}
