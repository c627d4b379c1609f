package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rolodex/internal/model"
)

func TestPrompter_ReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "successful read", input: "test input\n", expected: "test input"},
		{name: "extra whitespace", input: "  test input  \n", expected: "test input"},
		{name: "empty line", input: "\n", expected: ""},
		{name: "final line without newline", input: "last", expected: "last"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input), io.Discard)
			got, err := p.ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPrompter_ReadLineEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	_, err := p.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_Cancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pr.Close() }()
	defer func() { _ = pw.Close() }()

	p := NewPrompter(pr, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.ReadLine(ctx)
	assert.Equal(t, ErrInputCancelled, err)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "Yes\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "sure\n", want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader(tt.input), &out)

		got, err := p.Confirm(context.Background(), "Delete 'Bob'?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Delete 'Bob'? (y/n)")
	}
}

func TestPrompter_AskContactFields(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Jane Doe\n555-7777\njane@work.com\n\n"), &out)

	fields, err := p.AskContactFields(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ContactFields{Name: "Jane Doe", Phone: "555-7777", Email: "jane@work.com"}, fields)
	assert.Contains(t, out.String(), "Phone number")
}

func TestPrompter_AskContactUpdate(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n555-0000\n\nnew note\n"), &out)
	current := model.Contact{Name: "Bob", Phone: "1", Email: "bob@x.com"}

	update, err := p.AskContactUpdate(context.Background(), current)
	require.NoError(t, err)
	assert.Equal(t, model.ContactFields{Phone: "555-0000", Note: "new note"}, update)
	assert.Contains(t, out.String(), "New name [Bob]")
	assert.Contains(t, out.String(), "New email [bob@x.com]")
}
