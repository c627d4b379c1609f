package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Veraticus/rolodex/internal/model"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks questions on a writer and reads answers line by line.
// Reads respect context cancellation.
type Prompter struct {
	reader      *bufio.Reader
	writer      io.Writer
	readingLock sync.Mutex
}

// NewPrompter creates a prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ReadLine reads one line with surrounding whitespace removed. A final line
// without a newline is returned as-is; EOF with no data is an error.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		p.readingLock.Lock()
		defer p.readingLock.Unlock()

		value, err := p.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	// The reading goroutine finishes on its own after a cancellation.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return strings.TrimSpace(res.value), res.err
	}
}

// Ask prints the prompt and returns the answer.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", err
	}
	return p.ReadLine(ctx)
}

// AskDefault asks with the current value shown in brackets. An empty answer
// returns "", which edit operations treat as keep.
func (p *Prompter) AskDefault(ctx context.Context, prompt, current string) (string, error) {
	return p.Ask(ctx, fmt.Sprintf("%s [%s]", prompt, current))
}

// Confirm asks a y/n question. Only answers starting with y or Y confirm.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question+" (y/n)")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// AskContactFields prompts for every field of a new contact.
func (p *Prompter) AskContactFields(ctx context.Context) (model.ContactFields, error) {
	var fields model.ContactFields
	questions := []struct {
		dst    *string
		prompt string
	}{
		{&fields.Name, "Name"},
		{&fields.Phone, "Phone number"},
		{&fields.Email, "Email"},
		{&fields.Note, "Note or tag (optional)"},
	}

	for _, q := range questions {
		answer, err := p.Ask(ctx, q.prompt)
		if err != nil {
			return model.ContactFields{}, err
		}
		*q.dst = answer
	}
	return fields, nil
}

// AskContactUpdate prompts for replacement values, showing the current ones.
// Fields left empty keep their current value.
func (p *Prompter) AskContactUpdate(ctx context.Context, current model.Contact) (model.ContactFields, error) {
	var update model.ContactFields
	questions := []struct {
		dst     *string
		prompt  string
		current string
	}{
		{&update.Name, "New name", current.Name},
		{&update.Phone, "New phone", current.Phone},
		{&update.Email, "New email", current.Email},
		{&update.Note, "New note", current.Note},
	}

	for _, q := range questions {
		answer, err := p.AskDefault(ctx, q.prompt, q.current)
		if err != nil {
			return model.ContactFields{}, err
		}
		*q.dst = answer
	}
	return update, nil
}
