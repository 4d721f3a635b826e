package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Prompter reads whole trimmed lines from an input stream and writes prompts
// to an output stream. Every Ask variant returns io.EOF once input runs out.
// Lines have no length limit.
type Prompter struct {
	r   *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and prompting on out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(in), out: out}
}

// ReadLine returns the next input line with surrounding whitespace removed.
// A final line without a newline is returned before io.EOF.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("shell: reading input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimSpace(line), nil
}

// Ask prints prompt on its own line and reads the answer.
func (p *Prompter) Ask(prompt string) (string, error) {
	_, _ = fmt.Fprintln(p.out, prompt)
	return p.ReadLine()
}

// AskValid asks prompt until valid accepts the answer, printing invalid
// before every retry.
func (p *Prompter) AskValid(prompt, invalid string, valid func(string) error) (string, error) {
	for {
		answer, err := p.Ask(prompt)
		if err != nil {
			return "", err
		}
		if valid(answer) == nil {
			return answer, nil
		}
		_, _ = fmt.Fprintln(p.out, invalid)
	}
}

// Choose asks prompt and loops until the answer, lowercased, is one of
// choices. retry is printed after each unrecognized answer.
func (p *Prompter) Choose(prompt, retry string, choices ...string) (string, error) {
	_, _ = fmt.Fprintln(p.out, prompt)
	for {
		answer, err := p.ReadLine()
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		if slices.Contains(choices, answer) {
			return answer, nil
		}
		_, _ = fmt.Fprintln(p.out, retry)
	}
}

// Confirm asks a y/n question and reports whether the answer was y.
func (p *Prompter) Confirm(prompt, retry string) (bool, error) {
	answer, err := p.Choose(prompt, retry, "y", "n")
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}
