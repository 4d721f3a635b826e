// Package shell implements the interactive phone book command loop.
package shell

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/book"
)

// Saver persists the whole book after a mutation.
type Saver interface {
	Save(b *book.Book) error
}

// Command names recognized at the top-level prompt. Matching is case-sensitive.
const (
	CmdList   = "list"
	CmdShow   = "show"
	CmdFind   = "find"
	CmdAdd    = "add"
	CmdEdit   = "edit"
	CmdDelete = "delete"
	CmdHelp   = "help"
	CmdExit   = "exit"
)

// commandHelp lists commands with their one-line descriptions, in display order.
var commandHelp = []struct{ name, desc string }{
	{CmdList, "lists all saved contacts in alphabetical order"},
	{CmdShow, "finds a contact by name"},
	{CmdFind, "searches for a contact by number"},
	{CmdAdd, "saves a new contact entry into the phone book"},
	{CmdEdit, "modifies an existing contact"},
	{CmdDelete, "removes a contact from the phone book"},
	{CmdHelp, "lists all valid commands"},
	{CmdExit, "quits the phone book"},
}

const (
	footer        = "Type a command or 'exit' to quit. For a list of valid commands use 'help':"
	invalidNumber = "Number may contain only '+', spaces and digits. Min length 3, max length 25."
	invalidName   = "Name must be in range 2 - 50 symbols and may not contain ',' or '\"'."
)

// Shell is a blocking read-eval loop over a Book.
type Shell struct {
	book    *book.Book
	store   Saver
	p       *Prompter
	out     io.Writer
	errOut  io.Writer
	styles  Styles
	log     *zap.Logger
	version string
}

// Option configures a Shell.
type Option func(*Shell)

// WithErrorOutput sets where persistence failures are reported (default: the output writer).
func WithErrorOutput(w io.Writer) Option {
	return func(s *Shell) { s.errOut = w }
}

// WithStyles sets the output styles (default: PlainStyles).
func WithStyles(st Styles) Option {
	return func(s *Shell) { s.styles = st }
}

// WithLogger sets the diagnostic logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// WithVersion sets the version shown in the banner.
func WithVersion(v string) Option {
	return func(s *Shell) { s.version = v }
}

// New creates a Shell operating on b, saving through store, reading commands
// from in and writing to out.
func New(b *book.Book, store Saver, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		book:   b,
		store:  store,
		p:      NewPrompter(in, out),
		out:    out,
		errOut: out,
		styles: PlainStyles(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prints the banner and processes commands until exit or end of input.
// End of input is treated like exit.
func (s *Shell) Run() error {
	s.banner()

	for {
		s.printf("\n> ")
		line, err := s.p.ReadLine()
		if err != nil {
			return s.finish(err)
		}
		if line == CmdExit {
			return s.finish(nil)
		}
		if err := s.Dispatch(line); err != nil {
			return s.finish(err)
		}
	}
}

// Dispatch runs a single top-level command. It returns only input errors
// (including io.EOF); every other failure is reported to the user.
func (s *Shell) Dispatch(line string) error {
	var err error
	switch line {
	case CmdList:
		s.list()
	case CmdShow:
		err = s.show()
	case CmdFind:
		err = s.find()
	case CmdAdd:
		err = s.add()
	case CmdEdit:
		err = s.edit()
	case CmdDelete:
		err = s.delete()
	case CmdHelp:
		s.help()
		return nil
	default:
		s.println(s.styles.Warning.Render("Invalid command!"))
		return nil
	}
	if err != nil {
		return err
	}
	s.println()
	s.println(s.styles.Muted.Render(footer))
	return nil
}

func (s *Shell) finish(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	s.println("'Phone Book' terminated.")
	return nil
}

func (s *Shell) banner() {
	title := "PHONE BOOK"
	if s.version != "" {
		title = fmt.Sprintf("PHONE BOOK (ver %s)", s.version)
	}
	s.println(s.styles.Title.Render(title))
	s.println("===========================")
	s.println("Type a command or 'exit' to quit:")
	s.help()
}

func (s *Shell) help() {
	for _, c := range commandHelp {
		s.printf("%s - %s\n", c.name, c.desc)
	}
	s.println("---------------------------")
}

// save persists the book. Failures are reported and logged; the in-memory
// change is kept either way.
func (s *Shell) save() {
	if err := s.store.Save(s.book); err != nil {
		s.log.Error("save failed", zap.Error(err))
		_, _ = fmt.Fprintln(s.errOut, s.styles.Warning.Render(err.Error()))
	}
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...any) {
	_, _ = fmt.Fprintln(s.out, args...)
}

func (s *Shell) printNumbers(numbers []string) {
	for _, n := range numbers {
		s.println(n)
	}
}
