package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/logging"
	"github.com/smileynet/phonebook/internal/shell"
	"github.com/smileynet/phonebook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, applied after user and project config." placeholder:"FILE"`
	Data   string `help:"Contacts file (overrides config and PHONEBOOK_DATA)." placeholder:"FILE"`
}

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Start the interactive phone book (default)."`
	List    ListCmd          `cmd:"" help:"List all contacts in alphabetical order."`
	Show    ShowCmd          `cmd:"" help:"Show the numbers of a contact."`
	Find    FindCmd          `cmd:"" help:"Find the contacts owning a number."`
	Add     AddCmd           `cmd:"" help:"Add a number to a contact, creating it if needed."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Browse  BrowseCmd        `cmd:"" help:"Browse contacts in a terminal UI."`
}

// loadConfig loads layered config from user, project and explicit paths,
// then applies env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	if g.Config != "" {
		if _, err := os.Stat(g.Config); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		".phonebook/config.yaml",
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if g.Data != "" {
		cfg.Store.Path = g.Data
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env bundles what every command needs once config is resolved.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *book.FileStore
}

func (g *Globals) open() (*env, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:   cfg,
		log:   logger,
		store: book.NewFileStore(cfg.Store.Path, book.WithLogger(logger)),
	}, nil
}

func (e *env) close() {
	_ = e.log.Sync()
}

// loadBook reads the contacts file. A failed load leaves whatever was read
// before the failure, usually nothing, and a notice on errOut.
func loadBook(errOut io.Writer, store *book.FileStore) *book.Book {
	b, err := store.Load()
	switch {
	case err == nil:
	case b.Len() == 0:
		_, _ = fmt.Fprintln(errOut, "Could not load contacts, phone book is empty!")
	default:
		_, _ = fmt.Fprintf(errOut, "Could not load all contacts, only %d were read!\n", b.Len())
	}
	return b
}

// stylesFor picks output styles for w according to the display.color setting.
func stylesFor(mode string, w io.Writer) shell.Styles {
	switch mode {
	case "never":
		return shell.PlainStyles()
	case "always":
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI256)
		return shell.NewStyles(r)
	default:
		if f, ok := w.(*os.File); !ok || !isTerminal(f) {
			return shell.PlainStyles()
		}
		return shell.NewStyles(lipgloss.NewRenderer(w))
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// --- Shell command ---

// ShellCmd runs the interactive read-eval loop.
type ShellCmd struct{}

// Run executes the interactive shell on stdin and stdout.
func (c *ShellCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer e.close()

	e.log.Info("shell started", zap.String("version", version), zap.String("data", e.store.Path()))
	b := loadBook(os.Stderr, e.store)
	sh := shell.New(b, e.store, os.Stdin, os.Stdout,
		shell.WithErrorOutput(os.Stderr),
		shell.WithStyles(stylesFor(e.cfg.Display.Color, os.Stdout)),
		shell.WithLogger(e.log),
		shell.WithVersion(version),
	)
	return sh.Run()
}

// --- One-shot commands ---

// ListCmd prints every contact.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer e.close()
	c.run(os.Stdout, stylesFor(e.cfg.Display.Color, os.Stdout), loadBook(os.Stderr, e.store))
	return nil
}

func (c *ListCmd) run(w io.Writer, st shell.Styles, b *book.Book) {
	shell.WriteList(w, st, b.List())
}

// ShowCmd prints the numbers of one contact.
type ShowCmd struct {
	Name string `arg:"" help:"Contact name (exact match)."`
}

// Run executes the show command.
func (c *ShowCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	defer e.close()
	return c.run(os.Stdout, stylesFor(e.cfg.Display.Color, os.Stdout), loadBook(os.Stderr, e.store))
}

func (c *ShowCmd) run(w io.Writer, st shell.Styles, b *book.Book) error {
	name := strings.TrimSpace(c.Name)
	numbers, ok := b.Get(name)
	if !ok {
		return fmt.Errorf("show: %w: %q", book.ErrNotFound, name)
	}
	shell.WriteContact(w, st, name, numbers)
	return nil
}

// FindCmd prints every contact that lists a number.
type FindCmd struct {
	Number string `arg:"" help:"Phone number (exact match)."`
}

// Run executes the find command.
func (c *FindCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	defer e.close()
	return c.run(os.Stdout, stylesFor(e.cfg.Display.Color, os.Stdout), loadBook(os.Stderr, e.store))
}

func (c *FindCmd) run(w io.Writer, st shell.Styles, b *book.Book) error {
	number := strings.TrimSpace(c.Number)
	if err := book.ValidateNumber(number); err != nil {
		return fmt.Errorf("find: %w", err)
	}
	matches := b.Find(number)
	if len(matches) == 0 {
		return fmt.Errorf("find: %w: no contact has number %q", book.ErrNotFound, number)
	}
	shell.WriteMatches(w, st, matches)
	return nil
}

// AddCmd adds a number to a contact and saves the book.
type AddCmd struct {
	Name   string `arg:"" help:"Contact name (2-50 characters, no ',' or '\"')."`
	Number string `arg:"" help:"Phone number ('+', digits and spaces, 3-25 characters)."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer e.close()
	return c.run(os.Stdout, loadBook(os.Stderr, e.store), e.store)
}

func (c *AddCmd) run(w io.Writer, b *book.Book, store shell.Saver) error {
	name, number := strings.TrimSpace(c.Name), strings.TrimSpace(c.Number)
	res, err := b.AddNumber(name, number)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	if res == book.Duplicate {
		_, _ = fmt.Fprintf(w, "Number %s already available for contact '%s'.\n", number, name)
		return nil
	}
	if err := store.Save(b); err != nil {
		return fmt.Errorf("add: %w", err)
	}

	if res == book.Appended {
		_, _ = fmt.Fprintf(w, "Successfully added number %s for contact '%s'.\n", number, name)
	} else {
		_, _ = fmt.Fprintf(w, "Successfully added contact '%s'!\n", name)
	}
	return nil
}

// DeleteCmd removes a contact and saves the book.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name (exact match)."`
	Yes  bool   `short:"y" help:"Delete without asking for confirmation."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals) error {
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer e.close()
	return c.run(os.Stdin, os.Stdout, loadBook(os.Stderr, e.store), e.store)
}

func (c *DeleteCmd) run(in io.Reader, w io.Writer, b *book.Book, store shell.Saver) error {
	name := strings.TrimSpace(c.Name)
	if !b.Has(name) {
		return fmt.Errorf("delete: %w: %q", book.ErrNotFound, name)
	}

	if !c.Yes {
		p := shell.NewPrompter(in, w)
		ok, err := p.Confirm(fmt.Sprintf("Contact '%s' will be deleted. Are you sure? [Y/N]:", name), "Delete contact? [Y/N]:")
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("delete: %w", err)
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "Contact was not deleted.")
			return nil
		}
	}

	if err := b.Remove(name); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if err := store.Save(b); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	_, _ = fmt.Fprintln(w, "Contact was deleted successfully!")
	return nil
}

// --- Browse command ---

// BrowseCmd opens the read-only contact browser.
type BrowseCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run loads the book and launches the browser TUI.
func (c *BrowseCmd) Run(g *Globals) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	e, err := g.open()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer e.close()

	b := loadBook(os.Stderr, e.store)
	prog := tea.NewProgram(tui.NewModel(b.List()), tea.WithAltScreen())
	return c.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (c *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

const (
	exitSuccess  = 0
	exitNotFound = 1
	exitFailure  = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, book.ErrNotFound) || errors.Is(err, book.ErrNumberNotFound) {
		return exitNotFound
	}
	return exitFailure
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("phonebook"),
		kong.Description("A small phone book kept in a plain text file."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
