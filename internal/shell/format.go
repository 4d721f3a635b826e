package shell

import (
	"fmt"
	"io"

	"github.com/smileynet/phonebook/internal/book"
)

// WriteContact writes name on its own line followed by one number per line.
func WriteContact(w io.Writer, st Styles, name string, numbers []string) {
	_, _ = fmt.Fprintln(w, st.Name.Render(name))
	for _, n := range numbers {
		_, _ = fmt.Fprintln(w, n)
	}
}

// WriteList writes every contact followed by a blank line, or the empty-book
// notice when there are none.
func WriteList(w io.Writer, st Styles, contacts []book.Contact) {
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, "No records found, the phone book is empty!")
		return
	}
	for _, c := range contacts {
		WriteContact(w, st, c.Name, c.Numbers)
		_, _ = fmt.Fprintln(w)
	}
}

// WriteMatches writes each match as a name line followed by the number.
func WriteMatches(w io.Writer, st Styles, matches []book.Match) {
	for _, m := range matches {
		WriteContact(w, st, m.Name, []string{m.Number})
	}
}
