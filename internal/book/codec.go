package book

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// recordPattern matches one persisted line: NAME,"NUM1, NUM2, ...".
var recordPattern = regexp.MustCompile(`^([^,"]{2,50}),"([0-9+, ]+)"$`)

// numberSeparator splits the quoted number group.
var numberSeparator = regexp.MustCompile(`,\s*`)

// DecodeResult holds a decoded book and the number of lines that were skipped.
type DecodeResult struct {
	Book    *Book
	Skipped int
}

// Decode reads one contact per line from r. Lines that do not match the
// record format are skipped and counted, not reported as errors. Numbers are
// taken verbatim without validation. Lines have no length limit. On a read
// error the contacts decoded so far are returned along with the error.
func Decode(r io.Reader) (DecodeResult, error) {
	res := DecodeResult{Book: New()}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			c, ok := decodeLine(strings.TrimRight(line, "\r\n"))
			if ok {
				res.Book.Put(c)
			} else {
				res.Skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("book: decoding: %w", err)
		}
	}
}

// decodeLine parses a single record line.
func decodeLine(line string) (Contact, bool) {
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return Contact{}, false
	}

	var nums []string
	for _, n := range numberSeparator.Split(m[2], -1) {
		if n != "" {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return Contact{}, false
	}
	return Contact{Name: m[1], Numbers: nums}, true
}

// Encode writes every contact in b to w, one line per contact, in name order.
func Encode(w io.Writer, b *Book) error {
	bw := bufio.NewWriter(w)
	for _, c := range b.List() {
		if _, err := fmt.Fprintf(bw, "%s,\"%s\"\n", c.Name, strings.Join(c.Numbers, ", ")); err != nil {
			return fmt.Errorf("book: encoding %q: %w", c.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("book: encoding: %w", err)
	}
	return nil
}
