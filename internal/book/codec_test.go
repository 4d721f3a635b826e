package book

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode_LineFormat(t *testing.T) {
	// Given contacts added out of order
	b := New()
	b.Put(Contact{Name: "Zed", Numbers: []string{"999"}})
	b.Put(Contact{Name: "Alice", Numbers: []string{"+1 555 0100", "555 0199"}})

	// When encoded
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Then one quoted line per contact is written, sorted by name
	want := "Alice,\"+1 555 0100, 555 0199\"\nZed,\"999\"\n"
	if buf.String() != want {
		t.Errorf("Encode() = %q, want %q", buf.String(), want)
	}
}

func TestEncode_EmptyBook(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, New()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode(empty) wrote %q, want nothing", buf.String())
	}
}

func TestDecode_ValidLines(t *testing.T) {
	input := "Alice,\"+1 555 0100, 555 0199\"\r\nBob,\"123,456\"\n"

	res, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []Contact{
		{Name: "Alice", Numbers: []string{"+1 555 0100", "555 0199"}},
		{Name: "Bob", Numbers: []string{"123", "456"}},
	}
	if diff := cmp.Diff(want, res.Book.List()); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
}

func TestDecode_SkipsMalformedLines(t *testing.T) {
	// Given a file with a malformed line interleaved with a valid one
	input := strings.Join([]string{
		"Bob,555-1234",
		"Alice,\"+1 555 0100\"",
		"",
		"X,\"123\"",
		"Carol,\"12a\"",
		"Dave,\"123",
	}, "\n")

	// When decoded
	res, err := Decode(strings.NewReader(input))

	// Then only the valid contact is loaded and no error is returned
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Contact{{Name: "Alice", Numbers: []string{"+1 555 0100"}}}
	if diff := cmp.Diff(want, res.Book.List()); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	if res.Skipped != 5 {
		t.Errorf("Skipped = %d, want 5", res.Skipped)
	}
}

func TestDecode_NumbersTakenVerbatim(t *testing.T) {
	// Numbers read from disk are not re-validated; "12" is too short to add
	// interactively but loads as-is.
	res, err := Decode(strings.NewReader("Alice,\"12, +\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, ok := res.Book.Get("Alice")
	if !ok {
		t.Fatal("Alice not loaded")
	}
	if diff := cmp.Diff([]string{"12", "+"}, got); diff != "" {
		t.Errorf("numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_DropsEmptyNumbers(t *testing.T) {
	res, err := Decode(strings.NewReader("Alice,\"123, \"\nBob,\", \"\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Contact{{Name: "Alice", Numbers: []string{"123"}}}
	if diff := cmp.Diff(want, res.Book.List()); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
}

func TestDecode_LaterLineWins(t *testing.T) {
	res, err := Decode(strings.NewReader("Alice,\"111\"\nAlice,\"222\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := res.Book.Get("Alice")
	if diff := cmp.Diff([]string{"222"}, got); diff != "" {
		t.Errorf("numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ReadError(t *testing.T) {
	wantErr := errors.New("disk gone")
	_, err := Decode(&failingReader{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Errorf("Decode() error = %v, want %v", err, wantErr)
	}
}

func TestDecode_OverlongLineIsSkipped(t *testing.T) {
	// Given a 70 KB garbage line between two valid records
	input := "Alice,\"+1 555 0100\"\n" + strings.Repeat("x", 70000) + "\nBob,\"123\"\n"

	// When decoded
	res, err := Decode(strings.NewReader(input))

	// Then the long line is skipped and both contacts survive
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Contact{
		{Name: "Alice", Numbers: []string{"+1 555 0100"}},
		{Name: "Bob", Numbers: []string{"123"}},
	}
	if diff := cmp.Diff(want, res.Book.List()); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
}

func TestDecode_ReadErrorKeepsDecodedContacts(t *testing.T) {
	// Given input that fails after one complete record
	wantErr := errors.New("disk gone")
	r := io.MultiReader(strings.NewReader("Alice,\"123\"\n"), &failingReader{err: wantErr})

	// When decoded
	res, err := Decode(r)

	// Then the error is reported and the record read before it is kept
	if !errors.Is(err, wantErr) {
		t.Fatalf("Decode() error = %v, want %v", err, wantErr)
	}
	if !res.Book.Has("Alice") {
		t.Error("contact decoded before the read error was dropped")
	}
}

func TestDecode_CRLFLineEndings(t *testing.T) {
	res, err := Decode(strings.NewReader("Alice,\"123\"\r\nBob,\"456\"\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Book.Len() != 2 || res.Skipped != 0 {
		t.Errorf("Len() = %d, Skipped = %d, want 2 and 0", res.Book.Len(), res.Skipped)
	}
}

func TestEncodeDecode_RoundTripIsStable(t *testing.T) {
	// Given a book built through the store operations
	b := New()
	steps := []struct{ name, number string }{
		{"Zoe", "+44 20 7946 0958"},
		{"Alice", "+1 555 0100"},
		{"Alice", "555 0199"},
		{"Mary Ann", "0049 30 1234"},
		{"Zoe", "+44 20 7946 0958"},
	}
	for _, s := range steps {
		if _, err := b.AddNumber(s.name, s.number); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.RemoveNumber("Alice", "+1 555 0100"); err != nil {
		t.Fatal(err)
	}

	// When it is saved, reloaded, and saved again
	var first bytes.Buffer
	if err := Encode(&first, b); err != nil {
		t.Fatal(err)
	}
	res, err := Decode(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	var second bytes.Buffer
	if err := Encode(&second, res.Book); err != nil {
		t.Fatal(err)
	}

	// Then both encodings are byte-identical
	if first.String() != second.String() {
		t.Errorf("round trip changed output:\nfirst:  %q\nsecond: %q", first.String(), second.String())
	}
	if diff := cmp.Diff(b.List(), res.Book.List()); diff != "" {
		t.Errorf("reloaded book mismatch (-want +got):\n%s", diff)
	}
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
