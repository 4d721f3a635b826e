package book

import (
	"fmt"
	"slices"
	"sort"
)

// AddResult reports what AddNumber did to the store.
type AddResult int

const (
	// Created means a new contact was created with the number.
	Created AddResult = iota
	// Appended means the number was appended to an existing contact.
	Appended
	// Duplicate means the contact already had the number; nothing changed.
	Duplicate
)

// String returns the lowercase result name.
func (r AddResult) String() string {
	switch r {
	case Created:
		return "created"
	case Appended:
		return "appended"
	case Duplicate:
		return "duplicate"
	default:
		return fmt.Sprintf("AddResult(%d)", int(r))
	}
}

// Book is the in-memory contact store. It is not safe for concurrent use.
type Book struct {
	contacts map[string][]string
}

// New returns an empty Book.
func New() *Book {
	return &Book{contacts: make(map[string][]string)}
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}

// Get returns a copy of the numbers stored for name.
func (b *Book) Get(name string) ([]string, bool) {
	nums, ok := b.contacts[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(nums), true
}

// Has reports whether a contact named name exists.
func (b *Book) Has(name string) bool {
	_, ok := b.contacts[name]
	return ok
}

// Put stores c, replacing any contact with the same name.
// Put does not validate; it is used to restore contacts read from disk.
func (b *Book) Put(c Contact) {
	b.contacts[c.Name] = slices.Clone(c.Numbers)
}

// AddNumber adds number to the contact called name, creating the contact if
// it does not exist. Adding a number the contact already has is a no-op
// reported as Duplicate.
func (b *Book) AddNumber(name, number string) (AddResult, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	if err := ValidateNumber(number); err != nil {
		return 0, err
	}

	nums, ok := b.contacts[name]
	if !ok {
		b.contacts[name] = []string{number}
		return Created, nil
	}
	if slices.Contains(nums, number) {
		return Duplicate, nil
	}
	b.contacts[name] = append(nums, number)
	return Appended, nil
}

// RemoveNumber removes one occurrence of number from the contact called name.
// A contact left without numbers is removed entirely; removed reports that case.
func (b *Book) RemoveNumber(name, number string) (removed bool, err error) {
	nums, ok := b.contacts[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	i := slices.Index(nums, number)
	if i < 0 {
		return false, fmt.Errorf("%w: %q has no number %q", ErrNumberNotFound, name, number)
	}

	nums = slices.Delete(slices.Clone(nums), i, i+1)
	if len(nums) == 0 {
		delete(b.contacts, name)
		return true, nil
	}
	b.contacts[name] = nums
	return false, nil
}

// Remove deletes the contact called name.
func (b *Book) Remove(name string) error {
	if _, ok := b.contacts[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(b.contacts, name)
	return nil
}

// List returns every contact sorted ascending by name.
func (b *Book) List() []Contact {
	names := make([]string, 0, len(b.contacts))
	for name := range b.contacts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Contact, len(names))
	for i, name := range names {
		out[i] = Contact{Name: name, Numbers: slices.Clone(b.contacts[name])}
	}
	return out
}

// Find returns every (name, number) pair whose number equals number exactly,
// in name order. No normalization is applied: "+1 234" does not match "1234".
func (b *Book) Find(number string) []Match {
	var matches []Match
	for _, c := range b.List() {
		if slices.Contains(c.Numbers, number) {
			matches = append(matches, Match{Name: c.Name, Number: number})
		}
	}
	return matches
}
