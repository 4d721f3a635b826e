package shell

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/book"
)

// Edit actions offered by the edit command.
const (
	editAdd    = "add"
	editDelete = "delete"
	editCancel = "cancel"
)

func (s *Shell) list() {
	WriteList(s.out, s.styles, s.book.List())
}

func (s *Shell) show() error {
	name, err := s.p.Ask("Enter the name you are looking for:")
	if err != nil {
		return err
	}

	numbers, ok := s.book.Get(name)
	if !ok {
		s.println(s.styles.Warning.Render("Sorry, nothing found!"))
		return nil
	}
	WriteContact(s.out, s.styles, name, numbers)
	return nil
}

func (s *Shell) find() error {
	number, err := s.p.AskValid("Enter a number to see to whom does it belong:", invalidNumber, book.ValidateNumber)
	if err != nil {
		return err
	}

	matches := s.book.Find(number)
	if len(matches) == 0 {
		s.println(s.styles.Warning.Render("Sorry, nothing found!"))
		return nil
	}
	WriteMatches(s.out, s.styles, matches)
	return nil
}

func (s *Shell) add() error {
	s.println("You are about to add a new contact to the phone book.")
	name, err := s.p.AskValid("Enter contact name:", invalidName, book.ValidateName)
	if err != nil {
		return err
	}
	number, err := s.p.AskValid("Enter contact number:", invalidNumber, book.ValidateNumber)
	if err != nil {
		return err
	}

	exists := s.book.Has(name)
	res, err := s.book.AddNumber(name, number)
	if err != nil {
		// Both fields were validated above.
		return fmt.Errorf("shell: add: %w", err)
	}
	if exists {
		s.printf("'%s' already exists in the phone book!\n", name)
	}

	switch res {
	case book.Duplicate:
		s.println(s.styles.Warning.Render(fmt.Sprintf("Number %s already available for contact '%s'.", number, name)))
		return nil
	case book.Appended:
		s.println(s.styles.Success.Render(fmt.Sprintf("Successfully added number %s for contact '%s'.", number, name)))
	case book.Created:
		s.println(s.styles.Success.Render(fmt.Sprintf("Successfully added contact '%s'!", name)))
	}
	s.log.Info("contact updated", zap.String("name", name), zap.Stringer("result", res))
	s.save()
	return nil
}

func (s *Shell) edit() error {
	name, err := s.p.Ask("Enter name of the contact you would like to modify:")
	if err != nil {
		return err
	}
	numbers, ok := s.book.Get(name)
	if !ok {
		s.println(s.styles.Warning.Render("Sorry, name not found!"))
		return nil
	}

	s.printf("Current number(s) for %s:\n", name)
	s.printNumbers(numbers)
	s.println()

	action, err := s.p.Choose(
		"Would you like to add a new number or delete an existing number for this contact? [add/delete/cancel]",
		"Use 'add' to save a new number, 'delete' to remove an existing number or 'cancel' to go back.",
		editAdd, editDelete, editCancel,
	)
	if err != nil {
		return err
	}

	switch action {
	case editAdd:
		return s.editAddNumber(name)
	case editDelete:
		return s.editDeleteNumber(name, numbers)
	default:
		s.println("Contact was not modified!")
		return nil
	}
}

func (s *Shell) editAddNumber(name string) error {
	number, err := s.p.AskValid("Enter new number:", invalidNumber, book.ValidateNumber)
	if err != nil {
		return err
	}

	res, err := s.book.AddNumber(name, number)
	if err != nil {
		return fmt.Errorf("shell: edit: %w", err)
	}
	if res == book.Duplicate {
		s.println(s.styles.Warning.Render(fmt.Sprintf("Number %s already available for contact '%s'.", number, name)))
		return nil
	}

	s.println(s.styles.Success.Render(fmt.Sprintf("Number %s was successfully added, record updated!", number)))
	s.log.Info("number added", zap.String("name", name))
	s.save()
	return nil
}

func (s *Shell) editDeleteNumber(name string, numbers []string) error {
	var number string
	for {
		var err error
		number, err = s.p.Ask("Enter the number you want to delete:")
		if err != nil {
			return err
		}
		if slices.Contains(numbers, number) {
			break
		}
		s.printf("Number does not exist! Current number(s) for %s:\n", name)
		s.printNumbers(numbers)
	}

	removed, err := s.book.RemoveNumber(name, number)
	if err != nil {
		return fmt.Errorf("shell: edit: %w", err)
	}
	s.println(s.styles.Success.Render(fmt.Sprintf("Number %s was removed from the record for '%s'", number, name)))
	if removed {
		s.println(s.styles.Warning.Render(fmt.Sprintf("'%s' has no numbers left and was removed from the phone book.", name)))
	}
	s.log.Info("number removed", zap.String("name", name), zap.Bool("contact_removed", removed))
	s.save()
	return nil
}

func (s *Shell) delete() error {
	name, err := s.p.Ask("Enter name of the contact to be deleted:")
	if err != nil {
		return err
	}
	if !s.book.Has(name) {
		s.println(s.styles.Warning.Render("Sorry, name not found!"))
		return nil
	}

	ok, err := s.p.Confirm(fmt.Sprintf("Contact '%s' will be deleted. Are you sure? [Y/N]:", name), "Delete contact? [Y/N]:")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := s.book.Remove(name); err != nil {
		return fmt.Errorf("shell: delete: %w", err)
	}
	s.println(s.styles.Success.Render("Contact was deleted successfully!"))
	s.log.Info("contact deleted", zap.String("name", name))
	s.save()
	return nil
}
