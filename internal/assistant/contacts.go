package assistant

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ashwch/pomichnyk/internal/contact"
	"github.com/ashwch/pomichnyk/internal/i18n"
	"github.com/ashwch/pomichnyk/internal/router"
)

func (s *Session) ask(key string, args ...any) (string, error) {
	if s.prompter == nil {
		return "", io.EOF
	}
	answer, err := s.prompter.Ask(s.catalog.T(key, args...))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (s *Session) addContact(_ router.Decision) (string, error) {
	name, err := s.ask(i18n.AskName)
	if err != nil {
		return "", err
	}
	if name == "" {
		return s.catalog.T(i18n.NameRequired), nil
	}
	c, err := contact.New(name)
	if err != nil {
		return "", err
	}
	if err := s.fillContact(c, false); err != nil {
		return "", err
	}
	if s.contacts.Add(c) {
		return s.catalog.T(i18n.ContactReplaced, c.Name), nil
	}
	return s.catalog.T(i18n.ContactAdded, c.Name), nil
}

func (s *Session) fillContact(c *contact.Contact, editing bool) error {
	oldPhone := ""
	if editing && len(c.Phones) > 0 {
		answer, err := s.ask(i18n.AskOldPhone)
		if err != nil {
			return err
		}
		oldPhone = answer
	}
	phone, err := s.ask(i18n.AskPhone)
	if err != nil {
		return err
	}
	switch {
	case oldPhone != "" && phone != "":
		err = c.EditPhone(oldPhone, phone)
	case oldPhone != "":
		if !c.RemovePhone(oldPhone) {
			err = contact.ErrPhoneNotFound
		}
	case phone != "":
		err = c.AddPhone(phone)
	}
	if err != nil {
		return err
	}

	email, err := s.ask(i18n.AskEmail)
	if err != nil {
		return err
	}
	if email != "" {
		if err := c.AddEmail(email); err != nil {
			return err
		}
	}

	birthday, err := s.ask(i18n.AskBirthday)
	if err != nil {
		return err
	}
	if birthday != "" {
		if err := c.SetBirthday(birthday, s.now()); err != nil {
			return err
		}
	}

	address, err := s.ask(i18n.AskAddress)
	if err != nil {
		return err
	}
	if address != "" {
		if err := c.SetAddress(address); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) searchContact(d router.Decision) (string, error) {
	query := strings.TrimSpace(d.Query)
	if query == "" {
		answer, err := s.ask(i18n.AskSearch)
		if err != nil {
			return "", err
		}
		query = answer
	}
	if query == "" {
		return s.catalog.T(i18n.QueryRequired), nil
	}
	found := s.contacts.Search(query)
	if len(found) == 0 {
		return s.catalog.T(i18n.ContactsNoMatch), nil
	}
	return s.contactList(s.catalog.T(i18n.ContactsFound, len(found)), found), nil
}

func (s *Session) showContacts(_ router.Decision) (string, error) {
	all := s.contacts.All(contact.SortByName, s.now())
	if len(all) == 0 {
		return s.catalog.T(i18n.ContactsEmpty), nil
	}
	return s.contactList(s.catalog.T(i18n.ContactsTotal, len(all)), all), nil
}

func (s *Session) editContact(_ router.Decision) (string, error) {
	name, err := s.ask(i18n.AskEditName)
	if err != nil {
		return "", err
	}
	if name == "" {
		return s.catalog.T(i18n.NameRequired), nil
	}
	current, ok := s.contacts.Find(name)
	if !ok {
		return s.catalog.T(i18n.ContactNotFound, name), nil
	}

	edited := cloneContact(current)
	if err := s.fillContact(edited, true); err != nil {
		return "", err
	}
	if sameContact(current, edited) {
		return s.catalog.T(i18n.ContactUnchanged, current.Name), nil
	}
	s.contacts.Add(edited)
	return s.catalog.T(i18n.ContactUpdated, edited.Name), nil
}

func (s *Session) deleteContact(d router.Decision) (string, error) {
	name, err := s.ask(i18n.AskDeleteName)
	if err != nil {
		return "", err
	}
	if name == "" {
		return s.catalog.T(i18n.NameRequired), nil
	}
	current, ok := s.contacts.Find(name)
	if !ok {
		return s.catalog.T(i18n.ContactNotFound, name), nil
	}
	approved, err := s.confirm(s.catalog.T(i18n.ConfirmContact, current.Name))
	if err != nil {
		return "", err
	}
	if !approved {
		s.rejectAlias(d)
		return s.catalog.T(i18n.Cancelled), nil
	}
	s.contacts.Remove(current.Name)
	return s.catalog.T(i18n.ContactDeleted, current.Name), nil
}

func (s *Session) birthdays(_ router.Decision) (string, error) {
	answer, err := s.ask(i18n.AskBirthdayDays, s.daysAhead)
	if err != nil {
		return "", err
	}
	if strings.Contains(answer, ".") {
		return s.birthdaysOn(answer)
	}
	days := s.daysAhead
	if answer != "" {
		parsed, err := strconv.Atoi(answer)
		if err != nil || parsed < 1 || parsed > 366 {
			return s.catalog.T(i18n.DaysInvalid), nil
		}
		days = parsed
	}

	now := s.now()
	upcoming := s.contacts.Upcoming(days, now)
	if len(upcoming) == 0 {
		return s.catalog.T(i18n.BirthdaysNone, days), nil
	}
	lines := []string{s.catalog.T(i18n.BirthdaysHeader, days)}
	for _, c := range upcoming {
		left, _ := c.DaysToBirthday(now)
		lines = append(lines, fmt.Sprintf("  • %s (%s): %s", c.Name, c.Birthday.Format(contact.BirthdayLayout), s.daysLeft(left)))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) birthdaysOn(dayMonth string) (string, error) {
	found, err := s.contacts.ByBirthday(dayMonth)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return s.catalog.T(i18n.BirthdaysOnDayNone, dayMonth), nil
	}
	lines := []string{s.catalog.T(i18n.BirthdaysOnDay, dayMonth)}
	for _, c := range found {
		lines = append(lines, fmt.Sprintf("  • %s (%s)", c.Name, c.Birthday.Format(contact.BirthdayLayout)))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) daysLeft(days int) string {
	switch days {
	case 0:
		return s.catalog.T(i18n.BirthdayToday)
	case 1:
		return s.catalog.T(i18n.BirthdayTomorrow)
	default:
		return s.catalog.T(i18n.BirthdayInDays, days)
	}
}

func (s *Session) confirm(question string) (bool, error) {
	if s.prompter == nil {
		return false, io.EOF
	}
	return s.prompter.Confirm(question)
}

func (s *Session) contactList(header string, contacts []*contact.Contact) string {
	lines := make([]string, 0, len(contacts)+1)
	lines = append(lines, header)
	for i, c := range contacts {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, s.formatContact(c)))
	}
	return strings.Join(lines, "\n")
}

func (s *Session) formatContact(c *contact.Contact) string {
	parts := []string{c.Name}
	if len(c.Phones) > 0 {
		parts = append(parts, s.catalog.T(i18n.FieldPhones)+": "+strings.Join(c.Phones, ", "))
	}
	if len(c.Emails) > 0 {
		parts = append(parts, s.catalog.T(i18n.FieldEmails)+": "+strings.Join(c.Emails, ", "))
	}
	if c.HasBirthday() {
		parts = append(parts, s.catalog.T(i18n.FieldBirthday)+": "+c.Birthday.Format(contact.BirthdayLayout))
	}
	if c.Address != "" {
		parts = append(parts, s.catalog.T(i18n.FieldAddress)+": "+c.Address)
	}
	return strings.Join(parts, " | ")
}

func cloneContact(c *contact.Contact) *contact.Contact {
	out := *c
	out.Phones = append([]string(nil), c.Phones...)
	out.Emails = append([]string(nil), c.Emails...)
	return &out
}

func sameContact(a, b *contact.Contact) bool {
	return a.Name == b.Name &&
		strings.Join(a.Phones, "\x00") == strings.Join(b.Phones, "\x00") &&
		strings.Join(a.Emails, "\x00") == strings.Join(b.Emails, "\x00") &&
		a.Birthday.Equal(b.Birthday) &&
		a.Address == b.Address
}
