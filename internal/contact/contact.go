package contact

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var (
	ErrDuplicateEmail = errors.New("email already belongs to this contact")
	ErrDuplicatePhone = errors.New("phone already belongs to this contact")
	ErrPhoneNotFound  = errors.New("phone not found in this contact")
)

// Contact is one address-book record. Birthday is the zero time when unset.
type Contact struct {
	Name     string
	Phones   []string
	Emails   []string
	Birthday time.Time
	Address  string
}

func New(name string) (*Contact, error) {
	valid, err := Name(name)
	if err != nil {
		return nil, err
	}
	return &Contact{Name: valid}, nil
}

func (c *Contact) Key() string {
	return nameKey(c.Name)
}

// AddPhone appends a phone. Adding a number the contact already has is a no-op.
func (c *Contact) AddPhone(raw string) error {
	phone, err := Phone(raw)
	if err != nil {
		return err
	}
	if c.phoneIndex(phone) >= 0 {
		return nil
	}
	c.Phones = append(c.Phones, phone)
	return nil
}

func (c *Contact) EditPhone(oldRaw, newRaw string) error {
	next, err := Phone(newRaw)
	if err != nil {
		return err
	}
	old, err := Phone(oldRaw)
	if err != nil {
		return ErrPhoneNotFound
	}
	idx := c.phoneIndex(old)
	if idx < 0 {
		return ErrPhoneNotFound
	}
	if other := c.phoneIndex(next); other >= 0 && other != idx {
		return ErrDuplicatePhone
	}
	c.Phones[idx] = next
	return nil
}

func (c *Contact) RemovePhone(raw string) bool {
	phone, err := Phone(raw)
	if err != nil {
		return false
	}
	idx := c.phoneIndex(phone)
	if idx < 0 {
		return false
	}
	c.Phones = append(c.Phones[:idx], c.Phones[idx+1:]...)
	return true
}

func (c *Contact) AddEmail(raw string) error {
	email, err := Email(raw)
	if err != nil {
		return err
	}
	for _, existing := range c.Emails {
		if existing == email {
			return ErrDuplicateEmail
		}
	}
	c.Emails = append(c.Emails, email)
	return nil
}

func (c *Contact) RemoveEmail(raw string) bool {
	email := strings.ToLower(strings.TrimSpace(raw))
	for i, existing := range c.Emails {
		if existing == email {
			c.Emails = append(c.Emails[:i], c.Emails[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Contact) SetBirthday(raw string, now time.Time) error {
	birthday, err := Birthday(raw, now)
	if err != nil {
		return err
	}
	c.Birthday = birthday
	return nil
}

func (c *Contact) ClearBirthday() {
	c.Birthday = time.Time{}
}

func (c *Contact) HasBirthday() bool {
	return !c.Birthday.IsZero()
}

func (c *Contact) SetAddress(raw string) error {
	address, err := Address(raw)
	if err != nil {
		return err
	}
	c.Address = address
	return nil
}

func (c *Contact) ClearAddress() {
	c.Address = ""
}

// DaysToBirthday counts whole days from now's date to the next birthday,
// 0 when it is today. Feb 29 birthdays fall on Feb 28 in common years.
func (c *Contact) DaysToBirthday(now time.Time) (int, bool) {
	if !c.HasBirthday() {
		return 0, false
	}
	today := dateOf(now)
	next := anniversary(c.Birthday, today.Year())
	if next.Before(today) {
		next = anniversary(c.Birthday, today.Year()+1)
	}
	return int(next.Sub(today).Hours() / 24), true
}

// Matches reports whether query occurs in the name, a phone, an e-mail or
// the address, ignoring case. An empty query matches everything.
func (c *Contact) Matches(query string) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(fold(c.Name), q) || strings.Contains(fold(c.Address), q) {
		return true
	}
	for _, email := range c.Emails {
		if strings.Contains(email, q) {
			return true
		}
	}
	digits := digitsOnly(q)
	// Only a query that is mostly a number is compared against phones.
	if len(digits) >= 3 && len(digits)*2 >= len(strings.ReplaceAll(q, " ", "")) {
		for _, phone := range c.Phones {
			if strings.Contains(digitsOnly(phone), digits) {
				return true
			}
		}
	}
	return false
}

func (c *Contact) phoneIndex(phone string) int {
	for i, existing := range c.Phones {
		if existing == phone {
			return i
		}
	}
	return -1
}

func anniversary(birthday time.Time, year int) time.Time {
	day := birthday.Day()
	if birthday.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, birthday.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func nameKey(name string) string {
	return fold(strings.Join(strings.Fields(name), " "))
}

func fold(s string) string {
	return cases.Fold().String(s)
}
