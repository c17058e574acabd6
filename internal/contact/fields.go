package contact

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidName     = errors.New("name may contain only letters, spaces, hyphens and apostrophes")
	ErrInvalidPhone    = errors.New("phone must have 10 to 15 digits")
	ErrInvalidEmail    = errors.New("malformed email address")
	ErrInvalidBirthday = errors.New("birthday must be a past DD.MM.YYYY date")
	ErrInvalidAddress  = errors.New("address must be 1 to 200 characters")
	ErrInvalidDayMonth = errors.New("date must be DD.MM")
)

const (
	// BirthdayLayout is the only accepted birthday format.
	BirthdayLayout = "02.01.2006"

	maxAddressRunes = 200
	minPhoneDigits  = 10
	maxPhoneDigits  = 15
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?)*\.[a-z]{2,}$`)

func Name(raw string) (string, error) {
	value := strings.Join(strings.Fields(raw), " ")
	if value == "" {
		return "", ErrInvalidName
	}
	for _, r := range value {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || isApostrophe(r) {
			continue
		}
		return "", ErrInvalidName
	}
	if !strings.ContainsFunc(value, unicode.IsLetter) {
		return "", ErrInvalidName
	}
	return cases.Title(language.Ukrainian).String(value), nil
}

// Phone strips spaces, dashes, dots and parentheses and validates what is
// left: an optional leading + followed by 10 to 15 digits.
func Phone(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}
	phone := b.String()
	digits := len(strings.TrimPrefix(phone, "+"))
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

func Email(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(value) {
		return "", ErrInvalidEmail
	}
	return value, nil
}

func Birthday(raw string, now time.Time) (time.Time, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidBirthday
	}
	if parsed.After(dateOf(now)) {
		return time.Time{}, ErrInvalidBirthday
	}
	return parsed, nil
}

func Address(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" || utf8.RuneCountInString(value) > maxAddressRunes {
		return "", ErrInvalidAddress
	}
	return value, nil
}

func DayMonth(raw string) (day int, month time.Month, err error) {
	// 2000 is a leap year, so 29.02 parses.
	parsed, perr := time.Parse("02.01.2006", strings.TrimSpace(raw)+".2000")
	if perr != nil {
		return 0, 0, ErrInvalidDayMonth
	}
	return parsed.Day(), parsed.Month(), nil
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
