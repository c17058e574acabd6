package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testNow = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "олена   петрівна", want: "Олена Петрівна"},
		{in: "JOHN smith", want: "John Smith"},
		{in: "  Їжак  ", want: "Їжак"},
		{in: "", wantErr: true},
		{in: "R2D2", wantErr: true},
		{in: "bob@home", wantErr: true},
		{in: " - ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := Name(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidName) {
				t.Fatalf("Name(%q): expected ErrInvalidName, got %q, %v", tc.in, got, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Name(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Name(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "+380 (67) 123-45-67", want: "+380671234567"},
		{in: "067.123.45.67", want: "0671234567"},
		{in: "123456789", wantErr: true},
		{in: "1234567890123456", wantErr: true},
		{in: "38+0671234567", wantErr: true},
		{in: "067 123 45 6x", wantErr: true},
	}
	for _, tc := range cases {
		got, err := Phone(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidPhone) {
				t.Fatalf("Phone(%q): expected ErrInvalidPhone, got %q, %v", tc.in, got, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Phone(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Phone(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestEmail(t *testing.T) {
	got, err := Email("  Olena.P@Example.COM.ua ")
	if err != nil {
		t.Fatalf("Email failed: %v", err)
	}
	if got != "olena.p@example.com.ua" {
		t.Fatalf("unexpected email %q", got)
	}
	for _, bad := range []string{"olena", "olena@", "@example.com", "olena@example", "o lena@example.com", "olena@-example.com"} {
		if _, err := Email(bad); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("Email(%q): expected ErrInvalidEmail, got %v", bad, err)
		}
	}
}

func TestBirthday(t *testing.T) {
	got, err := Birthday("29.02.2000", testNow)
	if err != nil {
		t.Fatalf("Birthday failed: %v", err)
	}
	if got.Format(BirthdayLayout) != "29.02.2000" {
		t.Fatalf("unexpected birthday %v", got)
	}
	if _, err := Birthday("10.03.2024", testNow); err != nil {
		t.Fatalf("expected today to be accepted, got %v", err)
	}
	for _, bad := range []string{"31.02.1990", "1990-02-01", "5.1.1990", "11.03.2024", ""} {
		if _, err := Birthday(bad, testNow); !errors.Is(err, ErrInvalidBirthday) {
			t.Fatalf("Birthday(%q): expected ErrInvalidBirthday, got %v", bad, err)
		}
	}
}

func TestAddress(t *testing.T) {
	if _, err := Address("   "); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected empty address to be rejected")
	}
	long := make([]rune, 201)
	for i := range long {
		long[i] = 'ж'
	}
	if _, err := Address(string(long)); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected 201-rune address to be rejected")
	}
	if got, err := Address(" Київ, Хрещатик 1 "); err != nil || got != "Київ, Хрещатик 1" {
		t.Fatalf("unexpected address %q, %v", got, err)
	}
}

func TestPhonesDeduplicateAndEdit(t *testing.T) {
	c, err := New("Taras")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.AddPhone("0671234567"); err != nil {
		t.Fatalf("AddPhone failed: %v", err)
	}
	if err := c.AddPhone("067-123-45-67"); err != nil {
		t.Fatalf("duplicate phone should be ignored silently, got %v", err)
	}
	if err := c.AddPhone("0501112233"); err != nil {
		t.Fatalf("AddPhone failed: %v", err)
	}
	if diff := cmp.Diff([]string{"0671234567", "0501112233"}, c.Phones); diff != "" {
		t.Fatalf("phones mismatch (-want +got):\n%s", diff)
	}

	if err := c.EditPhone("0501112233", "0671234567"); !errors.Is(err, ErrDuplicatePhone) {
		t.Fatalf("expected ErrDuplicatePhone, got %v", err)
	}
	if err := c.EditPhone("0999999999", "0631112233"); !errors.Is(err, ErrPhoneNotFound) {
		t.Fatalf("expected ErrPhoneNotFound, got %v", err)
	}
	if err := c.EditPhone("050 111 22 33", "0631112233"); err != nil {
		t.Fatalf("EditPhone failed: %v", err)
	}
	if !c.RemovePhone("(067) 123 45 67") {
		t.Fatalf("expected formatted phone to be removed")
	}
	if diff := cmp.Diff([]string{"0631112233"}, c.Phones); diff != "" {
		t.Fatalf("phones mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateEmailIsAnError(t *testing.T) {
	c, _ := New("Taras")
	if err := c.AddEmail("taras@example.com"); err != nil {
		t.Fatalf("AddEmail failed: %v", err)
	}
	if err := c.AddEmail("TARAS@example.com"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if !c.RemoveEmail("Taras@Example.com") {
		t.Fatalf("expected email removal")
	}
}

func TestDaysToBirthday(t *testing.T) {
	cases := []struct {
		birthday string
		now      time.Time
		want     int
	}{
		{birthday: "10.03.1990", now: testNow, want: 0},
		{birthday: "11.03.1990", now: testNow, want: 1},
		{birthday: "09.03.1990", now: testNow, want: 364},
		{birthday: "29.02.2000", now: time.Date(2025, time.February, 27, 9, 0, 0, 0, time.UTC), want: 1},
		{birthday: "01.01.1990", now: time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC), want: 1},
	}
	for _, tc := range cases {
		c, _ := New("Taras")
		if err := c.SetBirthday(tc.birthday, tc.now); err != nil {
			t.Fatalf("SetBirthday(%q) failed: %v", tc.birthday, err)
		}
		got, ok := c.DaysToBirthday(tc.now)
		if !ok || got != tc.want {
			t.Fatalf("DaysToBirthday(%s at %s)=%d,%v want=%d", tc.birthday, tc.now.Format(time.DateOnly), got, ok, tc.want)
		}
	}

	c, _ := New("Taras")
	if _, ok := c.DaysToBirthday(testNow); ok {
		t.Fatalf("expected no birthday")
	}
}

func TestMatches(t *testing.T) {
	c, _ := New("Олена Петрівна")
	_ = c.AddPhone("+380671234567")
	_ = c.AddEmail("olena@example.com")
	_ = c.SetAddress("Львів, Ринок 1")

	for _, q := range []string{"олена", "ПЕТРІВ", "067 123", "example.com", "львів", ""} {
		if !c.Matches(q) {
			t.Fatalf("expected %q to match", q)
		}
	}
	for _, q := range []string{"тарас", "999", "gmail"} {
		if c.Matches(q) {
			t.Fatalf("expected %q not to match", q)
		}
	}
}
