package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustContact(t *testing.T, name, birthday string) *Contact {
	t.Helper()
	c, err := New(name)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", name, err)
	}
	if birthday != "" {
		if err := c.SetBirthday(birthday, testNow); err != nil {
			t.Fatalf("SetBirthday(%q) failed: %v", birthday, err)
		}
	}
	return c
}

func names(contacts []*Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Name)
	}
	return out
}

func TestBookAddReplacesSameNameCaseInsensitively(t *testing.T) {
	book := NewBook()
	first := mustContact(t, "Олена", "")
	_ = first.AddPhone("0671234567")
	if replaced := book.Add(first); replaced {
		t.Fatalf("first add should not replace")
	}
	second := mustContact(t, "ОЛЕНА", "")
	if replaced := book.Add(second); !replaced {
		t.Fatalf("expected same-name add to replace")
	}
	if book.Len() != 1 {
		t.Fatalf("expected one contact, got %d", book.Len())
	}
	found, ok := book.Find("олена")
	if !ok || len(found.Phones) != 0 {
		t.Fatalf("expected the replacement contact, got %+v ok=%v", found, ok)
	}
	if !book.Remove("  олена ") {
		t.Fatalf("expected removal by folded name")
	}
	if book.Remove("олена") {
		t.Fatalf("expected second removal to report false")
	}
}

func TestBookSortAndUpcoming(t *testing.T) {
	book := NewBook(
		mustContact(t, "Богдан", "20.03.1985"),
		mustContact(t, "Андрій", ""),
		mustContact(t, "Вікторія", "11.03.1999"),
		mustContact(t, "Галина", "10.03.1970"),
		mustContact(t, "Дмитро", "01.01.2000"),
	)

	if diff := cmp.Diff([]string{"Андрій", "Богдан", "Вікторія", "Галина", "Дмитро"}, names(book.All(SortByName, testNow))); diff != "" {
		t.Fatalf("name order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Галина", "Вікторія", "Богдан", "Дмитро", "Андрій"}, names(book.All(SortByBirthday, testNow))); diff != "" {
		t.Fatalf("birthday order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Галина", "Вікторія"}, names(book.Upcoming(7, testNow))); diff != "" {
		t.Fatalf("upcoming mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Галина", "Вікторія", "Богдан"}, names(book.Upcoming(10, testNow))); diff != "" {
		t.Fatalf("upcoming(10) mismatch (-want +got):\n%s", diff)
	}
}

func TestBookByBirthday(t *testing.T) {
	book := NewBook(
		mustContact(t, "Богдан", "20.03.1985"),
		mustContact(t, "Марта", "20.03.2001"),
		mustContact(t, "Андрій", "21.03.1985"),
	)
	got, err := book.ByBirthday("20.03")
	if err != nil {
		t.Fatalf("ByBirthday failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Богдан", "Марта"}, names(got)); diff != "" {
		t.Fatalf("ByBirthday mismatch (-want +got):\n%s", diff)
	}
	if _, err := book.ByBirthday("32.13"); !errors.Is(err, ErrInvalidDayMonth) {
		t.Fatalf("expected ErrInvalidDayMonth, got %v", err)
	}
}

func TestBookSearchAndStats(t *testing.T) {
	olena := mustContact(t, "Олена", "12.03.1990")
	_ = olena.AddPhone("0671234567")
	_ = olena.AddEmail("olena@example.com")
	taras := mustContact(t, "Тарас", "")
	_ = taras.SetAddress("Київ")
	book := NewBook(olena, taras)

	if diff := cmp.Diff([]string{"Тарас"}, names(book.Search("київ"))); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
	if got := book.Search(""); len(got) != 2 {
		t.Fatalf("expected empty query to return all, got %d", len(got))
	}
	if got := book.Search("нікого"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}

	want := Stats{Total: 2, WithPhones: 1, WithEmails: 1, WithBirthdays: 1, WithAddresses: 1, UpcomingBirthdays: 1}
	if diff := cmp.Diff(want, book.Stats(7, testNow)); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestUpcomingHandlesYearWrap(t *testing.T) {
	now := time.Date(2024, time.December, 29, 8, 0, 0, 0, time.UTC)
	c, _ := New("Дмитро")
	if err := c.SetBirthday("02.01.2000", now); err != nil {
		t.Fatalf("SetBirthday failed: %v", err)
	}
	book := NewBook(c)
	if got := book.Upcoming(7, now); len(got) != 1 {
		t.Fatalf("expected January birthday to be upcoming in late December")
	}
}
