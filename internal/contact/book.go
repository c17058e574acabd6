package contact

import (
	"sort"
	"time"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByBirthday SortKey = "birthday"
)

// Stats summarizes a book.
type Stats struct {
	Total             int `json:"total_contacts"`
	WithPhones        int `json:"with_phones"`
	WithEmails        int `json:"with_emails"`
	WithBirthdays     int `json:"with_birthdays"`
	WithAddresses     int `json:"with_addresses"`
	UpcomingBirthdays int `json:"upcoming_birthdays"`
}

// Book keeps contacts in insertion order, unique by case-insensitive name.
type Book struct {
	contacts []*Contact
}

func NewBook(contacts ...*Contact) *Book {
	b := &Book{}
	for _, c := range contacts {
		b.Add(c)
	}
	return b
}

func (b *Book) Len() int {
	return len(b.contacts)
}

func (b *Book) Contacts() []*Contact {
	return append([]*Contact(nil), b.contacts...)
}

// Add stores c, replacing a contact with the same name. It reports whether a
// contact was replaced.
func (b *Book) Add(c *Contact) bool {
	if idx := b.index(c.Name); idx >= 0 {
		b.contacts[idx] = c
		return true
	}
	b.contacts = append(b.contacts, c)
	return false
}

func (b *Book) Find(name string) (*Contact, bool) {
	idx := b.index(name)
	if idx < 0 {
		return nil, false
	}
	return b.contacts[idx], true
}

func (b *Book) Remove(name string) bool {
	idx := b.index(name)
	if idx < 0 {
		return false
	}
	b.contacts = append(b.contacts[:idx], b.contacts[idx+1:]...)
	return true
}

func (b *Book) Search(query string) []*Contact {
	out := make([]*Contact, 0)
	for _, c := range b.contacts {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

// All returns every contact sorted by name, or by days to the next birthday
// with birthday-less contacts last.
func (b *Book) All(by SortKey, now time.Time) []*Contact {
	out := append([]*Contact(nil), b.contacts...)
	switch by {
	case SortByBirthday:
		sort.SliceStable(out, func(i, j int) bool {
			di, oki := out[i].DaysToBirthday(now)
			dj, okj := out[j].DaysToBirthday(now)
			if oki != okj {
				return oki
			}
			if oki && di != dj {
				return di < dj
			}
			return out[i].Key() < out[j].Key()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Key() < out[j].Key()
		})
	}
	return out
}

func (b *Book) Upcoming(daysAhead int, now time.Time) []*Contact {
	out := make([]*Contact, 0)
	for _, c := range b.contacts {
		if days, ok := c.DaysToBirthday(now); ok && days <= daysAhead {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, _ := out[i].DaysToBirthday(now)
		dj, _ := out[j].DaysToBirthday(now)
		if di != dj {
			return di < dj
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

func (b *Book) ByBirthday(dayMonth string) ([]*Contact, error) {
	day, month, err := DayMonth(dayMonth)
	if err != nil {
		return nil, err
	}
	out := make([]*Contact, 0)
	for _, c := range b.contacts {
		if c.HasBirthday() && c.Birthday.Day() == day && c.Birthday.Month() == month {
			out = append(out, c)
		}
	}
	return out, nil
}

func (b *Book) Stats(daysAhead int, now time.Time) Stats {
	stats := Stats{Total: len(b.contacts)}
	for _, c := range b.contacts {
		if len(c.Phones) > 0 {
			stats.WithPhones++
		}
		if len(c.Emails) > 0 {
			stats.WithEmails++
		}
		if c.HasBirthday() {
			stats.WithBirthdays++
		}
		if c.Address != "" {
			stats.WithAddresses++
		}
	}
	stats.UpcomingBirthdays = len(b.Upcoming(daysAhead, now))
	return stats
}

func (b *Book) index(name string) int {
	key := nameKey(name)
	for i, c := range b.contacts {
		if c.Key() == key {
			return i
		}
	}
	return -1
}
