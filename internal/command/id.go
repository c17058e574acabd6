package command

// ID is the canonical identifier of one supported user action.
// The set is closed: registry entries with an ID outside of it are rejected.
type ID string

const (
	None ID = ""

	AddContact    ID = "add_contact"
	SearchContact ID = "search_contact"
	ShowContacts  ID = "show_contacts"
	EditContact   ID = "edit_contact"
	DeleteContact ID = "delete_contact"
	AddNote       ID = "add_note"
	SearchNotes   ID = "search_notes"
	ShowNotes     ID = "show_notes"
	EditNote      ID = "edit_note"
	DeleteNote    ID = "delete_note"
	Birthdays     ID = "birthdays"
	Help          ID = "help"
	Exit          ID = "exit"
)

func All() []ID {
	return []ID{
		AddContact,
		SearchContact,
		ShowContacts,
		EditContact,
		DeleteContact,
		AddNote,
		SearchNotes,
		ShowNotes,
		EditNote,
		DeleteNote,
		Birthdays,
		Help,
		Exit,
	}
}

func (id ID) Known() bool {
	switch id {
	case AddContact, SearchContact, ShowContacts, EditContact, DeleteContact,
		AddNote, SearchNotes, ShowNotes, EditNote, DeleteNote,
		Birthdays, Help, Exit:
		return true
	default:
		return false
	}
}

func (id ID) String() string {
	if id == None {
		return "none"
	}
	return string(id)
}
