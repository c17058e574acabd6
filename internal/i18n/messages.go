package i18n

// Message keys. Templates take fmt verbs in the order the call sites pass them.
const (
	Welcome     = "welcome"
	WelcomeHint = "welcome_hint"
	Goodbye     = "goodbye"
	Prompt      = "prompt"

	NotUnderstood = "not_understood"
	DidYouMean    = "did_you_mean"
	PickCommand   = "pick_command"
	CommandFailed = "command_failed"
	Cancelled     = "cancelled"

	AskName         = "ask_name"
	AskPhone        = "ask_phone"
	AskEmail        = "ask_email"
	AskBirthday     = "ask_birthday"
	AskAddress      = "ask_address"
	AskSearch       = "ask_search"
	AskEditName     = "ask_edit_name"
	AskDeleteName   = "ask_delete_name"
	AskOldPhone     = "ask_old_phone"
	AskNoteTitle    = "ask_note_title"
	AskNoteContent  = "ask_note_content"
	AskNoteTags     = "ask_note_tags"
	AskNoteSearch   = "ask_note_search"
	AskEditNote     = "ask_edit_note"
	AskDeleteNote   = "ask_delete_note"
	AskNewTitle     = "ask_new_title"
	AskNewContent   = "ask_new_content"
	AskNewTags      = "ask_new_tags"
	AskBirthdayDays = "ask_birthday_days"

	NameRequired  = "name_required"
	QueryRequired = "query_required"
	TitleRequired = "title_required"
	DaysInvalid   = "days_invalid"

	ContactAdded     = "contact_added"
	ContactReplaced  = "contact_replaced"
	ContactUpdated   = "contact_updated"
	ContactUnchanged = "contact_unchanged"
	ContactNotFound  = "contact_not_found"
	ContactDeleted   = "contact_deleted"
	ContactsFound    = "contacts_found"
	ContactsTotal    = "contacts_total"
	ContactsEmpty    = "contacts_empty"
	ContactsNoMatch  = "contacts_no_match"
	ConfirmContact   = "confirm_delete_contact"

	NoteCreated       = "note_created"
	NotesFound        = "notes_found"
	NotesTotal        = "notes_total"
	NotesEmpty        = "notes_empty"
	NotesNoMatch      = "notes_no_match"
	NoteNumberMissing = "note_number_missing"
	NoteNumberInvalid = "note_number_invalid"
	NoteNotFound      = "note_not_found"
	NoteUpdated       = "note_updated"
	NoteUnchanged     = "note_unchanged"
	NoteDeleted       = "note_deleted"
	ConfirmNote       = "confirm_delete_note"

	BirthdaysNone    = "birthdays_none"
	BirthdaysHeader  = "birthdays_header"
	BirthdayToday    = "birthday_today"
	BirthdayTomorrow = "birthday_tomorrow"
	BirthdayInDays   = "birthday_in_days"

	BirthdaysOnDay     = "birthdays_on_day"
	BirthdaysOnDayNone = "birthdays_on_day_none"
	ErrDayMonth        = "err_day_month"

	HelpTitle         = "help_title"
	HelpContacts      = "help_contacts"
	HelpNotes         = "help_notes"
	HelpOther         = "help_other"
	HelpNoDescription = "help_no_description"
	HelpExamples      = "help_examples"

	FieldName     = "field_name"
	FieldPhones   = "field_phones"
	FieldEmails   = "field_emails"
	FieldBirthday = "field_birthday"
	FieldAddress  = "field_address"
	FieldTags     = "field_tags"
	FieldCreated  = "field_created"

	ErrName     = "err_name"
	ErrPhone    = "err_phone"
	ErrEmail    = "err_email"
	ErrBirthday = "err_birthday"
	ErrAddress  = "err_address"
	ErrTitle    = "err_title"
	ErrTag      = "err_tag"
	ErrDupEmail = "err_duplicate_email"
	ErrDupPhone = "err_duplicate_phone"
	ErrNoPhone  = "err_phone_missing"
	ErrSave     = "err_save"

	Yes = "yes"
	No  = "no"
)

func defaultUkrainianCatalog() Catalog {
	return Catalog{
		Locale: "uk",
		Messages: map[string]string{
			Welcome:     "Вітаю у персональному помічнику!",
			WelcomeHint: "Введіть команду або 'help' для довідки",
			Goodbye:     "До побачення!",
			Prompt:      "> ",

			NotUnderstood: "Не розумію команду. Введіть 'help' для довідки.",
			DidYouMean:    "Можливо, ви мали на увазі: %s",
			PickCommand:   "Оберіть команду",
			CommandFailed: "Помилка виконання команди: %v",
			Cancelled:     "Скасовано",

			AskName:         "Введіть ім'я контакту: ",
			AskPhone:        "Введіть телефон (або Enter для пропуску): ",
			AskEmail:        "Введіть email (або Enter для пропуску): ",
			AskBirthday:     "Введіть день народження ДД.ММ.РРРР (або Enter для пропуску): ",
			AskAddress:      "Введіть адресу (або Enter для пропуску): ",
			AskSearch:       "Введіть ім'я для пошуку: ",
			AskEditName:     "Введіть ім'я контакту для редагування: ",
			AskDeleteName:   "Введіть ім'я контакту для видалення: ",
			AskOldPhone:     "Який номер замінити (або Enter, щоб додати новий): ",
			AskNoteTitle:    "Введіть заголовок нотатки: ",
			AskNoteContent:  "Введіть зміст нотатки (або Enter для пропуску): ",
			AskNoteTags:     "Введіть теги через кому (або Enter для пропуску): ",
			AskNoteSearch:   "Введіть текст або #тег для пошуку: ",
			AskEditNote:     "Введіть номер нотатки для редагування: ",
			AskDeleteNote:   "Введіть номер нотатки для видалення: ",
			AskNewTitle:     "Новий заголовок (або Enter для пропуску): ",
			AskNewContent:   "Введіть новий зміст (або Enter для пропуску): ",
			AskNewTags:      "Нові теги через кому (або Enter для пропуску): ",
			AskBirthdayDays: "На скільки днів уперед шукати, або день як ДД.ММ (Enter для %d): ",

			NameRequired:  "Помилка: ім'я не може бути порожнім",
			QueryRequired: "Пошуковий запит не може бути порожнім",
			TitleRequired: "Заголовок не може бути порожнім",
			DaysInvalid:   "Кількість днів має бути числом від 1 до 366",

			ContactAdded:     "Контакт '%s' успішно додано!",
			ContactReplaced:  "Контакт '%s' оновлено новими даними",
			ContactUpdated:   "Контакт '%s' оновлено",
			ContactUnchanged: "Контакт '%s' не змінено",
			ContactNotFound:  "Контакт з ім'ям '%s' не знайдено",
			ContactDeleted:   "Контакт '%s' успішно видалено",
			ContactsFound:    "Знайдено контактів: %d",
			ContactsTotal:    "Усього контактів: %d",
			ContactsEmpty:    "Контактів поки що немає",
			ContactsNoMatch:  "Контактів не знайдено",
			ConfirmContact:   "Видалити контакт '%s'?",

			NoteCreated:       "Нотатку '%s' успішно створено!",
			NotesFound:        "Знайдено нотаток: %d",
			NotesTotal:        "Усього нотаток: %d",
			NotesEmpty:        "Нотаток поки що немає",
			NotesNoMatch:      "Нотаток не знайдено",
			NoteNumberMissing: "Номер нотатки не може бути порожнім",
			NoteNumberInvalid: "Номер нотатки має бути числом",
			NoteNotFound:      "Нотатку з таким номером не знайдено",
			NoteUpdated:       "Нотатку успішно оновлено!",
			NoteUnchanged:     "Нотатка не змінена",
			NoteDeleted:       "Нотатку '%s' успішно видалено",
			ConfirmNote:       "Видалити нотатку '%s'?",

			BirthdaysNone:    "Найближчим часом (%d дн.) днів народження немає",
			BirthdaysHeader:  "Дні народження найближчі %d дн.:",
			BirthdayToday:    "СЬОГОДНІ ДЕНЬ НАРОДЖЕННЯ!",
			BirthdayTomorrow: "День народження завтра!",
			BirthdayInDays:   "До дня народження: %d дн.",

			BirthdaysOnDay:     "Дні народження %s:",
			BirthdaysOnDayNone: "%s ні в кого немає дня народження",
			ErrDayMonth:        "Помилка дати: використовуйте формат ДД.ММ",

			HelpTitle:         "ПЕРСОНАЛЬНИЙ ПОМІЧНИК - Доступні команди:",
			HelpContacts:      "Управління контактами:",
			HelpNotes:         "Управління нотатками:",
			HelpOther:         "Інші команди:",
			HelpNoDescription: "Опис відсутній",
			HelpExamples:      "наприклад",

			FieldName:     "Ім'я",
			FieldPhones:   "Телефони",
			FieldEmails:   "Emails",
			FieldBirthday: "День народження",
			FieldAddress:  "Адреса",
			FieldTags:     "Теги",
			FieldCreated:  "Створено",

			ErrName:     "Ім'я може містити тільки літери, пробіли, дефіси та апострофи",
			ErrPhone:    "Помилка телефону: номер має містити від 10 до 15 цифр",
			ErrEmail:    "Помилка email: неправильний формат адреси",
			ErrBirthday: "Помилка дати: використовуйте формат ДД.ММ.РРРР і не майбутню дату",
			ErrAddress:  "Адреса не може бути порожньою або довшою за 200 символів",
			ErrTitle:    "Заголовок нотатки має містити від 1 до 100 символів",
			ErrTag:      "Тег може містити тільки літери, цифри, дефіси та підкреслення (до 30 символів)",
			ErrDupEmail: "Такий email вже існує у цьому контакті",
			ErrDupPhone: "Такий номер вже існує у цьому контакті",
			ErrNoPhone:  "Такого номера немає у контакті",
			ErrSave:     "Не вдалося зберегти дані: %v",

			Yes: "Так",
			No:  "Ні",
		},
	}
}

func defaultEnglishCatalog() Catalog {
	return Catalog{
		Locale: "en",
		Messages: map[string]string{
			Welcome:     "Welcome to your personal assistant!",
			WelcomeHint: "Type a command or 'help' for the list",
			Goodbye:     "Goodbye!",
			Prompt:      "> ",

			NotUnderstood: "Command not understood. Type 'help' for the list.",
			DidYouMean:    "Did you mean: %s",
			PickCommand:   "Pick a command",
			CommandFailed: "Command failed: %v",
			Cancelled:     "Cancelled",

			AskName:         "Contact name: ",
			AskPhone:        "Phone (Enter to skip): ",
			AskEmail:        "Email (Enter to skip): ",
			AskBirthday:     "Birthday DD.MM.YYYY (Enter to skip): ",
			AskAddress:      "Address (Enter to skip): ",
			AskSearch:       "Search for: ",
			AskEditName:     "Name of the contact to edit: ",
			AskDeleteName:   "Name of the contact to delete: ",
			AskOldPhone:     "Phone to replace (Enter to add a new one): ",
			AskNoteTitle:    "Note title: ",
			AskNoteContent:  "Note text (Enter to skip): ",
			AskNoteTags:     "Tags, comma separated (Enter to skip): ",
			AskNoteSearch:   "Text or #tag to search for: ",
			AskEditNote:     "Number of the note to edit: ",
			AskDeleteNote:   "Number of the note to delete: ",
			AskNewTitle:     "New title (Enter to keep): ",
			AskNewContent:   "New text (Enter to keep): ",
			AskNewTags:      "New tags, comma separated (Enter to keep): ",
			AskBirthdayDays: "How many days ahead, or a day as DD.MM (Enter for %d): ",

			NameRequired:  "Error: name cannot be empty",
			QueryRequired: "Search query cannot be empty",
			TitleRequired: "Title cannot be empty",
			DaysInvalid:   "Days ahead must be a number from 1 to 366",

			ContactAdded:     "Contact '%s' added!",
			ContactReplaced:  "Contact '%s' replaced with the new details",
			ContactUpdated:   "Contact '%s' updated",
			ContactUnchanged: "Contact '%s' left unchanged",
			ContactNotFound:  "No contact named '%s'",
			ContactDeleted:   "Contact '%s' deleted",
			ContactsFound:    "Contacts found: %d",
			ContactsTotal:    "Total contacts: %d",
			ContactsEmpty:    "No contacts yet",
			ContactsNoMatch:  "No contacts found",
			ConfirmContact:   "Delete contact '%s'?",

			NoteCreated:       "Note '%s' created!",
			NotesFound:        "Notes found: %d",
			NotesTotal:        "Total notes: %d",
			NotesEmpty:        "No notes yet",
			NotesNoMatch:      "No notes found",
			NoteNumberMissing: "Note number cannot be empty",
			NoteNumberInvalid: "Note number must be a number",
			NoteNotFound:      "No note with that number",
			NoteUpdated:       "Note updated!",
			NoteUnchanged:     "Note left unchanged",
			NoteDeleted:       "Note '%s' deleted",
			ConfirmNote:       "Delete note '%s'?",

			BirthdaysNone:    "No birthdays in the next %d days",
			BirthdaysHeader:  "Birthdays in the next %d days:",
			BirthdayToday:    "BIRTHDAY TODAY!",
			BirthdayTomorrow: "Birthday tomorrow!",
			BirthdayInDays:   "Days to birthday: %d",

			BirthdaysOnDay:     "Birthdays on %s:",
			BirthdaysOnDayNone: "Nobody has a birthday on %s",
			ErrDayMonth:        "Date error: use DD.MM",

			HelpTitle:         "PERSONAL ASSISTANT - available commands:",
			HelpContacts:      "Contacts:",
			HelpNotes:         "Notes:",
			HelpOther:         "Other:",
			HelpNoDescription: "No description",
			HelpExamples:      "e.g.",

			FieldName:     "Name",
			FieldPhones:   "Phones",
			FieldEmails:   "Emails",
			FieldBirthday: "Birthday",
			FieldAddress:  "Address",
			FieldTags:     "Tags",
			FieldCreated:  "Created",

			ErrName:     "Name may contain only letters, spaces, hyphens and apostrophes",
			ErrPhone:    "Phone error: a number needs 10 to 15 digits",
			ErrEmail:    "Email error: malformed address",
			ErrBirthday: "Date error: use DD.MM.YYYY and a date that is not in the future",
			ErrAddress:  "Address must be 1 to 200 characters",
			ErrTitle:    "Note title must be 1 to 100 characters",
			ErrTag:      "Tags may contain letters, digits, hyphens and underscores (up to 30 characters)",
			ErrDupEmail: "This contact already has that email",
			ErrDupPhone: "This contact already has that phone",
			ErrNoPhone:  "This contact has no such phone",
			ErrSave:     "Could not save data: %v",

			Yes: "Yes",
			No:  "No",
		},
	}
}
