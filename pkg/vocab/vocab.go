// Package vocab normalizes noisy free-text input into canonical intent
// tokens: slang expansion, exact vocabulary lookup, then fuzzy matching
// against the known command set.
package vocab

// Canonical intent tokens. Normalize returns one of these when the input
// resolves to a known command, otherwise the normalized phrase itself.
const (
	IntentGreeting      = "greeting"
	IntentMenu          = "menu"
	IntentAbout         = "about"
	IntentServices      = "services"
	IntentContact       = "contact"
	IntentEvents        = "events"
	IntentTimetable     = "timetable"
	IntentNotes         = "notes"
	IntentDisease       = "disease"
	IntentAddReminder   = "add-reminder"
	IntentShowReminders = "show-reminders"
	IntentChat          = "chat"
	IntentJoin          = "join"
)

// slangWords maps informal single tokens (Sheng and Swahili) to the
// canonical English word the vocabulary knows. Static for the process
// lifetime.
var slangWords = map[string]string{
	"sasa":        "hi",
	"niaje":       "hi",
	"mambo":       "hi",
	"vipi":        "hi",
	"poa":         "fine",
	"fiti":        "fine",
	"sawa":        "ok",
	"kwema":       "ok",
	"msaada":      "help",
	"huduma":      "services",
	"matukio":     "events",
	"mawasiliano": "contact",
	"kuhusu":      "about",
	"karibu":      "welcome",
	"kumbusho":    "reminder",
	"ratiba":      "timetable",
	"magonjwa":    "disease",
	"dawa":        "drugs",
}

// commands maps every accepted surface form (numeric shortcut, canonical
// word, synonym) to its intent token.
var commands = map[string]string{
	"1": IntentAbout, "about": IntentAbout,
	"2": IntentServices, "services": IntentServices,
	"3": IntentContact, "contact": IntentContact,
	"4": IntentEvents, "events": IntentEvents,
	"5": IntentTimetable, "timetable": IntentTimetable,
	"6": IntentNotes, "notes": IntentNotes,
	"7": IntentDisease, "disease": IntentDisease,
	"8": IntentAddReminder, "add reminder": IntentAddReminder,
	"9": IntentShowReminders, "show reminders": IntentShowReminders,
	"10": IntentChat, "chat": IntentChat,
	"11": IntentJoin, "join": IntentJoin,
	"menu": IntentMenu, "help": IntentMenu,
	"hi": IntentGreeting, "hello": IntentGreeting,
	"ok": IntentGreeting, "fine": IntentGreeting,
}
