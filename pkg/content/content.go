// Package content holds the static reply tables: menu and help strings,
// the disease fact table, and the assistant system prompt. Loaded once,
// read-only for the process lifetime.
package content

import (
	"fmt"
	"sort"
	"strings"
)

const (
	Menu = "📌 *Duma Animal Health Menu:*\n" +
		"1 about  2 services  3 contact  4 events  5 timetable\n" +
		"6 notes  7 disease  8 add reminder  9 show reminders\n" +
		"10 chat  11 join"

	About     = "🏫 Duma is an assistant for animal health students. Type 'menu' to go back."
	Services  = "🛠 Services: Vaccination drives, diagnostic guides, field training info."
	Contact   = "📞 Admin: Caleb Kasura\nEmail: calebkasura6@gmail.com"
	Events    = "📅 Events: Field visit Sep 15, Guest lecture Sep 30, Practical Oct 10"
	Timetable = "📚 Timetable: Mon-Parasitology 10am / Tue-Anatomy 2pm / Wed-Physiology 9am / Thu-Pathology 11am / Fri-Lab 1pm"

	ReminderHelp = "📝 *How to set a reminder:*\n" +
		"• `add reminder exam tomorrow at 9am`\n" +
		"• `remind me to call John at 5pm`\n" +
		"• `set reminder buy drugs Monday 10am`\n\n" +
		"✅ I'll remember it and remind you when the time comes!"

	NotesUsage    = "📖 Use: `notes <topic>`\nExample: `notes parasites`"
	DiseaseUsage  = "Use: `disease <name>`"
	ChatUsage     = "⚠️ Use: chat <message>"
	JoinFirst     = "⚠️ You must `join` first before using chat."
	NoReminders   = "📭 You don't have reminders. Use 'add reminder ...'"
	Fallback      = "🤖 I didn't understand. Type 'menu' for options."
	AIUnavailable = "Sorry — I'm having trouble reaching my AI brain. Try again in a moment."

	SystemPrompt = "You are Duma — a concise, helpful assistant for animal health students. " +
		"Give short actionable answers. If asked to set reminders, echo the parsed time format. " +
		"If asked for non-medical advice, warn and suggest seeking a vet or lecturer. " +
		"Use plain language; keep reply under 220 words."
)

func Greeting(sender string) string {
	return fmt.Sprintf("👋 Hello %s!\nI'm *Duma*, your Animal Health Class Assistant. Type `menu` to see options.", sender)
}

func NotesSummary(topic string) string {
	return fmt.Sprintf("📖 Notes on %s (summary):\n[Short summary placeholder].", title(topic))
}

// DiseaseFact is one entry in the disease lookup table.
type DiseaseFact struct {
	Cause      string
	Symptoms   string
	Treatment  string
	Prevention string
}

var diseases = map[string]DiseaseFact{
	"anthrax": {
		Cause:      "Bacillus anthracis (bacteria)",
		Symptoms:   "Sudden death, bleeding from body openings, swelling of neck/chest.",
		Treatment:  "No effective treatment once acute, but vaccination prevents outbreaks.",
		Prevention: "Annual vaccination, proper disposal of carcasses.",
	},
	"foot and mouth": {
		Cause:      "FMD virus (highly contagious)",
		Symptoms:   "Fever, blisters in mouth/hooves, drooling, lameness.",
		Treatment:  "No cure, supportive care only.",
		Prevention: "Movement control, vaccination, strict biosecurity.",
	},
	"rabies": {
		Cause:      "Rabies virus (transmitted by bites).",
		Symptoms:   "Behavior change, aggression, paralysis, death.",
		Treatment:  "Fatal once signs appear.",
		Prevention: "Dog vaccination, post-exposure prophylaxis.",
	},
	"east coast fever": {
		Cause:      "Protozoa (Theileria parva) spread by brown ear tick.",
		Symptoms:   "Fever, swollen lymph nodes, breathing problems, death in cattle.",
		Treatment:  "Drugs like buparvaquone if given early.",
		Prevention: "Tick control, ECF vaccination.",
	},
	"brucellosis": {
		Cause:      "Brucella bacteria.",
		Symptoms:   "Abortions, retained placenta, infertility.",
		Treatment:  "No effective treatment in livestock.",
		Prevention: "Vaccination, testing and culling, avoid raw milk.",
	},
}

// Disease renders the fact sheet for name, or an apology listing known
// disease names when the lookup misses.
func Disease(name string) string {
	if info, ok := diseases[name]; ok {
		return fmt.Sprintf("🦠 %s — Cause: %s Symptoms: %s Prevention: %s",
			title(name), info.Cause, info.Symptoms, info.Prevention)
	}
	return fmt.Sprintf("⚠️ I don't have info on %s. Try %s.", title(name), strings.Join(DiseaseNames(), ", "))
}

// DiseaseNames returns the known disease names in stable order.
func DiseaseNames() []string {
	names := make([]string, 0, len(diseases))
	for name := range diseases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
