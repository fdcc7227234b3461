package service

import (
	"strings"

	"partyplanner/internal/model"
)

// agentSpec describes one prompt-driven planning agent
type agentSpec struct {
	Name        string
	Title       string
	Instruction string
	Temperature float64
	MaxChars    int
}

const (
	agentTopP      = 0.95
	agentMaxTokens = 2560
	maxBullets     = 10
)

var budgetAgent = agentSpec{
	Name:        "Budget",
	Title:       "Budget",
	Temperature: 0.4,
	Instruction: `You plan birthday party budgets in Turkey.

Cover these cost lines: venue, food and drinks, cake, decorations, entertainment,
party favors, photo or video, transport, and a 10-15% contingency.

Also give the cost per guest, hidden costs worth checking, cheaper alternatives,
and realistic ₺ prices with any seasonal note or service charge.

OUTPUT RULES (IMPORTANT):
- Order: summary (2 bullets), compact cost list, savings (2-3 bullets), action checklist (2 bullets).
- At most 10 bullets in total; a cost list may be a single comma-separated bullet.
- No greetings or filler. All prices in ₺.`,
}

var menuAgent = agentSpec{
	Name:        "Menu",
	Title:       "Menu",
	Temperature: 0.5,
	Instruction: `You design birthday party menus for the selected cuisine.

Respect every dietary restriction, size portions for Turkish appetites, include
birthday treats, and estimate cost in ₺ with prep time and logistics.
Kids want colorful finger food with mild flavors, teens want shareable trendy
dishes, adults want a balanced spread with dietary options.

Sections: welcome drinks, mains, snacks, cake options, dietary alternatives,
prep and supplier tips, cost summary.

OUTPUT RULES (IMPORTANT):
- Keep every section; merge long ones into one comma-separated bullet.
- At most 10 bullets in total.
- No greetings or filler. Prices in ₺.`,
}

var cakeAgent = agentSpec{
	Name:        "Menu",
	Title:       "Menu",
	Temperature: 0.5,
	Instruction: `Recommend birthday cakes from Turkish bakeries.

Take into account the celebrant's age, the guest count and portions, dietary
restrictions, the budget and custom decoration ideas.

OUTPUT RULES (IMPORTANT):
- Exactly three options: budget, mid-range, premium.
- For each: style and flavor, size or portions, dietary note, approximate ₺ price, lead time.
- One or two bullets per option, six at most.
- Do not restate the city, date or guest count. No greetings or filler.`,
}

var activityAgent = agentSpec{
	Name:        "Activity",
	Title:       "Activities",
	Temperature: 0.5,
	MaxChars:    1200,
	Instruction: `You coordinate birthday party activities for the preferred activity type.

Plan age-appropriate activities that involve every guest, alternate active and
calm moments, follow the energy of the party and keep a backup for bad weather.
Consider indoor or outdoor feasibility, materials and setup time, supervision,
cultural fit and material costs.

Sections: theme, budget, timeline, materials, backup plan, notes.

OUTPUT RULES (IMPORTANT):
- Keep every section; merge long ones into one comma-separated bullet.
- At most 10 bullets in total, short headings allowed.
- No greetings or filler. Prices briefly in ₺.`,
}

var guestAgent = agentSpec{
	Name:        "Guest",
	Title:       "Guests",
	Temperature: 0.4,
	Instruction: `You manage guests for birthday parties.

Sections: invitation timing, RSVP tracking, dietary collection, transport,
gift plan, message templates, budget considerations. Pick channels that suit
the guests' ages and plan thank-you notes.

OUTPUT RULES (IMPORTANT):
- Keep every section; merge long ones into one comma-separated bullet.
- At most 10 bullets in total.
- Exactly one short invitation template and one short reminder template.
- No greetings or filler.`,
}

var cakeTasks = map[string]bool{"cake": true, "cake_selection": true, "cake-select": true}

// menuAgentFor switches to cake selection on an explicit task or any cake hint
func menuAgentFor(req model.PlanRequest) agentSpec {
	if cakeTasks[strings.ToLower(strings.TrimSpace(req.Task))] {
		return cakeAgent
	}
	if c := req.Cake; c != nil && (c.BudgetTL > 0 || c.Portions > 0 || c.Theme != "" || c.Dietary != "") {
		return cakeAgent
	}
	return menuAgent
}

// composeAgentPrompt appends the request as indented JSON and the shared
// response requirements to an agent instruction
func composeAgentPrompt(instruction, payload string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\nUSER INPUT (JSON):\n")
	b.WriteString(payload)
	b.WriteString("\n\nRESPONSE REQUIREMENTS:\n")
	b.WriteString("- Follow the instruction precisely.\n")
	b.WriteString("- Use Turkish context and TL (₺) prices when relevant to Turkey.\n")
	b.WriteString("- Be specific and actionable.\n")
	b.WriteString("- Output should be plain text in English, not JSON.\n")
	return b.String()
}
