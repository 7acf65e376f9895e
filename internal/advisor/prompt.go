package advisor

import (
	"fmt"
	"strings"

	"github.com/robalobadob/terraform-os/internal/tracker"
)

const (
	tacticalTemperature float32 = 0.7
	setupTemperature    float32 = 0.5
)

const setupSystemPrompt = "You are a Terraforming Mars grandmaster. Analyze setups for maximum efficiency."

// StateFragment renders the parts of the state the model needs, as plain text.
func StateFragment(s tracker.State) string {
	var b strings.Builder
	g := s.GlobalParameters
	fmt.Fprintf(&b, "- TR: %d\n", s.TerraformRating)
	fmt.Fprintf(&b, "- Generation: %d\n", s.Generation)
	fmt.Fprintf(&b, "- Global Parameters: Temp %dC, O2 %d%%, Oceans %d/%d.\n", g.Temperature, g.Oxygen, g.Oceans, tracker.OceansMax)
	fmt.Fprintf(&b, "- Production: %s.\n", ledgerLine(s.Production))
	fmt.Fprintf(&b, "- Resources: %s.\n", ledgerLine(s.Resources))
	return b.String()
}

// ledgerLine formats a ledger as "M€ 1, Steel 2, ...".
func ledgerLine(l tracker.Ledger) string {
	parts := make([]string, 0, len(l))
	for _, r := range tracker.Resources() {
		name := r.String()
		if r == tracker.MegaCredits {
			name = "M€"
		}
		parts = append(parts, fmt.Sprintf("%s %d", name, l[r]))
	}
	return strings.Join(parts, ", ")
}

// TacticalSystemPrompt is the system instruction for a tactical query.
func TacticalSystemPrompt(s tracker.State) string {
	var b strings.Builder
	b.WriteString("You are an expert strategic advisor for the board game Terraforming Mars.\n")
	b.WriteString("Your goal is to provide concise, mathematical, and highly strategic advice.\n\n")
	b.WriteString("Current Game State:\n")
	b.WriteString(StateFragment(s))
	b.WriteString("\nAnalyze the user's specific query based on this state.\n")
	b.WriteString("Prioritize engine building in early game, and VP efficiency in late game.\n")
	b.WriteString("Be brief and direct. Use bullet points.\n")
	return b.String()
}

// SetupPrompt asks for a corporation pick and card keep/discard split.
func SetupPrompt(corpA, corpB, cards string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have to choose between two corporations: %s and %s.\n", corpA, corpB)
	fmt.Fprintf(&b, "I have these 10 project cards in my starting hand: %s.\n\n", cards)
	b.WriteString("Please analyze the synergy between the corporations and the cards.\n")
	b.WriteString("1. Which Corporation should I pick?\n")
	b.WriteString("2. Which cards should I keep (buy) vs discard?\n")
	b.WriteString("3. Explain the strategy briefly.\n")
	return b.String()
}
