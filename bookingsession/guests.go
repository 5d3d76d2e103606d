package bookingsession

import (
	"fmt"
	"strings"
)

// Guests tracks adult/kid counts against a location's capacity ceiling.
// Increments past capacity and decrements below the floors (one adult, zero
// kids) are silent no-ops.
type Guests struct {
	Adults      int
	Kids        int
	MaxCapacity int
}

func NewGuests(maxCapacity int) Guests {
	return Guests{Adults: 1, MaxCapacity: maxCapacity}
}

func (g *Guests) Total() int {
	return g.Adults + g.Kids
}

func (g *Guests) IncrementAdults() {
	if g.Total() < g.MaxCapacity {
		g.Adults++
	}
}

func (g *Guests) IncrementKids() {
	if g.Total() < g.MaxCapacity {
		g.Kids++
	}
}

func (g *Guests) DecrementAdults() {
	if g.Adults > 1 {
		g.Adults--
	}
}

func (g *Guests) DecrementKids() {
	if g.Kids > 0 {
		g.Kids--
	}
}

// OverCapacity is reachable only when MaxCapacity shrinks under an existing
// selection, e.g. after a location swap. It must block the reserve action.
func (g *Guests) OverCapacity() bool {
	return g.Total() > g.MaxCapacity
}

// Summary renders the guest line, e.g. "3 guests, 2 adults, 1 kid".
func (g *Guests) Summary() string {
	parts := []string{plural(g.Total(), "guest")}
	if g.Adults > 0 {
		parts = append(parts, plural(g.Adults, "adult"))
	}
	if g.Kids > 0 {
		parts = append(parts, plural(g.Kids, "kid"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
