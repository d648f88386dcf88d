package event

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("event name cannot be empty")
	ErrEmptyTierName   = errors.New("price tier name cannot be empty")
	ErrNegativePrice   = errors.New("price tier price cannot be negative")
	ErrTierNotFound    = errors.New("price tier not found")
	ErrNoTiersTicketed = errors.New("ticketed event must define at least one price tier")
)

// PriceTier is a named ticket category for ticketed events.
type PriceTier struct {
	Name          string
	Price         float64
	AgeGroup      string
	MemberType    string
	PaymentMethod string
}

// Event represents a recurring cell meeting or a ticketed gathering.
// The persistent roster and weekly attendance history hang off the event
// but are owned by their own stores.
type Event struct {
	ID          string
	Name        string
	IsTicketed  bool
	PriceTiers  []PriceTier
	LeaderEmail string
	LeaderName  string
	CreatedAt   time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ticketed events carry at least one tier, tiers have names and
// non-negative prices
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.IsTicketed && len(e.PriceTiers) == 0 {
		return ErrNoTiersTicketed
	}
	for _, tier := range e.PriceTiers {
		if strings.TrimSpace(tier.Name) == "" {
			return ErrEmptyTierName
		}
		if tier.Price < 0 {
			return ErrNegativePrice
		}
	}
	return nil
}

// TierByName looks up a price tier by its name.
// PRE: name is non-empty
// POST: Returns the tier or ErrTierNotFound
func (e *Event) TierByName(name string) (PriceTier, error) {
	for _, tier := range e.PriceTiers {
		if strings.EqualFold(tier.Name, name) {
			return tier, nil
		}
	}
	return PriceTier{}, ErrTierNotFound
}
