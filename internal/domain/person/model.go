package person

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Hierarchy level constants. A person's level in the leadership tree is
// inferred once at creation time (see Classify) and stored explicitly,
// never re-derived from which chain slots happen to be empty.
const (
	LevelDirector = "director" // top of the tree ("@1")
	LevelTwelve   = "twelve"   // "@12" leader
	LevelHundred  = "hundred"  // "@144" leader
	LevelMember   = "member"   // regular member with a full chain
)

// Stage constants for where a person is in the assimilation pipeline.
const (
	StageWin         = "win"
	StageConsolidate = "consolidate"
	StageDisciple    = "disciple"
	StageSend        = "send"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("person name cannot be empty")
	ErrNameTooLong  = errors.New("person name cannot exceed 100 characters")
	ErrInvalidEmail = errors.New("person email must be valid")
)

// LeaderChain records who disciples a person at each level of the tree.
// Values are free-text full names; an empty string means the slot is
// unassigned. Slots are filled strictly outside-in (1 -> 12 -> 144 -> 1728).
type LeaderChain struct {
	Leader1    string
	Leader12   string
	Leader144  string
	Leader1728 string
}

// Names returns the non-empty chain entries in outside-in order.
func (c LeaderChain) Names() []string {
	var names []string
	for _, name := range []string{c.Leader1, c.Leader12, c.Leader144, c.Leader1728} {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	return names
}

// Person holds state for the concept.
type Person struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Gender    string
	DOB       string // YYYY-MM-DD format
	Address   string
	Stage     string
	Chain     LeaderChain
	Level     string // hierarchy level, set once at creation
	InvitedBy string
	CreatedAt time.Time
}

// Validate checks if the Person has valid data.
// PRE: Person struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: FullName must not be empty; Email, when set, must contain '@'
func (p *Person) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return ErrEmptyName
	}
	if len(p.FullName) > MaxNameLength {
		return ErrNameTooLong
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Summary is the compact person shape exchanged with rosters and search.
type Summary struct {
	ID         string
	FullName   string
	Email      string
	Phone      string
	Leader1    string
	Leader12   string
	Leader144  string
	Leader1728 string
}

// Summarize converts a Person to its Summary shape.
func (p *Person) Summarize() Summary {
	return Summary{
		ID:         p.ID,
		FullName:   p.FullName,
		Email:      p.Email,
		Phone:      p.Phone,
		Leader1:    p.Chain.Leader1,
		Leader12:   p.Chain.Leader12,
		Leader144:  p.Chain.Leader144,
		Leader1728: p.Chain.Leader1728,
	}
}
