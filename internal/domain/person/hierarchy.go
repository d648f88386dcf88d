package person

import "strings"

// No field records an inviter's own hierarchy level directly, so the level
// must be inferred from which of their own chain slots are populated.
// Classification is a pure function of the inviter's name and chain; name
// comparison is case- and whitespace-insensitive.

// sameName reports whether two free-text names refer to the same person.
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func empty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Classify infers a person's hierarchy level from their own leader chain.
// Rules are evaluated in priority order:
//  1. Leader12 set, Leader144 and Leader1728 empty -> they lead at @144.
//  2. Only Leader1 set -> they lead at @12.
//  3. Leader1 is their own name, or the chain is fully empty -> director (@1).
//  4. Anything else -> regular member with a complete chain.
//
// PRE: fullName and chain are the inviter's own record
// POST: Returns one of the Level* constants
// INVARIANT: chain is not mutated
func Classify(fullName string, chain LeaderChain) string {
	switch {
	case !empty(chain.Leader12) && empty(chain.Leader144) && empty(chain.Leader1728):
		return LevelHundred
	case !empty(chain.Leader1) && empty(chain.Leader12) && empty(chain.Leader144) && empty(chain.Leader1728):
		return LevelTwelve
	case sameName(chain.Leader1, fullName) ||
		(empty(chain.Leader1) && empty(chain.Leader12) && empty(chain.Leader144) && empty(chain.Leader1728)):
		return LevelDirector
	default:
		return LevelMember
	}
}

// ChainForInvitee computes the leader chain to assign to a person newly
// invited by the given inviter. The @1728 slot is never auto-assigned.
// PRE: inviter carries the inviter's own FullName and Chain
// POST: Returns the invitee's chain; inviter is not mutated
// INVARIANT: at most one new slot is filled relative to the inviter's chain,
// and slots are filled strictly outside-in
func ChainForInvitee(inviter Person) LeaderChain {
	switch Classify(inviter.FullName, inviter.Chain) {
	case LevelHundred:
		return LeaderChain{
			Leader1:   inviter.Chain.Leader1,
			Leader12:  inviter.Chain.Leader12,
			Leader144: inviter.FullName,
		}
	case LevelTwelve:
		return LeaderChain{
			Leader1:  inviter.Chain.Leader1,
			Leader12: inviter.FullName,
		}
	case LevelDirector:
		return LeaderChain{
			Leader1: inviter.FullName,
		}
	default:
		// Regular member: the invitee inherits the chain unchanged.
		return LeaderChain{
			Leader1:   inviter.Chain.Leader1,
			Leader12:  inviter.Chain.Leader12,
			Leader144: inviter.Chain.Leader144,
		}
	}
}
