package recur

import "errors"

var (
	// ErrInvalidSeed is returned by Rule.Iterator when the start instant
	// cannot anchor an expansion (zero time or a year outside 1..9999).
	ErrInvalidSeed = errors.New("recur: invalid start instant")

	// ErrRuleUnsatisfiable is returned at construction when a rule part
	// carries a value outside its legal range (BYMONTH=13 and friends) and
	// therefore can never match any instant.
	ErrRuleUnsatisfiable = errors.New("recur: rule can never produce instances")
)
