package fsm

import "fmt"

// CollisionPolicy decides where a collision in Playing leads.
type CollisionPolicy int

const (
	// PolicyLifeCounting goes to GameOver once lives reach zero, LifeLost otherwise.
	PolicyLifeCounting CollisionPolicy = iota
	// PolicyAlwaysLifeLost always goes to LifeLost.
	PolicyAlwaysLifeLost
	// PolicySuddenDeath always goes to GameOver.
	PolicySuddenDeath
)

// String returns the config spelling of the policy.
func (p CollisionPolicy) String() string {
	switch p {
	case PolicyLifeCounting:
		return "life-counting"
	case PolicyAlwaysLifeLost:
		return "always-life-lost"
	case PolicySuddenDeath:
		return "sudden-death"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(p))
	}
}

// ParsePolicy converts a config string to a CollisionPolicy.
// An empty string selects PolicyLifeCounting.
func ParsePolicy(s string) (CollisionPolicy, error) {
	switch normalizeName(s) {
	case "", "lifecounting":
		return PolicyLifeCounting, nil
	case "alwayslifelost":
		return PolicyAlwaysLifeLost, nil
	case "suddendeath":
		return PolicySuddenDeath, nil
	default:
		return 0, fmt.Errorf("fsm: unknown collision policy %q", s)
	}
}

// target returns the state a collision leads to given the lives left
// after the decrement.
func (p CollisionPolicy) target(livesLeft int) State {
	switch p {
	case PolicyAlwaysLifeLost:
		return LifeLost
	case PolicySuddenDeath:
		return GameOver
	default:
		if livesLeft == 0 {
			return GameOver
		}
		return LifeLost
	}
}

func (p CollisionPolicy) valid() bool {
	return p >= PolicyLifeCounting && p <= PolicySuddenDeath
}
