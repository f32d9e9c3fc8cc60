// Package rule holds the vulnerability pattern detectors. Each rule is
// a pure function over a single function of the contract model; rules
// never see each other's output, the engine merges.
package rule

import (
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// Version identifies the rule set revision carried in reports.
const Version = "1.0"

type Meta struct {
	Class    finding.Class
	Severity finding.Severity
	SWCID    string
	Title    string
}

// Rule checks one function and returns zero or more findings. Check
// must not mutate fn and must not depend on any other rule having run.
type Rule interface {
	Meta() Meta
	Check(fn *contract.Function) []finding.Finding
}

// Semantics declares properties of the target language revision that
// change what counts as a vulnerability.
type Semantics struct {
	// CheckedArithmetic is true when the target guarantees overflow
	// checks (Solidity >= 0.8), which turns the unchecked-arithmetic
	// rule into a no-op.
	CheckedArithmetic bool
}

// Set is an explicit, constructed rule registry. Registration order is
// preserved and fixes the engine's rule execution order. A Set is
// read-only after construction and safe for concurrent use.
type Set struct {
	rules []Rule
}

func NewSet(rules ...Rule) *Set {
	s := &Set{}
	for _, r := range rules {
		s.Register(r)
	}
	return s
}

// NewDefaultSet builds the full built-in registry under the given
// semantics.
func NewDefaultSet(sem Semantics) *Set {
	return NewSet(
		NewReentrancyOrder(),
		NewTxOriginAuth(),
		NewWeakRandomness(),
		NewUncheckedArithmetic(sem),
		NewMissingAccessControl(),
		NewUnprotectedSelfdestruct(),
		NewUnsafeDelegatecall(),
	)
}

func (s *Set) Register(r Rule) {
	s.rules = append(s.rules, r)
}

// Rules returns the registry in registration order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Without returns a new Set with the named classes removed, keeping
// the remaining registration order. The receiver is not modified.
func (s *Set) Without(classes ...finding.Class) *Set {
	drop := make(map[finding.Class]bool, len(classes))
	for _, c := range classes {
		drop[c] = true
	}
	out := &Set{}
	for _, r := range s.rules {
		if drop[r.Meta().Class] {
			continue
		}
		out.rules = append(out.rules, r)
	}
	return out
}

func (s *Set) Version() string { return Version }

// newFinding fills the common finding fields from rule meta and
// function location.
func newFinding(m Meta, fn *contract.Function, line, callSite int, rationale string) finding.Finding {
	return finding.Finding{
		ID:            finding.MakeID(m.Class, fn.ContractName, fn.Name, line),
		Class:         m.Class,
		Severity:      m.Severity,
		SWCID:         m.SWCID,
		Contract:      fn.ContractName,
		Function:      fn.Name,
		FunctionIndex: fn.Index,
		Line:          line,
		CallSite:      callSite,
		Rationale:     rationale,
	}
}
