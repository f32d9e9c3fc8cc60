// Package finding defines the scanner's output record and the
// aggregation step that turns raw rule output into a stable report.
package finding

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// Class tags a finding with its vulnerability class.
type Class string

const (
	ClassReentrancyOrder         Class = "reentrancy-order"
	ClassTxOriginAuth            Class = "tx-origin-auth"
	ClassWeakRandomness          Class = "weak-randomness"
	ClassUncheckedArithmetic     Class = "unchecked-arithmetic"
	ClassMissingAccessControl    Class = "missing-access-control"
	ClassUnprotectedSelfdestruct Class = "unprotected-selfdestruct"
	ClassUnsafeDelegatecall      Class = "unsafe-delegatecall"

	// ClassRuleFailure marks an informational finding produced when a
	// rule crashed while analyzing a function.
	ClassRuleFailure Class = "rule-failure"
)

type Severity int

const (
	SeverityInformational Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInformational: "informational",
	SeverityLow:           "low",
	SeverityMedium:        "medium",
	SeverityHigh:          "high",
	SeverityCritical:      "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSeverity(string(trimQuotes(data)))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func trimQuotes(b []byte) []byte {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return b[1 : len(b)-1]
	}
	return b
}

func ParseSeverity(s string) (Severity, error) {
	for sev, name := range severityNames {
		if name == s {
			return sev, nil
		}
	}
	return SeverityInformational, fmt.Errorf("unknown severity %q", s)
}

// NoCallSite marks a finding that does not reference a call site.
const NoCallSite = -1

// Finding is a single reported vulnerability instance. ID is stable
// across repeated scans of the same contract, which is what the
// aggregator deduplicates on.
type Finding struct {
	ID       string   `json:"id"`
	Class    Class    `json:"class"`
	Severity Severity `json:"severity"`
	SWCID    string   `json:"swcId,omitempty"`

	Contract string `json:"contract"`
	Function string `json:"function"`

	// FunctionIndex is the declaration order of Function within
	// Contract; the aggregator sorts on it.
	FunctionIndex int `json:"-"`

	Line int `json:"line,omitempty"`

	// CallSite is serialized unconditionally: index 0 is a valid
	// first-statement call site and must stay distinguishable from
	// NoCallSite.
	CallSite int `json:"callSite"`

	Rationale string `json:"rationale"`
}

// MakeID derives the stable finding ID from class and location.
func MakeID(class Class, contractName, functionName string, line int) string {
	sum := crypto.Keccak256([]byte(fmt.Sprintf("%s|%s|%s|%d", class, contractName, functionName, line)))
	return hex.EncodeToString(sum[:8])
}
