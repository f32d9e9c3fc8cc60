package rule

import (
	"fmt"

	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// ReentrancyOrder flags value-transferring external calls that run
// before a state write to a variable the function already read. The
// callee can re-enter and observe the stale value.
type ReentrancyOrder struct{}

func NewReentrancyOrder() *ReentrancyOrder { return &ReentrancyOrder{} }

func (r *ReentrancyOrder) Meta() Meta {
	return Meta{
		Class:    finding.ClassReentrancyOrder,
		Severity: finding.SeverityCritical,
		SWCID:    SWCDataMap[finding.ClassReentrancyOrder].ID,
		Title:    SWCDataMap[finding.ClassReentrancyOrder].Title,
	}
}

func (r *ReentrancyOrder) Check(fn *contract.Function) []finding.Finding {
	var findings []finding.Finding

	// Only the first offending call site per state variable is
	// reported; later writes to the same variable repeat the same
	// defect.
	reported := make(map[string]bool)
	readBefore := make(map[string]bool)

	for i := range fn.Statements {
		st := &fn.Statements[i]
		if st.Kind == ast.StmtStateRead {
			readBefore[st.Var] = true
			continue
		}
		if st.Kind != ast.StmtExternalCall || !st.ValueTransfer {
			continue
		}
		for j := i + 1; j < len(fn.Statements); j++ {
			w := &fn.Statements[j]
			if w.Kind != ast.StmtStateWrite || !readBefore[w.Var] || reported[w.Var] {
				continue
			}
			reported[w.Var] = true
			findings = append(findings, newFinding(r.Meta(), fn, st.Line, i,
				fmt.Sprintf("external call with value transfer precedes the update of %q, which was read before the call; a reentrant callee observes the stale value", w.Var)))
		}
	}
	return findings
}
