package rule

import (
	"fmt"

	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// UncheckedArithmetic flags additions/subtractions on state variables
// with no prior bounds check on the same variable. Under semantics
// that guarantee overflow checks the rule is a no-op.
type UncheckedArithmetic struct {
	sem Semantics
}

func NewUncheckedArithmetic(sem Semantics) *UncheckedArithmetic {
	return &UncheckedArithmetic{sem: sem}
}

func (r *UncheckedArithmetic) Meta() Meta {
	return Meta{
		Class:    finding.ClassUncheckedArithmetic,
		Severity: finding.SeverityHigh,
		SWCID:    SWCDataMap[finding.ClassUncheckedArithmetic].ID,
		Title:    SWCDataMap[finding.ClassUncheckedArithmetic].Title,
	}
}

func arithmeticOp(op string) bool {
	switch op {
	case "+=", "-=", "++", "--":
		return true
	}
	return false
}

func (r *UncheckedArithmetic) Check(fn *contract.Function) []finding.Finding {
	if r.sem.CheckedArithmetic {
		return nil
	}
	var findings []finding.Finding
	bounded := make(map[string]bool)
	for i := range fn.Statements {
		st := &fn.Statements[i]
		if st.Kind == ast.StmtCondition && st.BoundsVar != "" {
			bounded[st.BoundsVar] = true
			continue
		}
		if st.Kind != ast.StmtStateWrite || !arithmeticOp(st.Op) {
			continue
		}
		if bounded[st.Var] {
			continue
		}
		findings = append(findings, newFinding(r.Meta(), fn, st.Line, finding.NoCallSite,
			fmt.Sprintf("%q on state variable %q without a prior bounds check; the operation can wrap under unchecked arithmetic semantics", st.Op, st.Var)))
	}
	return findings
}
