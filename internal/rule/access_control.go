package rule

import (
	"fmt"
	"strings"

	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// MissingAccessControl flags externally reachable functions that write
// owner-like state variables without any caller check, neither inline
// nor through a guarding modifier.
type MissingAccessControl struct{}

func NewMissingAccessControl() *MissingAccessControl { return &MissingAccessControl{} }

func (r *MissingAccessControl) Meta() Meta {
	return Meta{
		Class:    finding.ClassMissingAccessControl,
		Severity: finding.SeverityHigh,
		SWCID:    SWCDataMap[finding.ClassMissingAccessControl].ID,
		Title:    SWCDataMap[finding.ClassMissingAccessControl].Title,
	}
}

func ownerLike(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "owner") || strings.Contains(lower, "admin")
}

func externallyReachable(visibility string) bool {
	switch visibility {
	case "internal", "private":
		return false
	}
	// Solidity defaults to public when unspecified.
	return true
}

func (r *MissingAccessControl) Check(fn *contract.Function) []finding.Finding {
	if fn.IsConstructor() || !externallyReachable(fn.Visibility) {
		return nil
	}
	if fn.GuardedBySender() {
		return nil
	}
	var findings []finding.Finding
	senderChecked := false
	for i := range fn.Statements {
		st := &fn.Statements[i]
		if st.Kind == ast.StmtCondition && st.SenderCheck {
			senderChecked = true
			continue
		}
		if st.Kind != ast.StmtStateWrite || !ownerLike(st.Var) {
			continue
		}
		if senderChecked {
			continue
		}
		findings = append(findings, newFinding(r.Meta(), fn, st.Line, finding.NoCallSite,
			fmt.Sprintf("privileged state variable %q is written without requiring the caller to match a stored privileged address", st.Var)))
	}
	return findings
}
