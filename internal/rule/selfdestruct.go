package rule

import (
	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// UnprotectedSelfdestruct flags selfdestruct reachable without a
// caller check.
type UnprotectedSelfdestruct struct{}

func NewUnprotectedSelfdestruct() *UnprotectedSelfdestruct { return &UnprotectedSelfdestruct{} }

func (r *UnprotectedSelfdestruct) Meta() Meta {
	return Meta{
		Class:    finding.ClassUnprotectedSelfdestruct,
		Severity: finding.SeverityCritical,
		SWCID:    SWCDataMap[finding.ClassUnprotectedSelfdestruct].ID,
		Title:    SWCDataMap[finding.ClassUnprotectedSelfdestruct].Title,
	}
}

func (r *UnprotectedSelfdestruct) Check(fn *contract.Function) []finding.Finding {
	if !externallyReachable(fn.Visibility) || fn.GuardedBySender() {
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
		if st.Kind != ast.StmtExternalCall || st.Call != ast.CallSelfdestruct || senderChecked {
			continue
		}
		findings = append(findings, newFinding(r.Meta(), fn, st.Line, i,
			"selfdestruct is reachable by any caller; the contract can be destroyed and its balance redirected"))
	}
	return findings
}
