package rule

import (
	"fmt"

	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// UnsafeDelegatecall flags delegatecall to a target that is not a
// constant address. The callee runs in the caller's storage context,
// so a controllable target means arbitrary state overwrite.
type UnsafeDelegatecall struct{}

func NewUnsafeDelegatecall() *UnsafeDelegatecall { return &UnsafeDelegatecall{} }

func (r *UnsafeDelegatecall) Meta() Meta {
	return Meta{
		Class:    finding.ClassUnsafeDelegatecall,
		Severity: finding.SeverityHigh,
		SWCID:    SWCDataMap[finding.ClassUnsafeDelegatecall].ID,
		Title:    SWCDataMap[finding.ClassUnsafeDelegatecall].Title,
	}
}

func (r *UnsafeDelegatecall) Check(fn *contract.Function) []finding.Finding {
	var findings []finding.Finding
	for i := range fn.Statements {
		st := &fn.Statements[i]
		if st.Kind != ast.StmtExternalCall || st.Call != ast.CallDelegate || st.TargetConstant {
			continue
		}
		findings = append(findings, newFinding(r.Meta(), fn, st.Line, i,
			fmt.Sprintf("delegatecall target %q is not a constant address; a controllable target executes arbitrary code in this contract's storage context", st.Target)))
	}
	return findings
}
