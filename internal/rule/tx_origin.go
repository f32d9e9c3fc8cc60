package rule

import (
	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// TxOriginAuth flags authorization guards built on an origin-equality
// check. tx.origin survives intermediate contract hops, so a phishing
// contract called by the authorized account passes the check.
type TxOriginAuth struct{}

func NewTxOriginAuth() *TxOriginAuth { return &TxOriginAuth{} }

func (r *TxOriginAuth) Meta() Meta {
	return Meta{
		Class:    finding.ClassTxOriginAuth,
		Severity: finding.SeverityHigh,
		SWCID:    SWCDataMap[finding.ClassTxOriginAuth].ID,
		Title:    SWCDataMap[finding.ClassTxOriginAuth].Title,
	}
}

func (r *TxOriginAuth) Check(fn *contract.Function) []finding.Finding {
	var findings []finding.Finding
	for i := range fn.Statements {
		st := &fn.Statements[i]
		if st.Kind != ast.StmtCondition || !st.OriginCheck {
			continue
		}
		findings = append(findings, newFinding(r.Meta(), fn, st.Line, finding.NoCallSite,
			"tx.origin equality used as an authorization guard; use msg.sender so intermediate contract calls cannot impersonate the authorized account"))
	}
	return findings
}
