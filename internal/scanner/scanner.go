// Package scanner runs every rule against every function of a contract
// model and collects the raw findings.
package scanner

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"solscan/internal/contract"
	"solscan/internal/finding"
	"solscan/internal/rule"
)

// Scan applies each rule of the set to each function, functions in
// declaration order and rules in registration order, which fixes the
// output order before deduplication. A rule panicking on one function
// is converted into an informational finding and the scan continues.
func Scan(c *contract.Contract, set *rule.Set) []finding.Finding {
	var findings []finding.Finding
	rules := set.Rules()
	for _, fn := range c.Functions() {
		for _, r := range rules {
			findings = append(findings, runRule(r, fn)...)
		}
	}
	log.Infof("scanned contract %s: %d functions, %d rules, %d raw findings",
		c.Name(), len(c.Functions()), len(rules), len(findings))
	return findings
}

// runRule isolates a single rule execution so one broken detector
// cannot abort the rest of the scan.
func runRule(r rule.Rule, fn *contract.Function) (out []finding.Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("rule %s failed on %s.%s: %v", r.Meta().Class, fn.ContractName, fn.Name, rec)
			out = []finding.Finding{ruleFailure(r, fn, rec)}
		}
	}()
	return r.Check(fn)
}

func ruleFailure(r rule.Rule, fn *contract.Function, cause interface{}) finding.Finding {
	rationale := fmt.Sprintf("rule %s failed while analyzing function %q: %v; its findings for this function are missing from the report",
		r.Meta().Class, fn.Name, cause)
	// The failed rule's class is part of the ID so that two rules
	// failing on the same function stay distinct after deduplication.
	return finding.Finding{
		ID:            finding.MakeID(finding.ClassRuleFailure, fn.ContractName, string(r.Meta().Class)+"/"+fn.Name, fn.Line),
		Class:         finding.ClassRuleFailure,
		Severity:      finding.SeverityInformational,
		Contract:      fn.ContractName,
		Function:      fn.Name,
		FunctionIndex: fn.Index,
		Line:          fn.Line,
		CallSite:      finding.NoCallSite,
		Rationale:     rationale,
	}
}
