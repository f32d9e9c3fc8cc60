package finding

import (
	"sort"
	"time"
)

// Report is the stable record handed to the report/UI layer. The field
// set is versioned: renderers may extend around it but never reshape
// it.
type Report struct {
	ContractName   string    `json:"contractName"`
	Findings       []Finding `json:"findings"`
	ScannedAt      time.Time `json:"scannedAt"`
	RuleSetVersion string    `json:"ruleSetVersion"`
}

// Dedupe removes findings whose ID was already seen, keeping the first
// occurrence. Input order is preserved.
func Dedupe(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out
}

// Sort orders findings by severity descending, then function
// declaration order, then class name. The sort is stable so equal keys
// keep engine output order.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity > findings[j].Severity
		}
		if findings[i].FunctionIndex != findings[j].FunctionIndex {
			return findings[i].FunctionIndex < findings[j].FunctionIndex
		}
		return findings[i].Class < findings[j].Class
	})
}

// Aggregate deduplicates and sorts raw engine output and wraps it into
// the versioned report record. scannedAt is passed in rather than read
// from the clock so identical scans produce identical reports.
func Aggregate(contractName string, findings []Finding, scannedAt time.Time, ruleSetVersion string) *Report {
	deduped := Dedupe(findings)
	Sort(deduped)
	return &Report{
		ContractName:   contractName,
		Findings:       deduped,
		ScannedAt:      scannedAt,
		RuleSetVersion: ruleSetVersion,
	}
}
