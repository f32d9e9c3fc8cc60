package report

import (
	"fmt"
	"strings"

	"solscan/internal/finding"
)

var severityOrder = []finding.Severity{
	finding.SeverityCritical,
	finding.SeverityHigh,
	finding.SeverityMedium,
	finding.SeverityLow,
	finding.SeverityInformational,
}

// RenderMarkdown produces an audit-report style document: header,
// severity summary table, finding details, optional gas section.
func RenderMarkdown(doc *Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Security Scan Report: %s\n\n", doc.ContractName)
	fmt.Fprintf(&b, "*Generated:* %s  \n", doc.ScannedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "*Rule set version:* %s\n", doc.RuleSetVersion)
	if doc.SourceFile != "" {
		fmt.Fprintf(&b, "*Source:* `%s`\n", doc.SourceFile)
	}
	if doc.Compiler != nil {
		fmt.Fprintf(&b, "*Compiler:* solc %s", doc.Compiler.Version)
		if doc.Compiler.BytecodeHash != "" {
			fmt.Fprintf(&b, " (bytecode keccak `%s`)", doc.Compiler.BytecodeHash)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## Summary\n\n")
	if len(doc.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		counts := make(map[finding.Severity]int)
		for _, f := range doc.Findings {
			counts[f.Severity]++
		}
		b.WriteString("| Severity | Count |\n|---|---|\n")
		for _, sev := range severityOrder {
			if counts[sev] == 0 {
				continue
			}
			fmt.Fprintf(&b, "| %s | %d |\n", sev, counts[sev])
		}
	}
	b.WriteString("\n---\n\n")

	if len(doc.Findings) > 0 {
		b.WriteString("## Findings\n\n")
		for _, f := range doc.Findings {
			fmt.Fprintf(&b, "### [%s] %s\n\n", strings.ToUpper(f.Severity.String()), f.Class)
			fmt.Fprintf(&b, "- ID: `%s`\n", f.ID)
			if f.SWCID != "" {
				fmt.Fprintf(&b, "- Reference: %s\n", f.SWCID)
			}
			fmt.Fprintf(&b, "- Function: `%s`", f.Function)
			if f.Line > 0 {
				fmt.Fprintf(&b, " (line %d)", f.Line)
			}
			b.WriteString("\n\n")
			fmt.Fprintf(&b, "%s\n\n", f.Rationale)
		}
		b.WriteString("---\n\n")
	}

	if len(doc.Gas) > 0 {
		b.WriteString("## Gas Estimates\n\n")
		b.WriteString("| Function | Estimated gas | Optimizable |\n|---|---|---|\n")
		for _, g := range doc.Gas {
			fmt.Fprintf(&b, "| `%s` | %d | %v |\n", g.Function, g.Estimated, g.Optimizable)
		}
		b.WriteString("\n")
	}

	return b.String()
}
