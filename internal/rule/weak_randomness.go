package rule

import (
	"fmt"
	"strings"

	"solscan/internal/ast"
	"solscan/internal/contract"
	"solscan/internal/finding"
)

// blockEntropySources are the chain attributes miners can predict or
// influence. An entropy expression drawing only on these is weak.
var blockEntropySources = map[string]bool{
	"block.timestamp":  true,
	"block.difficulty": true,
	"block.prevrandao": true,
	"block.number":     true,
	"block.coinbase":   true,
	"blockhash":        true,
	"now":              true,
}

// WeakRandomness flags expressions that derive entropy exclusively
// from block-level metadata.
type WeakRandomness struct{}

func NewWeakRandomness() *WeakRandomness { return &WeakRandomness{} }

func (r *WeakRandomness) Meta() Meta {
	return Meta{
		Class:    finding.ClassWeakRandomness,
		Severity: finding.SeverityMedium,
		SWCID:    SWCDataMap[finding.ClassWeakRandomness].ID,
		Title:    SWCDataMap[finding.ClassWeakRandomness].Title,
	}
}

func (r *WeakRandomness) Check(fn *contract.Function) []finding.Finding {
	var findings []finding.Finding
	for i := range fn.Statements {
		st := &fn.Statements[i]
		if st.Kind != ast.StmtExpression || len(st.Entropy) == 0 {
			continue
		}
		blockOnly := true
		for _, src := range st.Entropy {
			if !blockEntropySources[src] {
				blockOnly = false
				break
			}
		}
		if !blockOnly {
			continue
		}
		findings = append(findings, newFinding(r.Meta(), fn, st.Line, finding.NoCallSite,
			fmt.Sprintf("entropy derived solely from block metadata (%s); miners can predict or influence these values", strings.Join(st.Entropy, ", "))))
	}
	return findings
}
