package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solscan/internal/finding"
	"solscan/internal/gas"
	"solscan/internal/solidity"
)

func sampleDocument() *Document {
	scannedAt := time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)
	findings := []finding.Finding{
		{
			ID:        finding.MakeID(finding.ClassReentrancyOrder, "EtherVault", "withdraw", 12),
			Class:     finding.ClassReentrancyOrder,
			Severity:  finding.SeverityCritical,
			SWCID:     "SWC-107",
			Contract:  "EtherVault",
			Function:  "withdraw",
			Line:      12,
			CallSite:  2,
			Rationale: "external call precedes the balance update",
		},
		{
			ID:        finding.MakeID(finding.ClassUncheckedArithmetic, "EtherVault", "deposit", 7),
			Class:     finding.ClassUncheckedArithmetic,
			Severity:  finding.SeverityHigh,
			SWCID:     "SWC-101",
			Contract:  "EtherVault",
			Function:  "deposit",
			Line:      7,
			CallSite:  finding.NoCallSite,
			Rationale: "addition can wrap under pre-0.8 semantics",
		},
	}
	return &Document{
		Report: finding.Report{
			ContractName:   "EtherVault",
			Findings:       findings,
			ScannedAt:      scannedAt,
			RuleSetVersion: "1.0",
		},
		SourceFile: "vault.sol",
		Gas: []gas.FunctionGas{
			{Function: "withdraw", Estimated: 35810, Optimizable: false},
		},
	}
}

func Test_renderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleDocument())

	assert.True(t, strings.HasPrefix(out, "# Security Scan Report: EtherVault\n"))
	assert.Contains(t, out, "*Generated:* 2024-03-14 09:30:00 UTC")
	assert.Contains(t, out, "*Rule set version:* 1.0")
	assert.Contains(t, out, "*Source:* `vault.sol`")
	assert.Contains(t, out, "| critical | 1 |")
	assert.Contains(t, out, "| high | 1 |")
	assert.Contains(t, out, "### [CRITICAL] reentrancy-order")
	assert.Contains(t, out, "- Reference: SWC-107")
	assert.Contains(t, out, "- Function: `withdraw` (line 12)")
	assert.Contains(t, out, "| `withdraw` | 35810 | false |")

	// critical section comes before the high one
	assert.True(t, strings.Index(out, "[CRITICAL]") < strings.Index(out, "[HIGH]"))
}

func Test_renderMarkdownEmpty(t *testing.T) {
	doc := &Document{
		Report: finding.Report{
			ContractName:   "Clean",
			ScannedAt:      time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC),
			RuleSetVersion: "1.0",
		},
	}
	out := RenderMarkdown(doc)
	assert.Contains(t, out, "No findings.")
	assert.False(t, strings.Contains(out, "## Findings"))
	assert.False(t, strings.Contains(out, "## Gas Estimates"))
}

func Test_writeJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()
	doc.Compiler = &CompilerInfo{Version: "0.6.12", BytecodeHash: "deadbeef"}

	path, err := WriteJSON(t.TempDir(), doc)
	assert.Nil(t, err)
	assert.True(t, strings.HasSuffix(path, "EtherVault.json"))

	data, err := os.ReadFile(path)
	assert.Nil(t, err)

	var decoded Document
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.ContractName, decoded.ContractName)
	assert.Equal(t, doc.RuleSetVersion, decoded.RuleSetVersion)
	assert.Equal(t, len(doc.Findings), len(decoded.Findings))
	assert.Equal(t, doc.Findings[0].ID, decoded.Findings[0].ID)
	assert.Equal(t, finding.SeverityCritical, decoded.Findings[0].Severity)
	assert.Equal(t, doc.Compiler.Version, decoded.Compiler.Version)
	assert.Equal(t, doc.Gas, decoded.Gas)
}

func Test_filterSeverity(t *testing.T) {
	findings := sampleDocument().Findings

	assert.Equal(t, 2, len(FilterSeverity(findings, finding.SeverityInformational)))
	assert.Equal(t, 2, len(FilterSeverity(findings, finding.SeverityHigh)))

	critical := FilterSeverity(findings, finding.SeverityCritical)
	assert.Equal(t, 1, len(critical))
	assert.Equal(t, finding.ClassReentrancyOrder, critical[0].Class)

	assert.Equal(t, 0, len(FilterSeverity(nil, finding.SeverityLow)))
}

func Test_compilerInfoFor(t *testing.T) {
	assert.Nil(t, CompilerInfoFor(nil, "EtherVault"))

	res := &solidity.CompileResult{
		CompilerVersion: "0.6.12",
		BytecodeHashes:  map[string]string{"EtherVault": "cafe"},
	}
	info := CompilerInfoFor(res, "EtherVault")
	assert.Equal(t, "0.6.12", info.Version)
	assert.Equal(t, "cafe", info.BytecodeHash)

	missing := CompilerInfoFor(res, "Other")
	assert.Equal(t, "", missing.BytecodeHash)
}
