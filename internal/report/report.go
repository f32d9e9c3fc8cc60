// Package report serializes scan results for external consumers. The
// embedded finding.Report field set is stable; renderers only extend
// around it.
package report

import (
	"solscan/internal/finding"
	"solscan/internal/gas"
	"solscan/internal/solidity"
)

type Document struct {
	finding.Report

	SourceFile string            `json:"sourceFile,omitempty"`
	Compiler   *CompilerInfo     `json:"compiler,omitempty"`
	Gas        []gas.FunctionGas `json:"gas,omitempty"`
}

type CompilerInfo struct {
	Version      string `json:"version"`
	BytecodeHash string `json:"bytecodeHash,omitempty"`
}

// CompilerInfoFor extracts the compiler facts for one contract from a
// compile result.
func CompilerInfoFor(res *solidity.CompileResult, contractName string) *CompilerInfo {
	if res == nil {
		return nil
	}
	return &CompilerInfo{
		Version:      res.CompilerVersion,
		BytecodeHash: res.BytecodeHashes[contractName],
	}
}

// FilterSeverity returns the findings at or above floor, preserving
// order.
func FilterSeverity(findings []finding.Finding, floor finding.Severity) []finding.Finding {
	out := make([]finding.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity >= floor {
			out = append(out, f)
		}
	}
	return out
}
