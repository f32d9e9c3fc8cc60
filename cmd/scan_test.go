package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solscan/internal/config"
	"solscan/internal/finding"
	"solscan/internal/report"
)

func sampleDoc() *report.Document {
	return &report.Document{
		Report: finding.Report{
			ContractName: "EtherVault",
			Findings: []finding.Finding{
				{
					ID:       finding.MakeID(finding.ClassReentrancyOrder, "EtherVault", "withdraw", 12),
					Class:    finding.ClassReentrancyOrder,
					Severity: finding.SeverityCritical,
					Function: "withdraw",
					Line:     12,
					CallSite: 0,
				},
				{
					ID:       finding.MakeID(finding.ClassUncheckedArithmetic, "EtherVault", "deposit", 7),
					Class:    finding.ClassUncheckedArithmetic,
					Severity: finding.SeverityHigh,
					Function: "deposit",
					Line:     7,
					CallSite: finding.NoCallSite,
				},
			},
			ScannedAt:      time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC),
			RuleSetVersion: "1.0",
		},
		SourceFile: "vault.sol",
	}
}

func Test_emitWritesMarkdownToOutDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Format = "markdown"
	cfg.OutputDir = filepath.Join(dir, "reports")

	assert.Nil(t, emit(sampleDoc(), cfg))

	data, err := os.ReadFile(filepath.Join(dir, "reports", "EtherVault.md"))
	assert.Nil(t, err)
	assert.Contains(t, string(data), "# Security Scan Report: EtherVault")
}

func Test_emitWritesJSONToOutDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = dir

	assert.Nil(t, emit(sampleDoc(), cfg))

	data, err := os.ReadFile(filepath.Join(dir, "EtherVault.json"))
	assert.Nil(t, err)

	var decoded report.Document
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, len(decoded.Findings))
	// first-statement call site survives serialization
	assert.Equal(t, 0, decoded.Findings[0].CallSite)
}

func Test_emitAppliesSeverityFloor(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = dir
	cfg.SeverityFloor = "critical"

	assert.Nil(t, emit(sampleDoc(), cfg))

	data, err := os.ReadFile(filepath.Join(dir, "EtherVault.json"))
	assert.Nil(t, err)

	var decoded report.Document
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, len(decoded.Findings))
	assert.Equal(t, finding.ClassReentrancyOrder, decoded.Findings[0].Class)
}

func Test_emitRejectsUnknownFloor(t *testing.T) {
	cfg := config.Default()
	cfg.SeverityFloor = "fatal"
	assert.NotNil(t, emit(sampleDoc(), cfg))
}
