package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"solscan/internal/ast"
	"solscan/internal/config"
	"solscan/internal/contract"
	"solscan/internal/finding"
	"solscan/internal/gas"
	"solscan/internal/report"
	"solscan/internal/rule"
	"solscan/internal/scanner"
	"solscan/internal/solidity"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "scan contracts for known vulnerability patterns",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := scanExec(); err != nil {
			fmt.Printf("service err: %v", err)
			os.Exit(1)
		}
	},
}

var (
	scanFiles      []string
	scanASTFile    string
	scanConfigFile string
	scanFormat     string
	scanOutDir     string
	scanGas        bool
	scanCompile    bool
)

func init() {
	scanCommand.Flags().StringSliceVar(&scanFiles, "file", nil, "solidity source file (repeatable)")
	scanCommand.Flags().StringVar(&scanASTFile, "ast", "", "pre-parsed contract AST json file")
	scanCommand.Flags().StringVar(&scanConfigFile, "config", "", "settings yaml file")
	scanCommand.Flags().StringVar(&scanFormat, "format", "", "report format: json or markdown")
	scanCommand.Flags().StringVar(&scanOutDir, "out", "", "report output directory; stdout when empty")
	scanCommand.Flags().BoolVar(&scanGas, "gas", false, "include gas estimates in the report")
	scanCommand.Flags().BoolVar(&scanCompile, "compile", false, "compile with solc and attach compiler facts")
}

func scanExec() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(scanFiles) == 0 && scanASTFile == "" {
		return errors.New("nothing to scan: pass --file or --ast")
	}

	if scanASTFile != "" {
		return scanASTInput(cfg)
	}

	// Each file is an independent unit of work; the rule set is shared
	// read-only. Results are emitted in file order regardless of
	// completion order.
	type result struct {
		docs []*report.Document
		err  error
	}
	results := make([]result, len(scanFiles))
	var wg sync.WaitGroup
	for i, file := range scanFiles {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			docs, err := scanSourceFile(file, cfg)
			results[i] = result{docs: docs, err: err}
		}(i, file)
	}
	wg.Wait()

	for i, res := range results {
		if res.err != nil {
			return errors.Wrapf(res.err, "scan %s", scanFiles[i])
		}
		for _, doc := range res.docs {
			if err := emit(doc, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if scanConfigFile != "" {
		loaded, err := config.Load(scanConfigFile)
		if err != nil {
			return nil, errors.Wrap(err, "LoadConfig")
		}
		cfg = loaded
	}
	if scanFormat != "" {
		cfg.Format = scanFormat
	}
	if scanOutDir != "" {
		cfg.OutputDir = scanOutDir
	}
	if scanGas {
		cfg.Gas = true
	}
	if scanCompile {
		cfg.Compile = true
	}
	return cfg, nil
}

func scanSourceFile(file string, cfg *config.Config) ([]*report.Document, error) {
	nodes, err := solidity.ParseFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "ParseFile")
	}

	sem := semanticsForFile(file, cfg)
	set := ruleSet(sem, cfg)

	var compiled *solidity.CompileResult
	if cfg.Compile {
		compiled, err = solidity.CompileFile(file, cfg.SolcDir)
		if err != nil {
			return nil, errors.Wrap(err, "CompileFile")
		}
	}

	var docs []*report.Document
	for _, node := range nodes {
		c, err := contract.Build(node)
		if err != nil {
			return nil, err
		}
		findings := scanner.Scan(c, set)
		rep := finding.Aggregate(c.Name(), findings, time.Now().UTC(), set.Version())
		doc := &report.Document{
			Report:     *rep,
			SourceFile: file,
			Compiler:   report.CompilerInfoFor(compiled, c.Name()),
		}
		if cfg.Gas {
			doc.Gas = gas.Estimate(c)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func scanASTInput(cfg *config.Config) error {
	data, err := os.ReadFile(scanASTFile)
	if err != nil {
		return errors.Wrap(err, "ReadFile")
	}
	nodes, err := ast.DecodeContracts(data)
	if err != nil {
		return errors.Wrap(err, "DecodeContracts")
	}

	sem := rule.Semantics{}
	if cfg.CheckedArithmetic != nil {
		sem.CheckedArithmetic = *cfg.CheckedArithmetic
	}
	set := ruleSet(sem, cfg)

	for i := range nodes {
		c, err := contract.Build(&nodes[i])
		if err != nil {
			return err
		}
		findings := scanner.Scan(c, set)
		rep := finding.Aggregate(c.Name(), findings, time.Now().UTC(), set.Version())
		doc := &report.Document{Report: *rep, SourceFile: scanASTFile}
		if cfg.Gas {
			doc.Gas = gas.Estimate(c)
		}
		if err := emit(doc, cfg); err != nil {
			return err
		}
	}
	return nil
}

// semanticsForFile derives arithmetic semantics from the pragma unless
// the config pins them.
func semanticsForFile(file string, cfg *config.Config) rule.Semantics {
	if cfg.CheckedArithmetic != nil {
		return rule.Semantics{CheckedArithmetic: *cfg.CheckedArithmetic}
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return rule.Semantics{}
	}
	version, err := solidity.ExtractVersionFromData(data)
	if err != nil || version == "" {
		return rule.Semantics{}
	}
	return rule.Semantics{CheckedArithmetic: solidity.CheckedArithmetic(version)}
}

func ruleSet(sem rule.Semantics, cfg *config.Config) *rule.Set {
	set := rule.NewDefaultSet(sem)
	if len(cfg.DisabledRules) > 0 {
		classes := make([]finding.Class, 0, len(cfg.DisabledRules))
		for _, name := range cfg.DisabledRules {
			classes = append(classes, finding.Class(name))
		}
		set = set.Without(classes...)
	}
	return set
}

func emit(doc *report.Document, cfg *config.Config) error {
	floor, err := finding.ParseSeverity(cfg.SeverityFloor)
	if err != nil {
		return err
	}
	doc.Findings = report.FilterSeverity(doc.Findings, floor)

	// Reports go to files only when an output dir was chosen, via
	// --out or the config file; otherwise stdout.
	toStdout := cfg.OutputDir == ""

	switch cfg.Format {
	case "markdown":
		content := report.RenderMarkdown(doc)
		if toStdout {
			fmt.Print(content)
			return nil
		}
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return errors.Wrap(err, "MkdirAll")
		}
		path := filepath.Join(cfg.OutputDir, doc.ContractName+".md")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return errors.Wrap(err, "WriteFile")
		}
		log.Infof("wrote %s", path)
	default:
		if toStdout {
			data, err := report.MarshalJSON(doc)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		path, err := report.WriteJSON(cfg.OutputDir, doc)
		if err != nil {
			return errors.Wrap(err, "WriteJSON")
		}
		log.Infof("wrote %s", path)
	}
	return nil
}
