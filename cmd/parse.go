package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solscan/internal/contract"
	"solscan/internal/solidity"
)

var parseCommand = &cobra.Command{
	Use:   "parse",
	Short: "print the parsed contract model",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := parseExec(); err != nil {
			fmt.Printf("service err: %v", err)
			os.Exit(1)
		}
	},
}

var parseFile string

func init() {
	parseCommand.Flags().StringVar(&parseFile, "file", "", "solidity source file")
}

func parseExec() error {
	nodes, err := solidity.ParseFile(parseFile)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		c, err := contract.Build(node)
		if err != nil {
			return err
		}
		fmt.Printf("contract %s\n", c.Name())
		for _, v := range c.StateVars() {
			fmt.Printf("  var %s %s %s (line %d)\n", v.Name, v.Type, v.Visibility, v.Line)
		}
		for _, fn := range c.Functions() {
			fmt.Printf("  function %s %s %s (line %d, %d statements)\n",
				fn.Name, fn.Visibility, fn.Mutability, fn.Line, len(fn.Statements))
			for _, cs := range fn.CallSites() {
				fmt.Printf("    call %s target=%q value=%v (line %d)\n",
					cs.Kind, cs.Target, cs.ValueTransfer, cs.Line)
			}
		}
	}
	return nil
}
