package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solscan/internal/rule"
)

var rulesCommand = &cobra.Command{
	Use:   "rules",
	Short: "list registered rules",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		set := rule.NewDefaultSet(rule.Semantics{})
		fmt.Printf("rule set version %s\n", set.Version())
		for _, r := range set.Rules() {
			m := r.Meta()
			fmt.Printf("%-26s %-13s %-8s %s\n", m.Class, m.Severity, m.SWCID, m.Title)
		}
	},
}
