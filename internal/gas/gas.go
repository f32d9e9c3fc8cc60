// Package gas estimates per-function gas from the contract model with
// a fixed cost table. It flags functions worth optimizing; it is not a
// gas model.
package gas

import (
	"solscan/internal/ast"
	"solscan/internal/contract"
)

// Rough unit costs for the operations the model distinguishes.
const (
	costSStore = 20000
	costSLoad  = 2100
	costCall   = 2600
	costValue  = 9000 // value-transferring call surcharge
	costJumpI  = 10
	costHash   = 30
)

// OptimizableThreshold marks a function as gas-heavy.
const OptimizableThreshold = 50000

type FunctionGas struct {
	Function    string `json:"function"`
	Estimated   int    `json:"estimatedGas"`
	Optimizable bool   `json:"optimizable"`
}

// Estimate returns a per-function estimate in declaration order.
func Estimate(c *contract.Contract) []FunctionGas {
	var out []FunctionGas
	for _, fn := range c.Functions() {
		total := estimateStatements(fn.Statements)
		for _, m := range fn.Modifiers {
			total += estimateStatements(m.Statements)
		}
		out = append(out, FunctionGas{
			Function:    fn.Name,
			Estimated:   total,
			Optimizable: total > OptimizableThreshold,
		})
	}
	return out
}

func estimateStatements(stmts []contract.Statement) int {
	total := 0
	for i := range stmts {
		switch stmts[i].Kind {
		case ast.StmtStateWrite:
			total += costSStore
		case ast.StmtStateRead:
			total += costSLoad
		case ast.StmtExternalCall:
			total += costCall
			if stmts[i].ValueTransfer {
				total += costValue
			}
		case ast.StmtCondition:
			total += costJumpI
		case ast.StmtExpression:
			total += costHash
		}
	}
	return total
}
