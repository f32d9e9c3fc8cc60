package gas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solscan/internal/ast"
	"solscan/internal/contract"
)

func Test_estimate(t *testing.T) {
	c, err := contract.Build(&ast.ContractNode{
		Name: "Tally",
		Vars: []ast.VarDeclNode{
			{Name: "total", Type: "uint256", Visibility: "public"},
			{Name: "owner", Type: "address", Visibility: "public"},
		},
		Modifiers: []ast.ModifierNode{
			{Name: "onlyOwner", Statements: []ast.StatementNode{
				{Kind: ast.StmtStateRead, Var: "owner"},
				{Kind: ast.StmtCondition, SenderCheck: true},
			}},
		},
		Functions: []ast.FunctionNode{
			{
				Name: "add", Visibility: "public",
				Statements: []ast.StatementNode{
					{Kind: ast.StmtStateRead, Var: "total"},
					{Kind: ast.StmtStateWrite, Var: "total", Op: "+="},
				},
			},
			{
				Name: "payout", Visibility: "public", Modifiers: []string{"onlyOwner"},
				Statements: []ast.StatementNode{
					{Kind: ast.StmtExternalCall, Call: ast.CallTransfer, ValueTransfer: true},
				},
			},
			{
				Name: "peek", Visibility: "public", Mutability: "view",
				Statements: []ast.StatementNode{
					{Kind: ast.StmtStateRead, Var: "total"},
				},
			},
		},
	})
	assert.Nil(t, err)

	estimates := Estimate(c)
	assert.Equal(t, []FunctionGas{
		// sload + sstore
		{Function: "add", Estimated: 2100 + 20000, Optimizable: false},
		// call + value surcharge, plus the modifier's sload + jumpi
		{Function: "payout", Estimated: 2600 + 9000 + 2100 + 10, Optimizable: false},
		{Function: "peek", Estimated: 2100, Optimizable: false},
	}, estimates)
}

func Test_estimateFlagsHeavyFunction(t *testing.T) {
	stmts := make([]ast.StatementNode, 0, 3)
	for i := 0; i < 3; i++ {
		stmts = append(stmts, ast.StatementNode{Kind: ast.StmtStateWrite, Var: "total", Op: "="})
	}
	c, err := contract.Build(&ast.ContractNode{
		Name: "Hog",
		Vars: []ast.VarDeclNode{{Name: "total", Type: "uint256", Visibility: "public"}},
		Functions: []ast.FunctionNode{
			{Name: "churn", Visibility: "public", Statements: stmts},
		},
	})
	assert.Nil(t, err)

	estimates := Estimate(c)
	assert.Equal(t, 60000, estimates[0].Estimated)
	assert.True(t, estimates[0].Optimizable)
}
