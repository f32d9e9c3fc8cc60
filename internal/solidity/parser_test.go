package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solscan/internal/ast"
)

func parseFixture(t *testing.T, name string) []*ast.ContractNode {
	t.Helper()
	contracts, err := ParseFile("../../testdata/contracts/" + name)
	assert.Nil(t, err)
	return contracts
}

func Test_parseReentrancyFixture(t *testing.T) {
	contracts := parseFixture(t, "reentrancy.sol")
	assert.Equal(t, 1, len(contracts))

	c := contracts[0]
	assert.Equal(t, "EtherVault", c.Name)
	assert.Equal(t, 1, len(c.Vars))
	assert.Equal(t, "balances", c.Vars[0].Name)
	assert.Equal(t, "mapping", c.Vars[0].Type)
	assert.Equal(t, "public", c.Vars[0].Visibility)

	assert.Equal(t, 2, len(c.Functions))
	deposit, withdraw := c.Functions[0], c.Functions[1]

	assert.Equal(t, "deposit", deposit.Name)
	assert.Equal(t, "public", deposit.Visibility)
	assert.Equal(t, "payable", deposit.Mutability)
	assert.Equal(t, []ast.StatementNode{
		{Kind: ast.StmtStateWrite, Line: 7, Var: "balances", Op: "+="},
	}, deposit.Statements)

	assert.Equal(t, "withdraw", withdraw.Name)
	assert.Equal(t, []ast.StatementNode{
		{Kind: ast.StmtStateRead, Line: 11, Var: "balances"},
		{Kind: ast.StmtCondition, Line: 11, BoundsVar: "balances"},
		{Kind: ast.StmtExternalCall, Line: 12, Call: ast.CallLowLevel, ValueTransfer: true, Target: "msg.sender"},
		{Kind: ast.StmtCondition, Line: 13},
		{Kind: ast.StmtStateWrite, Line: 14, Var: "balances", Op: "-="},
	}, withdraw.Statements)
}

func Test_parseGuardsAndConstructor(t *testing.T) {
	contracts := parseFixture(t, "safe.sol")
	c := contracts[0]

	assert.Equal(t, "SafeVault", c.Name)
	assert.Equal(t, 2, len(c.Vars))

	assert.Equal(t, 1, len(c.Modifiers))
	mod := c.Modifiers[0]
	assert.Equal(t, "onlyOwner", mod.Name)
	assert.Equal(t, []ast.StatementNode{
		{Kind: ast.StmtStateRead, Line: 12, Var: "owner"},
		{Kind: ast.StmtCondition, Line: 12, SenderCheck: true},
	}, mod.Statements)

	names := make([]string, 0, len(c.Functions))
	for _, fn := range c.Functions {
		names = append(names, fn.Name)
	}
	assert.Equal(t, []string{"constructor", "deposit", "withdraw", "sweep"}, names)

	sweep := c.Functions[3]
	assert.Equal(t, []string{"onlyOwner"}, sweep.Modifiers)
}

func Test_parseOriginCheck(t *testing.T) {
	c := parseFixture(t, "tx_origin.sol")[0]
	assert.Equal(t, "OriginWallet", c.Name)

	transferTo := c.Functions[1]
	assert.Equal(t, "transferTo", transferTo.Name)

	var cond *ast.StatementNode
	for i := range transferTo.Statements {
		if transferTo.Statements[i].Kind == ast.StmtCondition {
			cond = &transferTo.Statements[i]
		}
	}
	assert.NotNil(t, cond)
	assert.True(t, cond.OriginCheck)
	assert.False(t, cond.SenderCheck)
}

func Test_parseEntropyExpression(t *testing.T) {
	c := parseFixture(t, "randomness.sol")[0]
	draw := c.Functions[1]
	assert.Equal(t, "draw", draw.Name)

	var entropy []string
	for _, st := range draw.Statements {
		if st.Kind == ast.StmtExpression {
			entropy = st.Entropy
		}
	}
	assert.Equal(t, []string{"block.timestamp", "block.difficulty"}, entropy)
}

func Test_parseMultipleContracts(t *testing.T) {
	contracts := parseFixture(t, "multi_contracts.sol")
	assert.Equal(t, 2, len(contracts))
	assert.Equal(t, "Faucet", contracts[0].Name)
	assert.Equal(t, "Sink", contracts[1].Name)
	assert.Equal(t, "dripAmount", contracts[0].Vars[0].Name)
	assert.Equal(t, "total", contracts[1].Vars[0].Name)
}

func Test_parseDelegatecallTarget(t *testing.T) {
	source := `contract Proxy {
    address public impl;
    address public constant LOGIC = 0x1;

    function run(bytes memory data) public {
        impl.delegatecall(data);
    }

    function fixedRun(bytes memory data) public {
        LOGIC.delegatecall(data);
    }
}`
	contracts := Parse(source, "proxy.sol")
	assert.Equal(t, 1, len(contracts))
	c := contracts[0]

	run := c.Functions[0].Statements
	assert.Equal(t, ast.CallDelegate, run[len(run)-1].Call)
	assert.Equal(t, "impl", run[len(run)-1].Target)
	assert.False(t, run[len(run)-1].TargetConstant)

	fixed := c.Functions[1].Statements
	assert.Equal(t, "LOGIC", fixed[len(fixed)-1].Target)
	assert.True(t, fixed[len(fixed)-1].TargetConstant)
}

func Test_parseNoContract(t *testing.T) {
	assert.Equal(t, 0, len(Parse("pragma solidity ^0.8.0;\n", "empty.sol")))
}

func Test_extractVersion(t *testing.T) {
	version, err := ExtractVersionFromData([]byte("pragma solidity ^0.8.19;\ncontract A {}\n"))
	assert.Nil(t, err)
	assert.Equal(t, "^0.8.19", version)

	version, err = ExtractVersionFromData([]byte("contract A {}\n"))
	assert.Nil(t, err)
	assert.Equal(t, "", version)
}

func Test_checkedArithmetic(t *testing.T) {
	var testCases = []struct {
		Version string
		Checked bool
	}{
		{"0.4.24", false},
		{"0.6.12", false},
		{"0.7.6", false},
		{"0.8.0", true},
		{"0.8.19", true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.Checked, CheckedArithmetic(tc.Version), tc.Version)
	}
}
