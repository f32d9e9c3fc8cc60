package contract

import (
	"fmt"

	"solscan/internal/ast"
)

// MalformedInputError reports frontend output that violates the
// structural invariants of the model. It is not recoverable here; the
// broken input is itself the defect to report upstream.
type MalformedInputError struct {
	Contract string
	Detail   string
}

func (e *MalformedInputError) Error() string {
	if e.Contract == "" {
		return fmt.Sprintf("malformed contract input: %s", e.Detail)
	}
	return fmt.Sprintf("malformed contract input for %q: %s", e.Contract, e.Detail)
}

// Build constructs the immutable model from a frontend contract node.
// The transformation is pure; node is not retained.
func Build(node *ast.ContractNode) (*Contract, error) {
	if node == nil {
		return nil, &MalformedInputError{Detail: "nil contract node"}
	}
	if node.Name == "" {
		return nil, &MalformedInputError{Detail: "contract has no name"}
	}

	c := &Contract{
		name:       node.Name,
		sourceFile: node.SourceFile,
		vars:       make(map[string]StateVar, len(node.Vars)),
		modifiers:  make(map[string]*Modifier, len(node.Modifiers)),
	}

	for _, v := range node.Vars {
		if v.Name == "" {
			return nil, &MalformedInputError{Contract: node.Name, Detail: "state variable with no name"}
		}
		if _, dup := c.vars[v.Name]; dup {
			return nil, &MalformedInputError{Contract: node.Name, Detail: fmt.Sprintf("duplicate state variable %q", v.Name)}
		}
		c.vars[v.Name] = StateVar{
			Name:       v.Name,
			Type:       v.Type,
			Visibility: v.Visibility,
			Constant:   v.Constant,
			Line:       v.Line,
		}
	}

	for i := range node.Modifiers {
		mn := &node.Modifiers[i]
		if mn.Name == "" {
			return nil, &MalformedInputError{Contract: node.Name, Detail: "modifier with no name"}
		}
		if _, dup := c.modifiers[mn.Name]; dup {
			return nil, &MalformedInputError{Contract: node.Name, Detail: fmt.Sprintf("duplicate modifier %q", mn.Name)}
		}
		stmts, err := freezeStatements(node.Name, "modifier "+mn.Name, mn.Statements)
		if err != nil {
			return nil, err
		}
		c.modifiers[mn.Name] = &Modifier{
			Name:       mn.Name,
			Line:       mn.Line,
			Statements: stmts,
		}
	}

	seen := make(map[string]bool, len(node.Functions))
	for i := range node.Functions {
		fn := &node.Functions[i]
		if fn.Name == "" {
			// A statement block with no enclosing named function means
			// the frontend emitted a dangling call site.
			return nil, &MalformedInputError{Contract: node.Name, Detail: "statement block without enclosing function"}
		}
		if seen[fn.Name] {
			return nil, &MalformedInputError{Contract: node.Name, Detail: fmt.Sprintf("duplicate function %q", fn.Name)}
		}
		seen[fn.Name] = true

		var mods []*Modifier
		for _, ref := range fn.Modifiers {
			m, ok := c.modifiers[ref]
			if !ok {
				return nil, &MalformedInputError{
					Contract: node.Name,
					Detail:   fmt.Sprintf("function %q references undeclared modifier %q", fn.Name, ref),
				}
			}
			mods = append(mods, m)
		}

		stmts, err := freezeStatements(node.Name, "function "+fn.Name, fn.Statements)
		if err != nil {
			return nil, err
		}
		c.functions = append(c.functions, &Function{
			Name:         fn.Name,
			Visibility:   fn.Visibility,
			Mutability:   fn.Mutability,
			Line:         fn.Line,
			Index:        len(c.functions),
			ContractName: node.Name,
			Modifiers:    mods,
			Statements:   stmts,
		})
	}

	return c, nil
}

func freezeStatements(contractName, where string, nodes []ast.StatementNode) ([]Statement, error) {
	stmts := make([]Statement, 0, len(nodes))
	for i := range nodes {
		sn := &nodes[i]
		switch sn.Kind {
		case ast.StmtExternalCall:
			if sn.Call == "" {
				return nil, &MalformedInputError{
					Contract: contractName,
					Detail:   fmt.Sprintf("%s: external call statement without call kind", where),
				}
			}
		case ast.StmtStateWrite, ast.StmtStateRead:
			if sn.Var == "" {
				return nil, &MalformedInputError{
					Contract: contractName,
					Detail:   fmt.Sprintf("%s: state access statement without variable", where),
				}
			}
		case ast.StmtCondition, ast.StmtExpression:
		default:
			return nil, &MalformedInputError{
				Contract: contractName,
				Detail:   fmt.Sprintf("%s: unknown statement kind %q", where, sn.Kind),
			}
		}
		var entropy []string
		if len(sn.Entropy) > 0 {
			entropy = append(entropy, sn.Entropy...)
		}
		stmts = append(stmts, Statement{
			Kind:           sn.Kind,
			Line:           sn.Line,
			Call:           sn.Call,
			ValueTransfer:  sn.ValueTransfer,
			Target:         sn.Target,
			TargetConstant: sn.TargetConstant,
			Var:            sn.Var,
			Op:             sn.Op,
			OriginCheck:    sn.OriginCheck,
			SenderCheck:    sn.SenderCheck,
			BoundsVar:      sn.BoundsVar,
			Entropy:        entropy,
		})
	}
	return stmts, nil
}
