// Package contract holds the immutable contract model the scanner
// operates on. A model is built once from ast nodes and is read-only
// afterwards, so scanning different contracts from different
// goroutines needs no locking.
package contract

import (
	"sort"

	"solscan/internal/ast"
)

type StateVar struct {
	Name       string
	Type       string
	Visibility string
	Constant   bool
	Line       int
}

// Statement is the frozen form of an ast.StatementNode.
type Statement struct {
	Kind           ast.StatementKind
	Line           int
	Call           ast.CallKind
	ValueTransfer  bool
	Target         string
	TargetConstant bool
	Var            string
	Op             string
	OriginCheck    bool
	SenderCheck    bool
	BoundsVar      string
	Entropy        []string
}

// CallSite is an external call statement with its position inside the
// enclosing function. Index is the statement index, which findings use
// to point back at the offending call.
type CallSite struct {
	Index          int
	Line           int
	Kind           ast.CallKind
	ValueTransfer  bool
	Target         string
	TargetConstant bool
}

type Modifier struct {
	Name       string
	Line       int
	Statements []Statement
}

// GuardsSender reports whether the modifier body requires the caller
// to match a stored address, e.g. the usual onlyOwner shape.
func (m *Modifier) GuardsSender() bool {
	for i := range m.Statements {
		st := &m.Statements[i]
		if st.Kind == ast.StmtCondition && st.SenderCheck {
			return true
		}
	}
	return false
}

type Function struct {
	Name       string
	Visibility string
	Mutability string
	Line       int

	// Index is the declaration position within the contract, used for
	// stable finding order.
	Index int

	// ContractName back-references the owning contract by name only;
	// findings must never cross contract instances.
	ContractName string

	Modifiers  []*Modifier
	Statements []Statement
}

// CallSites returns the external call statements in statement order.
func (f *Function) CallSites() []CallSite {
	var sites []CallSite
	for i := range f.Statements {
		st := &f.Statements[i]
		if st.Kind != ast.StmtExternalCall {
			continue
		}
		sites = append(sites, CallSite{
			Index:          i,
			Line:           st.Line,
			Kind:           st.Call,
			ValueTransfer:  st.ValueTransfer,
			Target:         st.Target,
			TargetConstant: st.TargetConstant,
		})
	}
	return sites
}

// GuardedBySender reports whether the function carries a modifier that
// performs a stored-address caller check.
func (f *Function) GuardedBySender() bool {
	for _, m := range f.Modifiers {
		if m.GuardsSender() {
			return true
		}
	}
	return false
}

// IsConstructor covers both the constructor keyword and the pre-0.5
// function-named-like-contract form.
func (f *Function) IsConstructor() bool {
	return f.Name == "constructor" || f.Name == f.ContractName
}

type Contract struct {
	name       string
	sourceFile string
	functions  []*Function
	vars       map[string]StateVar
	modifiers  map[string]*Modifier
}

func (c *Contract) Name() string       { return c.name }
func (c *Contract) SourceFile() string { return c.sourceFile }

// Functions returns functions in declaration order. Callers must not
// mutate the returned slice elements.
func (c *Contract) Functions() []*Function {
	out := make([]*Function, len(c.functions))
	copy(out, c.functions)
	return out
}

func (c *Contract) StateVar(name string) (StateVar, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// StateVars returns state variables in declaration order (by line,
// then name for frontends that do not carry line numbers).
func (c *Contract) StateVars() []StateVar {
	out := make([]StateVar, 0, len(c.vars))
	for _, v := range c.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (c *Contract) Modifier(name string) (*Modifier, bool) {
	m, ok := c.modifiers[name]
	return m, ok
}
