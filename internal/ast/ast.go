// Package ast declares the structural contract representation the
// scanner consumes. A frontend (the lightweight source parser in
// internal/solidity, or any external collaborator emitting the same
// JSON shape) produces these nodes; the core never reads Solidity
// source itself.
package ast

import "encoding/json"

// DecodeContracts reads frontend output: a JSON array of contract
// nodes, or a single node object for frontends that emit one contract
// per document.
func DecodeContracts(data []byte) ([]ContractNode, error) {
	var nodes []ContractNode
	if err := json.Unmarshal(data, &nodes); err == nil {
		return nodes, nil
	}
	var single ContractNode
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []ContractNode{single}, nil
}

// StatementKind classifies the simplified statement forms the scanner
// reasons about. Anything the frontend cannot classify is dropped, not
// carried as an opaque node.
type StatementKind string

const (
	StmtExternalCall StatementKind = "external_call"
	StmtStateWrite   StatementKind = "state_write"
	StmtStateRead    StatementKind = "state_read"
	StmtCondition    StatementKind = "condition"
	StmtExpression   StatementKind = "expression"
)

// CallKind names the external call forms of interest.
type CallKind string

const (
	CallLowLevel     CallKind = "call"
	CallDelegate     CallKind = "delegatecall"
	CallStatic       CallKind = "staticcall"
	CallTransfer     CallKind = "transfer"
	CallSend         CallKind = "send"
	CallSelfdestruct CallKind = "selfdestruct"
)

type StatementNode struct {
	Kind StatementKind `json:"kind"`
	Line int           `json:"line"`

	// external_call
	Call           CallKind `json:"call,omitempty"`
	ValueTransfer  bool     `json:"valueTransfer,omitempty"`
	Target         string   `json:"target,omitempty"`
	TargetConstant bool     `json:"targetConstant,omitempty"`

	// state_write / state_read
	Var string `json:"var,omitempty"`
	Op  string `json:"op,omitempty"`

	// condition
	OriginCheck bool   `json:"originCheck,omitempty"`
	SenderCheck bool   `json:"senderCheck,omitempty"`
	BoundsVar   string `json:"boundsVar,omitempty"`

	// expression
	Entropy []string `json:"entropy,omitempty"`
}

type VarDeclNode struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Visibility string `json:"visibility"`
	Constant   bool   `json:"constant,omitempty"`
	Line       int    `json:"line"`
}

type ModifierNode struct {
	Name       string          `json:"name"`
	Line       int             `json:"line"`
	Statements []StatementNode `json:"statements"`
}

type FunctionNode struct {
	Name       string          `json:"name"`
	Visibility string          `json:"visibility"`
	Mutability string          `json:"mutability,omitempty"`
	Line       int             `json:"line"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Statements []StatementNode `json:"statements"`
}

type ContractNode struct {
	Name       string         `json:"name"`
	SourceFile string         `json:"sourceFile,omitempty"`
	Vars       []VarDeclNode  `json:"vars,omitempty"`
	Modifiers  []ModifierNode `json:"modifiers,omitempty"`
	Functions  []FunctionNode `json:"functions"`
}
