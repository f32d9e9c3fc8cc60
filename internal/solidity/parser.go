// Package solidity is the source frontend: a line-oriented heuristic
// parser that turns Solidity source into the ast nodes the scanner
// consumes, plus the solc compile pipeline used to enrich reports.
// It is deliberately not a real compiler front-end; anything it cannot
// classify it drops.
package solidity

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"solscan/internal/ast"
)

var (
	reContract    = regexp.MustCompile(`^\s*(?:abstract\s+)?contract\s+([A-Za-z_]\w*)`)
	reStateVar    = regexp.MustCompile(`^\s*(mapping\b|uint\d*\b|int\d*\b|address\b|bool\b|string\b|bytes\d*\b)`)
	reModifier    = regexp.MustCompile(`^\s*modifier\s+([A-Za-z_]\w*)`)
	reFunction    = regexp.MustCompile(`^\s*function\s+([A-Za-z_]\w*)\s*\(`)
	reSpecialFunc = regexp.MustCompile(`^\s*(constructor|fallback|receive)\s*\(`)
	reIdent       = regexp.MustCompile(`[A-Za-z_]\w*`)
	reReturns     = regexp.MustCompile(`returns\s*\([^)]*\)`)
	reWrite       = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*(\[[^\]]*\])?\s*(\+\+|--|\+=|-=|=)`)
	reDelegateTgt = regexp.MustCompile(`([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)\.delegatecall\s*\(`)
	reCallTarget  = regexp.MustCompile(`([A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*)\.(call|send|transfer|staticcall)\b`)
	reCompare     = regexp.MustCompile(`(>=|<=|>|<)`)
	reNow         = regexp.MustCompile(`\bnow\b`)
)

var headerKeywords = map[string]bool{
	"public": true, "external": true, "internal": true, "private": true,
	"payable": true, "view": true, "pure": true,
	"virtual": true, "override": true, "returns": true, "memory": true,
	"calldata": true, "storage": true,
}

// entropyTokens are the candidate entropy sources the parser records,
// in the order it probes for them. Non-block sources are included so
// the weak-randomness rule can tell mixed entropy from block-only.
var entropyTokens = []string{
	"block.timestamp", "block.difficulty", "block.prevrandao",
	"block.number", "block.coinbase", "blockhash",
	"msg.sender", "msg.value",
}

// ParseFile parses all contracts declared in a Solidity source file.
func ParseFile(path string) ([]*ast.ContractNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "ReadFile")
	}
	contracts := Parse(string(data), path)
	if len(contracts) == 0 {
		return nil, errors.Errorf("no contract found in %s", path)
	}
	return contracts, nil
}

// Parse splits the source into contract blocks and parses each one.
func Parse(source, sourceFile string) []*ast.ContractNode {
	lines := strings.Split(source, "\n")
	for i := range lines {
		lines[i] = stripComment(lines[i])
	}

	var contracts []*ast.ContractNode
	depth := 0
	start, name := -1, ""
	for i, line := range lines {
		if depth == 0 {
			if m := reContract.FindStringSubmatch(line); m != nil {
				start, name = i, m[1]
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth == 0 && start >= 0 {
			contracts = append(contracts, parseContract(name, sourceFile, lines[start:i+1], start))
			start = -1
		}
	}
	return contracts
}

func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// parseContract runs two passes over a contract block: state variable
// declarations first (they may follow the functions that use them),
// then function and modifier bodies.
func parseContract(name, sourceFile string, lines []string, offset int) *ast.ContractNode {
	node := &ast.ContractNode{Name: name, SourceFile: sourceFile}

	depth := 0
	inBody := 0 // brace depth at which function/modifier bodies start
	for i, line := range lines {
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")
		if depth == 1 && inBody == 0 && reStateVar.MatchString(line) &&
			!reFunction.MatchString(line) && !reModifier.MatchString(line) {
			if v, ok := parseStateVar(line, offset+i+1); ok {
				node.Vars = append(node.Vars, v)
			}
		}
		if depth == 1 && (reFunction.MatchString(line) || reSpecialFunc.MatchString(line) || reModifier.MatchString(line)) && opens > 0 {
			inBody = depth + opens
		}
		depth += opens - closes
		if depth <= inBody-1 {
			inBody = 0
		}
	}

	vars := make(map[string]ast.VarDeclNode, len(node.Vars))
	for _, v := range node.Vars {
		vars[v.Name] = v
	}

	depth = 0
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		atMember := depth == 1

		var fn *ast.FunctionNode
		var mod *ast.ModifierNode
		switch {
		case atMember && reModifier.MatchString(line):
			m := reModifier.FindStringSubmatch(line)
			mod = &ast.ModifierNode{Name: m[1], Line: offset + i + 1}
		case atMember && reFunction.MatchString(line):
			m := reFunction.FindStringSubmatch(line)
			fn = &ast.FunctionNode{Name: m[1], Line: offset + i + 1}
			fillHeader(fn, line, vars)
		case atMember && reSpecialFunc.MatchString(line):
			m := reSpecialFunc.FindStringSubmatch(line)
			fn = &ast.FunctionNode{Name: m[1], Line: offset + i + 1}
			fillHeader(fn, line, vars)
		}

		if fn == nil && mod == nil {
			depth += strings.Count(line, "{") - strings.Count(line, "}")
			continue
		}
		if !strings.Contains(line, "{") {
			// interface-style declaration, no body
			continue
		}

		body, end := extractBody(lines, i)
		stmts := parseBody(body, offset+i+1, vars)
		if fn != nil {
			fn.Statements = stmts
			node.Functions = append(node.Functions, *fn)
		} else {
			mod.Statements = stmts
			node.Modifiers = append(node.Modifiers, *mod)
		}
		i = end
	}
	return node
}

func parseStateVar(line string, lineNum int) (ast.VarDeclNode, bool) {
	decl := line
	if idx := strings.Index(decl, ";"); idx >= 0 {
		decl = decl[:idx]
	}
	if idx := assignIndex(decl); idx >= 0 {
		decl = decl[:idx]
	}
	idents := reIdent.FindAllString(decl, -1)
	if len(idents) == 0 {
		return ast.VarDeclNode{}, false
	}
	name := idents[len(idents)-1]
	if headerKeywords[name] || name == "mapping" {
		return ast.VarDeclNode{}, false
	}
	v := ast.VarDeclNode{
		Name: name,
		Type: idents[0],
		Line: lineNum,
	}
	for _, kw := range []string{"public", "private", "internal"} {
		if strings.Contains(decl, kw) {
			v.Visibility = kw
			break
		}
	}
	if strings.Contains(decl, "constant") || strings.Contains(decl, "immutable") {
		v.Constant = true
	}
	return v, true
}

// assignIndex finds a plain assignment '=', skipping the '=' inside
// mapping arrows and comparison operators.
func assignIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && (s[i+1] == '=' || s[i+1] == '>') {
			i++
			continue
		}
		if i > 0 && (s[i-1] == '=' || s[i-1] == '!' || s[i-1] == '<' || s[i-1] == '>') {
			continue
		}
		return i
	}
	return -1
}

// fillHeader picks visibility, mutability and modifier references out
// of a function header line.
func fillHeader(fn *ast.FunctionNode, line string, vars map[string]ast.VarDeclNode) {
	header := line
	if idx := strings.Index(header, "{"); idx >= 0 {
		header = header[:idx]
	}
	for _, kw := range []string{"external", "internal", "private", "public"} {
		if regexp.MustCompile(`\b` + kw + `\b`).MatchString(header) {
			fn.Visibility = kw
			break
		}
	}
	for _, kw := range []string{"payable", "view", "pure"} {
		if regexp.MustCompile(`\b` + kw + `\b`).MatchString(header) {
			fn.Mutability = kw
			break
		}
	}
	// modifier refs live after the parameter list, outside returns(...)
	tail := header
	if idx := strings.Index(tail, ")"); idx >= 0 {
		tail = tail[idx+1:]
	}
	tail = reReturns.ReplaceAllString(tail, "")
	for _, ident := range reIdent.FindAllString(tail, -1) {
		if headerKeywords[ident] {
			continue
		}
		if _, isVar := vars[ident]; isVar {
			continue
		}
		fn.Modifiers = append(fn.Modifiers, ident)
	}
}

// extractBody returns the body lines of the block opening at lines[i]
// and the index of its closing line.
func extractBody(lines []string, i int) ([]string, int) {
	depth := 0
	for j := i; j < len(lines); j++ {
		depth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
		if depth == 0 {
			return lines[i : j+1], j
		}
	}
	return lines[i:], len(lines) - 1
}

func parseBody(body []string, firstLine int, vars map[string]ast.VarDeclNode) []ast.StatementNode {
	var stmts []ast.StatementNode
	for i, line := range body {
		if i == 0 {
			// header line: skip so parameter names do not read as state
			continue
		}
		lineNum := firstLine + i
		stmts = append(stmts, classifyLine(line, lineNum, vars)...)
	}
	return stmts
}

// classifyLine emits the simplified statements a source line implies:
// state reads first, then at most one of condition / entropy
// expression / external call / state write.
func classifyLine(line string, lineNum int, vars map[string]ast.VarDeclNode) []ast.StatementNode {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed == "{" || trimmed == "}" {
		return nil
	}

	var stmts []ast.StatementNode

	writeVar, writeOp := "", ""
	if m := reWrite.FindStringSubmatch(line); m != nil {
		if _, ok := vars[m[1]]; ok {
			writeVar, writeOp = m[1], m[3]
			if writeOp == "=" {
				// canonicalize x = x + y / x = x - y
				rhs := line[strings.Index(line, "=")+1:]
				if m2 := regexp.MustCompile(`^\s*` + writeVar + `\s*(\[[^\]]*\])?\s*([+\-])`).FindStringSubmatch(rhs); m2 != nil {
					writeOp = m2[2] + "="
				}
			}
		}
	}

	// reads: every state variable mentioned outside the write target
	seen := map[string]bool{}
	for _, ident := range reIdent.FindAllString(line, -1) {
		if _, ok := vars[ident]; !ok || seen[ident] {
			continue
		}
		seen[ident] = true
		if ident == writeVar {
			continue
		}
		stmts = append(stmts, ast.StatementNode{Kind: ast.StmtStateRead, Line: lineNum, Var: ident})
	}

	if entropy := entropySources(line); entropy != nil {
		stmts = append(stmts, ast.StatementNode{Kind: ast.StmtExpression, Line: lineNum, Entropy: entropy})
	}

	switch {
	case isCondition(trimmed):
		stmts = append(stmts, conditionStatement(line, lineNum, vars))
	case strings.Contains(line, "selfdestruct(") || strings.Contains(line, "suicide("):
		stmts = append(stmts, ast.StatementNode{
			Kind: ast.StmtExternalCall, Line: lineNum, Call: ast.CallSelfdestruct,
		})
	case strings.Contains(line, ".delegatecall("):
		st := ast.StatementNode{Kind: ast.StmtExternalCall, Line: lineNum, Call: ast.CallDelegate}
		if m := reDelegateTgt.FindStringSubmatch(line); m != nil {
			st.Target = m[1]
			if v, ok := vars[m[1]]; ok && v.Constant {
				st.TargetConstant = true
			}
		}
		stmts = append(stmts, st)
	case reCallTarget.MatchString(line):
		m := reCallTarget.FindStringSubmatch(line)
		st := ast.StatementNode{Kind: ast.StmtExternalCall, Line: lineNum, Target: m[1]}
		switch m[2] {
		case "transfer":
			st.Call, st.ValueTransfer = ast.CallTransfer, true
		case "send":
			st.Call, st.ValueTransfer = ast.CallSend, true
		case "staticcall":
			st.Call = ast.CallStatic
		default:
			st.Call = ast.CallLowLevel
			st.ValueTransfer = strings.Contains(line, ".call{value") || strings.Contains(line, ".call.value(")
		}
		stmts = append(stmts, st)
	case writeVar != "":
		stmts = append(stmts, ast.StatementNode{Kind: ast.StmtStateWrite, Line: lineNum, Var: writeVar, Op: writeOp})
	}

	return stmts
}

func isCondition(trimmed string) bool {
	return strings.HasPrefix(trimmed, "require(") || strings.HasPrefix(trimmed, "require (") ||
		strings.HasPrefix(trimmed, "assert(") || strings.HasPrefix(trimmed, "assert (") ||
		strings.HasPrefix(trimmed, "if(") || strings.HasPrefix(trimmed, "if (")
}

func conditionStatement(line string, lineNum int, vars map[string]ast.VarDeclNode) ast.StatementNode {
	st := ast.StatementNode{Kind: ast.StmtCondition, Line: lineNum}
	if strings.Contains(line, "tx.origin") && strings.Contains(line, "==") {
		st.OriginCheck = true
	}
	if strings.Contains(line, "msg.sender") && strings.Contains(line, "==") {
		for _, ident := range reIdent.FindAllString(line, -1) {
			if v, ok := vars[ident]; ok && v.Type == "address" {
				st.SenderCheck = true
				break
			}
		}
	}
	if reCompare.MatchString(line) {
		for _, ident := range reIdent.FindAllString(line, -1) {
			if _, ok := vars[ident]; ok {
				st.BoundsVar = ident
				break
			}
		}
	}
	return st
}

// entropySources reports the entropy tokens a randomness-looking
// expression combines, or nil when the line is not one.
func entropySources(line string) []string {
	randomish := strings.Contains(line, "keccak256(") || strings.Contains(line, "sha3(") ||
		strings.Contains(line, "%")
	if !randomish {
		return nil
	}
	var sources []string
	for _, tok := range entropyTokens {
		if strings.Contains(line, tok) {
			sources = append(sources, tok)
		}
	}
	if reNow.MatchString(line) {
		sources = append(sources, "now")
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}
