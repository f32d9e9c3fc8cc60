package solidity

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/Notation/solc-go"
	"github.com/pkg/errors"

	"solscan/internal/util"
)

// solc compiler input & output docs:
// https://docs.soliditylang.org/en/v0.5.0/using-the-compiler.html#compiler-input-and-output-json-description

const PragmaSolidity = "pragma solidity "

// ExtractVersionFromData pulls the pragma version out of source text.
func ExtractVersionFromData(fileData []byte) (string, error) {
	lines := strings.Split(string(fileData), "\n")
	for i := range lines {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, PragmaSolidity) {
			pre := strings.TrimPrefix(trimmed, PragmaSolidity)
			return strings.TrimRight(pre, ";"), nil
		}
	}
	return "", nil
}

// CheckedArithmetic reports whether the pragma version guarantees
// overflow checks (0.8 and later).
func CheckedArithmetic(version string) bool {
	v := strings.TrimLeft(version, "^>=~ ")
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return false
	}
	if parts[0] != "0" {
		// 1.x and later keep checked arithmetic
		return parts[0] != ""
	}
	minor := 0
	for _, ch := range parts[1] {
		if ch < '0' || ch > '9' {
			break
		}
		minor = minor*10 + int(ch-'0')
	}
	return minor >= 8
}

// CompileResult carries the compiler facts a report attaches to a
// scanned contract.
type CompileResult struct {
	CompilerVersion string            `json:"compilerVersion"`
	BytecodeHashes  map[string]string `json:"bytecodeHashes"` // contract name -> keccak of deployed bytecode
}

// CompileFile compiles a source file with the solc build matching its
// pragma, downloading the binary into solcDir when missing.
func CompileFile(file, solcDir string) (*CompileResult, error) {
	fileData, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "ReadFile")
	}
	version, err := ExtractVersionFromData(fileData)
	if err != nil {
		return nil, errors.Wrap(err, "ExtractVersionFromData")
	}
	if version == "" {
		return nil, errors.Errorf("no pragma solidity version in %s", file)
	}
	solcFile, err := PrepareSolcBinary(version, solcDir)
	if err != nil {
		return nil, errors.Wrap(err, "PrepareSolcBinary")
	}
	compiler, err := solc.NewFromFile(solcFile, strings.TrimPrefix(version, "^"))
	if err != nil {
		return nil, errors.Wrap(err, "NewFromFile")
	}
	input := &solc.Input{
		Language: "Solidity",
		Sources: map[string]solc.SourceIn{
			file: {Content: string(fileData)},
		},
		Settings: solc.Settings{
			Optimizer: solc.Optimizer{
				Enabled: false,
			},
			OutputSelection: map[string]map[string][]string{
				"*": {
					"*": []string{
						"metadata",
						"evm.bytecode",
						"evm.deployedBytecode",
						"evm.methodIdentifiers",
					},
				},
			},
		},
	}
	output, err := compiler.Compile(input)
	if err != nil {
		return nil, errors.Wrap(err, "Compile")
	}
	return decodeOutput(output, file, version)
}

// decodeOutput goes through JSON rather than the solc-go structs so
// only the fields of interest are depended on.
func decodeOutput(output *solc.Output, file, version string) (*CompileResult, error) {
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, errors.Wrap(err, "Marshal")
	}
	var decoded struct {
		Contracts map[string]map[string]struct {
			EVM struct {
				DeployedBytecode struct {
					Object string `json:"object"`
				} `json:"deployedBytecode"`
			} `json:"evm"`
		} `json:"contracts"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, "Unmarshal")
	}
	result := &CompileResult{
		CompilerVersion: strings.TrimPrefix(version, "^"),
		BytecodeHashes:  make(map[string]string),
	}
	for _, contracts := range decoded.Contracts {
		for name, c := range contracts {
			if c.EVM.DeployedBytecode.Object == "" {
				continue
			}
			hash, _, err := util.GetCodeHash(c.EVM.DeployedBytecode.Object)
			if err != nil {
				return nil, errors.Wrapf(err, "GetCodeHash %s", name)
			}
			result.BytecodeHashes[name] = hash
		}
	}
	if len(result.BytecodeHashes) == 0 {
		return nil, errors.Errorf("solc produced no bytecode for %s", file)
	}
	return result, nil
}
