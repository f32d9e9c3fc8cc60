package solidity

import (
	"encoding/json"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"solscan/internal/util"
)

// https://github.com/ethereum/solc-bin/tree/gh-pages/bin
type SolcBinaryVersionInfo struct {
	Path       string   `json:"path"`
	Version    string   `json:"version"`
	Build      string   `json:"build"`
	LogVersion string   `json:"longVersion"`
	Keccak256  string   `json:"keccak256"`
	Sha256     string   `json:"sha256"`
	URLs       []string `json:"urls"`
}

type SolcBinaryMeta struct {
	dir    string
	Builds []SolcBinaryVersionInfo `json:"builds"`
}

const (
	SolcBinaryMetaFile = "list.json"
	SolcBinaryEndpoint = "https://raw.githubusercontent.com/ethereum/solc-bin/gh-pages/wasm/"
)

// PrepareSolcBinary resolves the local solc build for a pragma
// version, fetching the build list and binary into dir on first use.
func PrepareSolcBinary(version, dir string) (string, error) {
	solcMeta, err := NewSolcBinaryMeta(dir)
	if err != nil {
		return "", errors.Wrap(err, "NewSolcBinaryMeta")
	}
	solcFile, err := solcMeta.GetSolcBinary(version)
	if err != nil {
		return "", errors.Wrap(err, "GetSolcBinary")
	}
	return solcFile, nil
}

func NewSolcBinaryMeta(dir string) (*SolcBinaryMeta, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "MkdirAll")
	}
	localMetaFilePath := path.Join(dir, SolcBinaryMetaFile)
	metaFileExists, err := util.FileExists(localMetaFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "FileExists")
	}
	if !metaFileExists {
		err := util.DownloadFile(localMetaFilePath, SolcBinaryEndpoint+SolcBinaryMetaFile)
		if err != nil {
			return nil, errors.Wrap(err, "DownloadFile")
		}
	}
	return readSolcMeta(localMetaFilePath, dir)
}

// GetSolcBinary picks the matching non-nightly build from the list.
func (sbm *SolcBinaryMeta) GetSolcBinary(version string) (string, error) {
	version = strings.TrimPrefix(version, "^")
	var solcBinaryPath string
	for i := range sbm.Builds {
		if !strings.Contains(sbm.Builds[i].Path, version) ||
			strings.Contains(sbm.Builds[i].Path, "nightly") {
			continue
		}
		solcBinaryPath = sbm.Builds[i].Path
		break
	}
	if solcBinaryPath == "" {
		return "", errors.Errorf("no version matches")
	}
	localSolcBinaryPath := path.Join(sbm.dir, solcBinaryPath)
	binaryFileExists, err := util.FileExists(localSolcBinaryPath)
	if err != nil {
		return "", errors.Wrap(err, "FileExists")
	}
	if binaryFileExists {
		return localSolcBinaryPath, nil
	}
	err = util.DownloadFile(localSolcBinaryPath, SolcBinaryEndpoint+solcBinaryPath)
	if err != nil {
		return "", errors.Wrap(err, "DownloadFile")
	}
	return localSolcBinaryPath, nil
}

func readSolcMeta(filePath, dir string) (*SolcBinaryMeta, error) {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "ReadFile")
	}
	solcMeta := SolcBinaryMeta{dir: dir}
	err = json.Unmarshal(fileData, &solcMeta)
	if err != nil {
		return nil, errors.Wrap(err, "Unmarshal")
	}
	return &solcMeta, nil
}
