package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteJSON writes the document to <outDir>/<contract>.json and
// returns the path.
func WriteJSON(outDir string, doc *Document) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Wrap(err, "MkdirAll")
	}
	path := filepath.Join(outDir, doc.ContractName+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "Create")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(err, "Encode")
	}
	return path, nil
}

// MarshalJSON renders the document to indented JSON bytes, for callers
// that print instead of persisting.
func MarshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
