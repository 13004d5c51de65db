// Package output serializes report results as indented JSON.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// Indent is the indentation of every nesting level.
const Indent = "    "

// Marshal renders result with four-space indentation. HTML characters are
// not escaped and non-ASCII text is kept as UTF-8.
func Marshal(result domain.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders result to w followed by a newline.
func Write(w io.Writer, result domain.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteFile renders result into the file at path, replacing its contents.
func WriteFile(path string, result domain.Result) error {
	data, err := Marshal(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // report output is meant to be readable
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
