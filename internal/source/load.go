package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/gorewood/doctags/internal/symbol"
)

// ErrNoInput is returned by Load when neither a dump nor a source directory
// is given.
var ErrNoInput = errors.New("no input: pass a dump file or a Go source directory")

// Load reads input as a Go source directory when it is a directory and as a
// dump otherwise.
func Load(input string, opts GoOptions) (symbol.Tree, error) {
	if input == "" {
		return nil, ErrNoInput
	}
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if info.IsDir() {
		tree, err := ScanGo(input, opts)
		if err != nil {
			return nil, err
		}
		return symbol.NewElementTree(tree), nil
	}
	return LoadDump(input)
}
