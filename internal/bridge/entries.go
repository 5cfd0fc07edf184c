package bridge

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScanEntries lists the direct children of root and returns their absolute
// paths in directory order. Every entry is a candidate bundling root; the
// entry directory is expected to hold only intended entry files, so nothing
// is filtered by extension.
func ScanEntries(root string) ([]string, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrEntryRootNotFound, root)
		}
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	entries := make([]string, 0, len(dirents))
	for _, dirent := range dirents {
		abs, err := filepath.Abs(filepath.Join(root, dirent.Name()))
		if err != nil {
			return nil, fmt.Errorf("scan entries: %w", err)
		}
		entries = append(entries, abs)
	}
	return entries, nil
}
