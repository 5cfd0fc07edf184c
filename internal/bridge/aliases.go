package bridge

import "path/filepath"

// Alias maps an import shortcut to an absolute source directory. The build
// tool applies aliases in list order, so order is preserved end to end.
type Alias struct {
	Name string
	Path string
}

// ResolveAliases derives one alias per short name, in input order. Each name
// becomes @<name> pointing at <workDir>/src/<name>.
func ResolveAliases(workDir string, names []string) []Alias {
	aliases := make([]Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, Alias{
			Name: "@" + name,
			Path: filepath.Join(workDir, "src", name),
		})
	}
	return aliases
}
