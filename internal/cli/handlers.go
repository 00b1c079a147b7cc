package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/micmurawski/osdu-client-sub000/pkg/registry"
)

// printNames writes name, verb and path columns sorted by operation key.
func printNames(w io.Writer, reg *registry.Store) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tPATH")
	for _, key := range reg.Keys() {
		e, _ := reg.Lookup(key)
		method, path := registry.SplitKey(key)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, method, path)
	}
	return tw.Flush()
}

// utility
func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
