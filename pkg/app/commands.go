package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/chefmenu/pkg/router"
)

// PrintRoutes writes routes as an aligned METHOD / PATH / NAME table.
func PrintRoutes(w io.Writer, routes []router.Route) error {
	if len(routes) == 0 {
		_, err := fmt.Fprintln(w, "No routes registered.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
	fmt.Fprintln(tw, "------\t----\t----")
	for _, ri := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return tw.Flush()
}
