// Command chefmenu runs the private-chef menu service.
//
//	chefmenu serve              # HTTP API, plus gRPC and Telegram when configured
//	chefmenu route:list         # list API routes
//	chefmenu menu:courses       # list the fixed courses
//	chefmenu menu:card mains    # print a guest menu card for the sample menu
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "chefmenu",
	Short:         "Private chef menu service",
	Long:          "chefmenu manages a private chef's menu and serves it to guests over HTTP, GraphQL, gRPC health and Telegram.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(menuCoursesCmd)
	rootCmd.AddCommand(menuCardCmd)
}
