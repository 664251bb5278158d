package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/chefmenu/app/graph"
	"github.com/shashiranjanraj/chefmenu/app/routes"
	"github.com/shashiranjanraj/chefmenu/config"
	"github.com/shashiranjanraj/chefmenu/internal/kernel"
	"github.com/shashiranjanraj/chefmenu/pkg/app"
	"github.com/shashiranjanraj/chefmenu/pkg/storage"
)

// chefmenu route:list
var routeListCmd = &cobra.Command{
	Use:     "route:list",
	Aliases: []string{"routes"},
	Short:   "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		menu, _ := kernel.NewMenu()
		schema, err := graph.NewSchema(menu)
		if err != nil {
			return err
		}
		a := kernel.NewApplication(routes.Deps{
			Menu:   menu,
			Disks:  storage.NewManager(config.StorageDefault()),
			Schema: schema,
			Chef:   config.ChefName(),
		}, nil)
		return app.PrintRoutes(cmd.OutOrStdout(), a.RouteList())
	},
}
