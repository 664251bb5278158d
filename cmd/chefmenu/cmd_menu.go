package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/app/views"
)

// chefmenu menu:courses
var menuCoursesCmd = &cobra.Command{
	Use:   "menu:courses",
	Short: "List the menu courses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range models.Courses() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", c.ID, c.Label())
		}
		return nil
	},
}

// chefmenu menu:card [course]
var menuCardCmd = &cobra.Command{
	Use:   "menu:card [course]",
	Short: "Print the guest menu card for the sample menu",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := catalog.FilterAll
		if len(args) == 1 {
			filter = args[0]
		}
		if f := catalog.NormalizeFilter(filter); f != catalog.FilterAll && !models.IsCourse(f) {
			return fmt.Errorf("unknown course %q (see menu:courses)", filter)
		}

		menu := catalog.New()
		if err := catalog.SeedSample(menu); err != nil {
			return err
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), views.Card(catalog.GuestView(menu, filter)))
		return err
	},
}
