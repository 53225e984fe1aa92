package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aegis-go/aegis/internal/demo"
	"github.com/aegis-go/aegis/pkg/aegis"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := aegis.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg.LogLevel = "error"

		app, err := aegis.New(cfg)
		if err != nil {
			return err
		}
		if err := app.RegisterModule(demo.NewAppModule()); err != nil {
			return err
		}

		routes := app.Routes()
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, route := range routes {
			fmt.Fprintf(w, "%s\t%s\n", route.Method, route.Path)
		}
		return w.Flush()
	},
}
