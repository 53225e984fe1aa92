package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:     "aegis",
	Version: version,
	Short:   "Modular HTTP application framework",
	Long: `Aegis is a modular HTTP application framework.

An application is declared as a tree of modules; each module contributes
providers to the dependency injection container and controllers whose routes
are mounted on a radix-tree router. Requests flow through application, group
and route middleware, then guards, then the handler, with exception filters
converting any error into a response.

This binary serves the bundled reference application:

	aegis serve            start the HTTP server
	aegis routes           print the route table
	aegis info             print build information

Configuration is read from an optional YAML file (--config) and can be
overridden per field with AEGIS_-prefixed environment variables, e.g.
AEGIS_PORT=8080.`,
	SilenceUsage: true,
}

func init() {
	addConfigFlag(rootCmd.PersistentFlags())
	rootCmd.AddCommand(serveCmd, routesCmd, infoCmd)
}

func addConfigFlag(fs *pflag.FlagSet) {
	fs.StringVarP(&configFile, "config", "c", "", "path to the YAML configuration file")
}
