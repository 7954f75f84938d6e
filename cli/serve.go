package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vizee/urlparts/inspect"
	"github.com/vizee/urlparts/server"
)

func newServeCmd() *cobra.Command {
	var cfg server.Config
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve URL decompositions over HTTP",
		Long: `
Serve GET /parse?url=<url>[&base=<url>][&encode=1][&idna=1] and
POST /parse (URL in the request body), answering with the JSON object
printed by the command line. GET /version reports the parser version.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(cfg).ListenAndServe()
		},
	}
	cmd.Flags().StringVarP(&cfg.Addr, "listen", "l", ":8080", "listen address")
	cmd.Flags().Int64Var(&cfg.MaxBodySize, "max-body", server.DefaultMaxBodySize, "maximum POST body size in bytes")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "output the URL parser version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "VERSION:%s\n", inspect.EngineVersion())
		},
	}
}
