// Package cli implements the urlparts command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vizee/urlparts/inspect"
	"github.com/vizee/urlparts/internal/ioutil"
	"github.com/vizee/urlparts/log"
)

// maxStdinURL bounds the URL read when the argument is "-".
const maxStdinURL = 1 << 20

// errReported marks failures that were already printed to stderr.
var errReported = errors.New("reported")

type inspectConfig struct {
	opts     inspect.Options
	jsonOnly bool
}

func bindInspectFlags(fs *pflag.FlagSet, cfg *inspectConfig) {
	fs.StringVarP(&cfg.opts.Base, "base", "b", "", "base URL to resolve the URL against")
	fs.BoolVarP(&cfg.opts.Encode, "encode", "e", false, "encode URL components while parsing")
	fs.BoolVar(&cfg.opts.IDNA, "idna", false, "convert internationalized hostnames to ASCII")
	fs.BoolVar(&cfg.jsonOnly, "json-only", false, "print only the JSON line")
}

func newRootCmd() *cobra.Command {
	var (
		cfg     inspectConfig
		verbose bool
	)
	root := &cobra.Command{
		Use:   "urlparts [flags] <URL>",
		Short: "print how a URL is decomposed",
		Long: `
Parse a URL, optionally relative to a base URL, and print every component
(scheme, user, password, options, host, port, path, query, fragment, zone id)
both raw and percent-decoded, followed by the same data as a JSON object.
A URL of "-" is read from standard input.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLogger(log.NewStdLogger(cmd.ErrOrStderr(), verbose))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, &cfg)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debugging output to stderr")
	bindInspectFlags(root.Flags(), &cfg)

	root.AddCommand(
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

func readURL(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := ioutil.ReadLimited(cmd.InOrStdin(), -1, maxStdinURL)
	if err != nil {
		return "", errors.Wrap(err, "read URL from stdin")
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func runInspect(cmd *cobra.Command, args []string, cfg *inspectConfig) error {
	if len(args) < 1 {
		log.Errorf("No URL found")
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return errReported
	}
	input, err := readURL(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !cfg.jsonOnly {
		fmt.Fprintf(out, "VERSION:%s\n", inspect.EngineVersion())
		fmt.Fprintf(out, "using %s %s/%s\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}

	p := inspect.NewParser(cfg.opts)
	if cfg.opts.Base != "" {
		if !cfg.jsonOnly {
			fmt.Fprintf(out, "parsing base \"%s\"\n", cfg.opts.Base)
		}
		err = p.SetBase(cfg.opts.Base)
		if err != nil {
			log.Errorf("Failed to parse base URL: %v", errors.UnwrapAll(err))
			return errReported
		}
		if !cfg.jsonOnly {
			fmt.Fprintln(out)
		}
	}

	if !cfg.jsonOnly {
		fmt.Fprintf(out, "parsing \"%s\"\n", input)
	}
	r, err := p.Parse(input)
	if err != nil {
		log.Errorf("Failed to parse URL: %v", errors.UnwrapAll(err))
		return errReported
	}

	parts := r.Parts()
	if !cfg.jsonOnly {
		err = inspect.WriteText(out, parts)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "JSON:%s\n", inspect.EncodeJSON(parts))
	return err
}

// Run executes the command line with the given arguments and streams.
func Run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}

func Main() {
	if err := Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
