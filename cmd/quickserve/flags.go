package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling config lookup and output.
type commonFlags struct {
	config      string
	printConfig bool
	quiet       bool
	verbose     bool
}

// siteFlags holds project layout flags.
type siteFlags struct {
	root     string
	noMinify bool
}

// serverFlags holds listener flags.
type serverFlags struct {
	host    string
	port    int
	hostSet bool // --host given, even as ""
	portSet bool // --port given, even as 0
}

// serveFlags holds all flags of the command.
type serveFlags struct {
	common  commonFlags
	site    siteFlags
	server  serverFlags
	version bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addSiteFlags adds project layout flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.root, "root", "r", "", "project root (default: working directory)")
	fs.BoolVar(&f.noMinify, "no-minify", false, "bundle styles without minifying")
}

// addServerFlags adds listener flags to a FlagSet.
func addServerFlags(fs *flag.FlagSet, f *serverFlags) {
	fs.StringVar(&f.host, "host", "", "listen host (default: all interfaces)")
	fs.IntVarP(&f.port, "port", "p", 0, "listen port (default: 8000)")
}

// parseFlags parses command flags. Positional arguments are rejected.
func parseFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("quickserve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addServerFlags(fs, &f.server)
	fs.BoolVar(&f.version, "version", false, "show version information")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	f.server.hostSet = fs.Changed("host")
	f.server.portSet = fs.Changed("port")
	return f, nil
}
