package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags handled here are kept from os.Args (see flagx.FilterArgs),
// so flags owned by other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-l", "-d", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the inventory API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.PageSize, "l", cfg.PageSize, "products per page")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for exported files")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
