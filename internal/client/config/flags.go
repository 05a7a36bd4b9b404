package config

import (
	"flag"
	"os"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the Vinobook server (default from Config)
//	-d string   path to the local session database (default from Config)
//
// os.Args is filtered through flagx.FilterArgs so the config-file flags
// handled elsewhere do not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the Vinobook server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local session database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
