package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/ecovate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string   store driver (sqlite, postgres)
//	-d string   store DSN
//	-l string   log level
//	-f string   factor table YAML file
//
// os.Args is filtered with flagx.FilterArgs so that flags owned by other
// loaders (-c, -env) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver: sqlite or postgres")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "store DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.FactorsFile, "f", cfg.FactorsFile, "emission and credit factors YAML file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
