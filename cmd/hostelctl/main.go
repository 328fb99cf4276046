package main

import (
	"fmt"
	"os"

	"hostelhub/internal/campus"
	"hostelhub/internal/logging"
	"hostelhub/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand once the root has run
type app struct {
	verbose  bool
	seedFile string

	logger *zap.Logger
	repo   *repository.MemoryRepository
	dir    *campus.Directory
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "hostelctl",
		Short: "Query and validate HostelHub data from the command line",
		Long: `hostelctl runs hostel searches, signup validation and campus lookups
against the seeded in-memory store, without starting the API server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, "console")
			if err != nil {
				return err
			}
			a.logger = logger

			seed, err := repository.LoadSeed(a.seedFile)
			if err != nil {
				return err
			}
			a.repo = repository.NewSeededMemoryRepository(seed)
			a.dir = campus.Default()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.seedFile, "seed", "", "YAML seed file (default: built-in demo data)")

	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newTownsCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
