package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ashby/coursebook/internal/pkg/apperrors"
	"github.com/ashby/coursebook/internal/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "coursebook",
		Short:         "Course schedule import tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newImportCmd())
	root.AddCommand(newMigrateCmd())

	if err := root.Execute(); err != nil {
		logger.Error().
			Str("class", apperrors.Classify(err)).
			Err(err).
			Msg("Run failed")
		os.Exit(1)
	}
}
