package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AD7six/envgen/internal/commands/config"
	"github.com/AD7six/envgen/internal/commands/generate"
	"github.com/AD7six/envgen/internal/commands/version"
	"github.com/AD7six/envgen/internal/logging"
)

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:           "envgen",
		Short:         "Generate typed Rust declarations from env files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.InitLogger(os.Stderr, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from LOG_LEVEL or info)")

	root.AddCommand(generate.NewGenerateCmd())
	root.AddCommand(config.NewConfigCmd())
	root.AddCommand(version.NewVersionCmd())

	cobra.CheckErr(root.Execute())
}
