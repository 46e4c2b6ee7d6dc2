package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AD7six/envgen/internal/commands/shared"
	internalconfig "github.com/AD7six/envgen/internal/config"
)

// NewConfigCmd returns a cobra command that displays current configuration.
func NewConfigCmd() *cobra.Command {
	var settingsFile string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Shows the current configuration values as ENV_VAR: value pairs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := internalconfig.LoadSettings(settingsFile)
			if err != nil {
				return err
			}

			return displaySettings(cmd.OutOrStdout(), settings)
		},
	}

	shared.AddSettingsFlag(cmd.Flags(), &settingsFile)

	return cmd
}

// displaySettings prints each setting as "ENV_VAR: value" using the variable names LoadSettings reads
func displaySettings(w io.Writer, s *internalconfig.Settings) error {
	types := s.TypesFile
	if types == "" {
		types = "(none)"
	}
	_, err := fmt.Fprintf(w,
		"ENVGEN_INPUT: %s\nENVGEN_OUTPUT: %s\nENVGEN_MODE: %s\nENVGEN_TYPES_FILE: %s\n"+
			"ENVGEN_CLEAR_COMMENTS_ON_BLANK: %t\nENVGEN_WRITE_COMMENTS: %t\nLOG_LEVEL: %s\n",
		s.Input, s.OutputPattern, s.Mode, types,
		s.ClearCommentsOnBlankLine, s.WriteComments, s.LogLevel)
	return err
}
