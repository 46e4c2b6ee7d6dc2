package generate

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/AD7six/envgen/internal/commands/shared"
	"github.com/AD7six/envgen/internal/config"
	"github.com/AD7six/envgen/internal/logging"
	"github.com/AD7six/envgen/internal/overrides"
	"github.com/AD7six/envgen/internal/render"
	"github.com/AD7six/envgen/internal/storage"
)

type options struct {
	settingsFile    string
	input           string
	output          string
	mode            render.Mode
	typesFile       string
	typePairs       string
	customAccessors string
	keepComments    bool
	noComments      bool
	check           bool
	stdout          bool
}

// NewGenerateCmd creates the command that turns an env file into Rust source.
func NewGenerateCmd() *cobra.Command {
	return newGenerateCmd(afero.NewOsFs())
}

func newGenerateCmd(fs afero.Fs) *cobra.Command {
	o := &options{mode: render.ModeLazy}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Rust declarations from an env file",
		Long: "Reads an env file, infers a type for every value (i32, then f32, then string) " +
			"and writes Rust constants or a lazy_static! block that reads the variables at runtime.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, o)
		},
	}

	shared.AddSettingsFlag(cmd.Flags(), &o.settingsFile)
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Env file to read (default from ENVGEN_INPUT or .env)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output path template (supports {dir}, {name}, {base} and {ANY_ENV_VAR})")
	cmd.Flags().Var(&o.mode, "mode", "Output shape: lazy or const")
	cmd.Flags().StringVar(&o.typesFile, "types", "", "YAML file of per-key type overrides")
	cmd.Flags().StringVar(&o.typePairs, "type", "", "Comma-separated KEY=type overrides, e.g. PORT=u32,DEBUG=bool")
	cmd.Flags().StringVar(&o.customAccessors, "custom-accessors", "", "File with accessor functions written before the lazy block")
	cmd.Flags().BoolVar(&o.keepComments, "keep-comments-on-blank", false, "Keep comments that are separated from their key by a blank line")
	cmd.Flags().BoolVar(&o.noComments, "no-comments", false, "Don't copy comments into the output")
	cmd.Flags().BoolVar(&o.check, "check", false, "Fail if the output file is missing or out of date instead of writing it")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Write to stdout instead of the output file")
	cmd.MarkFlagsMutuallyExclusive("check", "stdout")

	return cmd
}

func run(cmd *cobra.Command, fs afero.Fs, o *options) error {
	settings, err := config.LoadSettings(o.settingsFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, o, settings)
	if !cmd.Flags().Changed("log-level") {
		if err := logging.InitLogger(cmd.ErrOrStderr(), settings.LogLevel); err != nil {
			return err
		}
	}

	data, err := afero.ReadFile(fs, settings.Input)
	if err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}

	types, err := loadOverrides(fs, settings.TypesFile, o.typePairs)
	if err != nil {
		return err
	}

	opts := render.Options{
		KeepCommentsOnBlankLine: !settings.ClearCommentsOnBlankLine,
		OmitComments:            !settings.WriteComments,
	}
	if types.Len() > 0 {
		opts.KeyValue = types
	}
	if o.customAccessors != "" {
		custom, err := afero.ReadFile(fs, o.customAccessors)
		if err != nil {
			return fmt.Errorf("failed to read custom accessors: %w", err)
		}
		opts.CustomAccessors = string(custom)
	}

	var buf bytes.Buffer
	if err := render.Render(data, &buf, settings.Mode, opts); err != nil {
		return fmt.Errorf("%s: %w", settings.Input, err)
	}
	for _, key := range types.Unused() {
		logging.Logger.Warn("type override for key not in env file", "key", key, "input", settings.Input)
	}

	if o.stdout {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path, err := storage.OutputPath(settings.OutputPattern, settings.Input)
	if err != nil {
		return err
	}
	if o.check {
		if err := storage.Check(fs, path, buf.Bytes()); err != nil {
			return err
		}
		logging.Logger.Info("output is up to date", "output", path)
		return nil
	}
	if err := storage.WriteFile(fs, path, buf.Bytes()); err != nil {
		return err
	}
	logging.Logger.Info("generated", "input", settings.Input, "output", path, "mode", settings.Mode)
	return nil
}

// applyFlags overrides settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, o *options, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		s.Input = o.input
	}
	if flags.Changed("output") {
		s.OutputPattern = o.output
	}
	if flags.Changed("mode") {
		s.Mode = o.mode
	}
	if flags.Changed("types") {
		s.TypesFile = o.typesFile
	}
	if flags.Changed("keep-comments-on-blank") {
		s.ClearCommentsOnBlankLine = !o.keepComments
	}
	if flags.Changed("no-comments") {
		s.WriteComments = !o.noComments
	}
}

func loadOverrides(fs afero.Fs, typesFile, pairs string) (*overrides.Set, error) {
	set := overrides.New()
	if typesFile != "" {
		fromFile, err := overrides.Load(fs, typesFile)
		if err != nil {
			return nil, err
		}
		set.Merge(fromFile)
	}
	if pairs != "" {
		fromFlag, err := overrides.ParsePairs(pairs)
		if err != nil {
			return nil, err
		}
		set.Merge(fromFlag)
	}
	return set, nil
}
