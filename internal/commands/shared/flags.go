package shared

import (
	"github.com/spf13/pflag"

	"github.com/AD7six/envgen/internal/config"
)

// AddSettingsFlag registers the --settings flag shared by commands that load settings.
func AddSettingsFlag(fs *pflag.FlagSet, p *string) {
	fs.StringVar(p, "settings", config.DefaultSettingsFile, "Settings file read for ENVGEN_* values not set in the environment")
}
