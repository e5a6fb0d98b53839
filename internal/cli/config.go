package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/gacha/internal/config"
	"github.com/idilsaglam/gacha/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd(opt *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(opt))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the defaults",
		Long: `Write a config file holding every default value.

Without a path it writes ./.gacha.yaml, or ~/.config/gacha/config.yaml
with --global.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			switch {
			case len(args) == 1:
				path = args[0]
			case global:
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("home dir: %w", err)
				}
				path = filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile)
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "write the per-user config")
	return cmd
}

func newConfigShowCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(opt.ConfigPath)
			if err != nil {
				return err
			}
			b, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("yaml marshal: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
