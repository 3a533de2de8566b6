package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gcgviz/internal/config"
)

func configCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "配置文件管理",
		// 不需要打开存储
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Out = cmd.OutOrStdout()
			return nil
		},
	}
	cmd.AddCommand(configInitCmd(app))
	return cmd
}

func configInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "写出默认配置文件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if app.DataDir != "" {
				cfg.Data.DataDir = app.DataDir
			}
			if app.LogLevel != "" {
				cfg.Log.Level = app.LogLevel
			}
			if err := config.SaveConfig(cfg, path); err != nil {
				return fmt.Errorf("failed to write config %s: %w", path, err)
			}
			fmt.Fprintf(app.Out, "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "覆盖已存在的配置文件")
	return cmd
}
