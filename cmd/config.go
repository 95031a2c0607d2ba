package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/msalah0e/helix/internal/config"
	"github.com/msalah0e/helix/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the helix configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("  Config: %s\n", config.Path())
			fmt.Printf("  Project file: %s %s\n", config.ProjectFile, ui.Subtle.Sprint("(searched upward from the working directory)"))
			fmt.Println()
			ui.Info.Println("  helix config init")
			ui.Info.Println("  helix config show")
		},
	}

	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Run: func(cmd *cobra.Command, args []string) {
			path := config.Path()
			if force {
				if err := config.Save(config.Default()); err != nil {
					ui.Bad.Printf("  config: %v\n", err)
					os.Exit(1)
				}
			} else {
				if _, err := os.Stat(path); err == nil {
					fmt.Printf("  %s %s already exists %s\n", ui.WarnIcon(), path, ui.Subtle.Sprint("(use --force to overwrite)"))
					return
				}
				if err := config.EnsureExists(); err != nil {
					ui.Bad.Printf("  config: %v\n", err)
					os.Exit(1)
				}
			}
			fmt.Printf("  %s wrote %s\n", ui.StatusIcon(true), path)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig()
			if err != nil {
				ui.Bad.Printf("  config: %v\n", err)
				os.Exit(1)
			}
			if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
				ui.Bad.Printf("  config: %v\n", err)
				os.Exit(1)
			}
		},
	}
}
