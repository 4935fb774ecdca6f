package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and user themes from the themes directory.

The configured theme is marked with '*'. User themes are TOML or YAML files
in ~/.config/alertkit/themes/ and override bundled themes of the same name.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	loader := theme.NewLoader(config.ThemesDir(), logger)
	current := getConfig().Theme.Name

	out := cmd.OutOrStdout()
	for _, name := range loader.ListThemes() {
		marker := " "
		if name == current {
			marker = "*"
		}
		source := "user"
		if theme.IsEmbeddedTheme(name) {
			source = "bundled"
		}
		if _, err := fmt.Fprintf(out, "%s %-16s %s\n", marker, name, source); err != nil {
			return err
		}
	}
	return nil
}
