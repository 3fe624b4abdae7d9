package main

import (
	"fmt"

	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/config"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("yaml", false, "Print the catalog as YAML, ready to be used as a catalog file")
	catalogCmd.Flags().String("file", "", "Catalog file to read instead of the configured one")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the clips in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := lo.Must(cmd.Flags().GetString("file"))
		if path == "" {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			path = cfg.Catalog.Path
		}

		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}

		if lo.Must(cmd.Flags().GetBool("yaml")) {
			data, err := cat.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		printCatalog(cmd, cat)
		return nil
	},
}

const titleColumn = 40

func printCatalog(cmd *cobra.Command, cat *catalog.Catalog) {
	cmd.Printf("%-3s %s %-4s %s\n", "#", runewidth.FillRight("TITLE", titleColumn), "TYPE", "SUBTITLES")
	for i, clip := range cat.Clips() {
		title := runewidth.FillRight(runewidth.Truncate(clip.Title, titleColumn, "..."), titleColumn)
		cmd.Printf("%-3d %s %-4s %d\n", i, title, clip.Type.String(), len(clip.Subtitles))
	}
}
