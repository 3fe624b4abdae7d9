package main

import (
	"fmt"

	"github.com/PizzaHomicide/nplay/internal/navigation"
	"github.com/PizzaHomicide/nplay/internal/ui/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Int("clip", 0, "Index of the clip in the catalog")
	playCmd.Flags().Int("subs", 0, "Subtitle track to start with, 1-based.  0 plays without subtitles")
	playCmd.Flags().String("handoff", "", `Hand-off query string as the menu produces it, for example "clip=2&subs=1"`)
	playCmd.Flags().Bool("menu", false, "Go back to the clip menu when playback ends instead of exiting")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a clip straight away",
	Long: "Open the player on a clip without going through the menu.  --clip and --subs take precedence over the " +
		"same values in --handoff.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handOff, err := handOffFromFlags(cmd)
		if err != nil {
			return err
		}
		return runTUI(tui.Options{
			Start:             &handOff,
			ExitAfterPlayback: !lo.Must(cmd.Flags().GetBool("menu")),
		})
	},
}

func handOffFromFlags(cmd *cobra.Command) (navigation.HandOff, error) {
	handOff := navigation.Parse(lo.Must(cmd.Flags().GetString("handoff")))

	if cmd.Flags().Changed("clip") {
		handOff.Clip = lo.Must(cmd.Flags().GetInt("clip"))
	}
	if cmd.Flags().Changed("subs") {
		subs := lo.Must(cmd.Flags().GetInt("subs"))
		if subs < 0 {
			return handOff, fmt.Errorf("--subs must not be negative, got %d", subs)
		}
		handOff.Subtitle = subs
	}
	return handOff, nil
}
