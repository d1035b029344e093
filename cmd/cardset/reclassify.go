package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/noah-andersen/image-manager/internal/cli"
	"github.com/noah-andersen/image-manager/internal/config"
	"github.com/noah-andersen/image-manager/internal/reclassify"
	"github.com/noah-andersen/image-manager/internal/tui"
)

func reclassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reclassify <image-dir>",
		Short: "Reclassify exported grade-10 card pairs into 10m/10p",
		Long: `Scan a directory of exported card images, pair fronts and backs by
unique ID, and review every grade-10 pair: classify it as 10m (mint) or
10p (poor), renaming both files in place.

Examples:
  # Review grade-10 pairs interactively
  cardset reclassify ~/cards/out/PSA

  # Just list the pairs that would be reviewed
  cardset reclassify ~/cards/out/PSA --list`,
		Args: cobra.ExactArgs(1),
		RunE: runReclassify,
	}

	cmd.Flags().BoolP("list", "l", false, "list grade-10 pairs and exit")

	return cmd
}

func runReclassify(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	dir := config.ExpandPath(args[0])

	session, err := reclassify.LoadDirectory(dir)
	if err != nil {
		return err
	}

	if list {
		if session.Len() == 0 {
			fmt.Println(cli.WarningStyle.Render("No card pairs with grade 10/10.0 found."))
			return nil
		}
		for _, pair := range session.Pairs() {
			fmt.Println("  " + reclassify.Describe(pair))
		}
		return nil
	}

	if err := tui.RunReclassify(session); err != nil {
		return err
	}

	stats := session.Stats()
	slog.Info("Reclassification session finished",
		"pairs", stats.Total, "classified", stats.Classified)
	fmt.Println(cli.TitleStyle.Render("Session summary"))
	fmt.Printf("  pairs: %d  classified: %d\n", stats.Total, stats.Classified)

	return nil
}
