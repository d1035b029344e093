package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/noah-andersen/image-manager/internal/cli"
	"github.com/noah-andersen/image-manager/internal/common"
	"github.com/noah-andersen/image-manager/internal/config"
	"github.com/noah-andersen/image-manager/internal/curation"
	"github.com/noah-andersen/image-manager/internal/dataset"
	"github.com/noah-andersen/image-manager/internal/tui"
)

func curateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curate <dataset.json>",
		Short: "Review and edit a card dataset interactively",
		Long: `Load a dataset document and review it item by item: fix grade and
grading company, reorder or delete images, mark listings for deletion,
and export the clean subset without leaving the session.

Examples:
  # Review a dataset
  cardset curate ~/cards/data.json --images ~/cards/images

  # Review with an export target wired to the E key
  cardset curate ~/cards/data.json -i ~/cards/images -o ~/cards/out`,
		Args: cobra.ExactArgs(1),
		RunE: runCurate,
	}

	cmd.Flags().StringP("images", "i", "", "base directory for the dataset's relative image paths")
	cmd.Flags().StringP("output", "o", "", "export output directory (enables the in-session export key)")
	_ = cmd.MarkFlagRequired("images")

	return cmd
}

func runCurate(cmd *cobra.Command, args []string) error {
	imagesDir, _ := cmd.Flags().GetString("images")
	outputDir, _ := cmd.Flags().GetString("output")

	docPath := config.ExpandPath(args[0])
	imagesDir = config.ExpandPath(imagesDir)
	outputDir = config.ExpandPath(outputDir)

	items, err := dataset.Load(docPath)
	if err != nil {
		return common.NewUserError("failed to load dataset document", err)
	}

	session := curation.NewSession(items, imagesDir)
	slog.Info("Loaded dataset", "items", session.Len(), "images", imagesDir)

	if err := tui.RunCurate(session, outputDir); err != nil {
		return err
	}

	stats := session.Stats()
	fmt.Println(cli.TitleStyle.Render("Session summary"))
	fmt.Printf("  items: %d  modified: %d  deleted: %d  ready to export: %d\n",
		stats.Total, stats.Modified, stats.Deleted, stats.Ready)

	return nil
}
