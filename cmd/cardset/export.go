package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/noah-andersen/image-manager/internal/cli"
	"github.com/noah-andersen/image-manager/internal/common"
	"github.com/noah-andersen/image-manager/internal/config"
	"github.com/noah-andersen/image-manager/internal/curation"
	"github.com/noah-andersen/image-manager/internal/dataset"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dataset.json>",
		Short: "Export a dataset's clean subset without interactive review",
		Long: `Load a dataset document and export every eligible item (grade and
grading company set, exactly two images) into one directory per grading
company, plus a full metadata snapshot.

Examples:
  # Export straight from a curated document
  cardset export ~/cards/data.json -i ~/cards/images -o ~/cards/out

  # See what would be exported without copying anything
  cardset export ~/cards/data.json -i ~/cards/images -o ~/cards/out --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("images", "i", "", "base directory for the dataset's relative image paths")
	cmd.Flags().StringP("output", "o", "", "export output directory")
	cmd.Flags().BoolP("dry-run", "d", false, "report outcomes without copying files")
	_ = cmd.MarkFlagRequired("images")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	imagesDir, _ := cmd.Flags().GetString("images")
	outputDir, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	docPath := config.ExpandPath(args[0])
	imagesDir = config.ExpandPath(imagesDir)
	outputDir = config.ExpandPath(outputDir)

	items, err := dataset.Load(docPath)
	if err != nil {
		return common.NewUserError("failed to load dataset document", err)
	}

	session := curation.NewSession(items, imagesDir)
	slog.Info("Loaded dataset", "items", session.Len(), "dry_run", dryRun)

	if dryRun {
		for _, entry := range session.PlanExport() {
			fmt.Println("  " + entry)
		}
		fmt.Println(cli.SubtleStyle.Render("Dry run complete - no files copied"))
		return nil
	}

	bar := progressbar.Default(int64(session.Len()), "exporting")
	result, err := session.ExportWithProgress(outputDir, func(done, _ int) {
		_ = bar.Set(done)
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("\n%s  Exported: %d  Skipped: %d\n",
		cli.TitleStyle.Render("Export complete"), result.Exported, result.Skipped)
	for _, entry := range result.Log {
		fmt.Println("  " + entry)
	}

	return nil
}
