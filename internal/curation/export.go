package curation

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/noah-andersen/image-manager/internal/dataset"
	"github.com/noah-andersen/image-manager/internal/model"
)

// ExportResult reports what happened to every item. The log has exactly
// one human-readable entry per item, in item order; it is the only audit
// trail of an export.
type ExportResult struct {
	Log      []string
	Exported int
	Skipped  int
}

// ProgressFunc is called after each item is processed.
type ProgressFunc func(done, total int)

// Export materializes the eligible subset of the dataset into outputDir:
// one subdirectory per grading company, each image pair copied to
// {grade}_{id}_{front|back}{ext}, plus a full metadata snapshot of the
// in-memory collection. Per-item failures are recorded in the log and do
// not abort the batch; only creating outputDir or writing the snapshot is
// fatal.
func (s *Session) Export(outputDir string) (ExportResult, error) {
	return s.ExportWithProgress(outputDir, nil)
}

// ExportWithProgress is Export with a per-item progress callback.
func (s *Session) ExportWithProgress(outputDir string, progress ProgressFunc) (ExportResult, error) {
	var result ExportResult

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("Starting export", "items", len(s.items), "output", outputDir)

	for idx := range s.items {
		item := &s.items[idx]

		switch {
		case s.IsDeleted(idx):
			result.Skipped++
			result.Log = append(result.Log,
				fmt.Sprintf("Skipped: %s - Marked for deletion", listingLabel(item)))
		case !item.Grade.Truthy() || item.GradingCompany == "":
			result.Skipped++
			result.Log = append(result.Log,
				fmt.Sprintf("Skipped: %s - Missing grade or grading company", listingLabel(item)))
		case len(item.Images) != 2:
			result.Skipped++
			result.Log = append(result.Log,
				fmt.Sprintf("Skipped: %s - Need exactly 2 images (front/back)", listingLabel(item)))
		default:
			id, err := s.exportItem(item, outputDir)
			if err != nil {
				result.Skipped++
				result.Log = append(result.Log,
					fmt.Sprintf("Error exporting %s: %v", listingLabel(item), err))
			} else {
				result.Exported++
				result.Log = append(result.Log,
					fmt.Sprintf("Exported: %s as %s", listingLabel(item), id))
			}
		}

		if progress != nil {
			progress(idx+1, len(s.items))
		}
	}

	if err := dataset.WriteSnapshot(filepath.Join(outputDir, dataset.SnapshotName), s.items); err != nil {
		return result, err
	}

	slog.Info("Export complete", "exported", result.Exported, "skipped", result.Skipped)
	return result, nil
}

// exportItem copies an item's front and back images into the company
// directory under a fresh unique ID. If the second copy fails the first is
// left in place; partial output is acceptable, a missing audit entry is
// not.
func (s *Session) exportItem(item *model.DatasetItem, outputDir string) (string, error) {
	companyDir := filepath.Join(outputDir, item.GradingCompany)
	if err := os.MkdirAll(companyDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create company directory: %w", err)
	}

	id := newUniqueID()

	for pos, rel := range item.Images {
		src := s.ImagePath(rel)
		if _, err := os.Stat(src); err != nil {
			return "", fmt.Errorf("image not found: %s", src)
		}

		side := "front"
		if pos == 1 {
			side = "back"
		}
		name := fmt.Sprintf("%s_%s_%s%s", item.Grade, id, side, filepath.Ext(src))

		if err := copyFile(src, filepath.Join(companyDir, name)); err != nil {
			return "", err
		}
	}

	return id, nil
}

// PlanExport reports the outcome each item would have without touching the
// output directory. Used by the export command's dry-run mode.
func (s *Session) PlanExport() []string {
	log := make([]string, 0, len(s.items))
	for idx := range s.items {
		item := &s.items[idx]
		switch {
		case s.IsDeleted(idx):
			log = append(log, fmt.Sprintf("Skipped: %s - Marked for deletion", listingLabel(item)))
		case !item.Grade.Truthy() || item.GradingCompany == "":
			log = append(log, fmt.Sprintf("Skipped: %s - Missing grade or grading company", listingLabel(item)))
		case len(item.Images) != 2:
			log = append(log, fmt.Sprintf("Skipped: %s - Need exactly 2 images (front/back)", listingLabel(item)))
		default:
			missing := ""
			for _, rel := range item.Images {
				if _, err := os.Stat(s.ImagePath(rel)); err != nil {
					missing = s.ImagePath(rel)
					break
				}
			}
			if missing != "" {
				log = append(log, fmt.Sprintf("Error exporting %s: image not found: %s", listingLabel(item), missing))
			} else {
				log = append(log, fmt.Sprintf("Ready: %s (%s, grade %s)", listingLabel(item), item.GradingCompany, item.Grade))
			}
		}
	}
	return log
}

// newUniqueID returns a human-readable 8 character hex token. Collisions
// across export runs are tolerated by the contract, so the first 8 chars
// of a v4 UUID are plenty.
func newUniqueID() string {
	return uuid.New().String()[:8]
}

func listingLabel(item *model.DatasetItem) string {
	if item.ListingID != "" {
		return item.ListingID
	}
	return "unknown"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
