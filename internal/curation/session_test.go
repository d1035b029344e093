package curation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/noah-andersen/image-manager/internal/common"
	"github.com/noah-andersen/image-manager/internal/model"
)

// newTestSession builds a session over a temp image directory, creating a
// real file for every image path the items reference.
func newTestSession(t *testing.T, items []model.DatasetItem) *Session {
	t.Helper()
	base := t.TempDir()
	for _, item := range items {
		for _, rel := range item.Images {
			writeTestImage(t, filepath.Join(base, rel))
		}
	}
	return NewSession(items, base)
}

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
}

func threeImageItem(id string) model.DatasetItem {
	return model.DatasetItem{
		ListingID: id,
		Images:    []string{id + "_1.jpg", id + "_2.jpg", id + "_3.jpg"},
	}
}

func TestDeleteImage(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a")})

	removed := s.ImagePath("a_3.jpg")
	if err := s.DeleteImage(0, 2); err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}

	item, _ := s.Item(0)
	if len(item.Images) != 2 {
		t.Errorf("images = %v, want 2 entries", item.Images)
	}
	if _, err := os.Stat(removed); !os.IsNotExist(err) {
		t.Errorf("underlying file should be deleted")
	}
	if !s.IsModified(0) {
		t.Errorf("item should be marked modified")
	}
}

func TestDeleteImagePreservesOrder(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a")})

	if err := s.DeleteImage(0, 1); err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}

	item, _ := s.Item(0)
	if item.Images[0] != "a_1.jpg" || item.Images[1] != "a_3.jpg" {
		t.Errorf("images = %v, want [a_1.jpg a_3.jpg]", item.Images)
	}
}

func TestDeleteImageToleratesMissingFile(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a")})
	if err := os.Remove(s.ImagePath("a_1.jpg")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := s.DeleteImage(0, 0); err != nil {
		t.Fatalf("DeleteImage() error = %v, missing file should be tolerated", err)
	}
	item, _ := s.Item(0)
	if len(item.Images) != 2 {
		t.Errorf("images = %v, want 2 entries", item.Images)
	}
}

func TestDeleteImageReportsBadIndices(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a")})

	tests := []struct {
		name       string
		item       int
		imageIndex int
	}{
		{name: "image index past end", item: 0, imageIndex: 3},
		{name: "negative image index", item: 0, imageIndex: -1},
		{name: "item past end", item: 1, imageIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.DeleteImage(tt.item, tt.imageIndex)
			if !errors.Is(err, common.ErrIndexOutOfRange) {
				t.Errorf("DeleteImage() error = %v, want ErrIndexOutOfRange", err)
			}
		})
	}

	if s.IsModified(0) {
		t.Errorf("failed delete must not mark the item modified")
	}
}

func TestSwapImagesIdempotence(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a")})
	item, _ := s.Item(0)
	original := append([]string(nil), item.Images...)

	if err := s.SwapImages(0, 0, 1); err != nil {
		t.Fatalf("SwapImages() error = %v", err)
	}
	if item.Images[0] != original[1] || item.Images[1] != original[0] {
		t.Fatalf("images = %v, want first two swapped", item.Images)
	}

	if err := s.SwapImages(0, 0, 1); err != nil {
		t.Fatalf("SwapImages() error = %v", err)
	}
	for i := range original {
		if item.Images[i] != original[i] {
			t.Errorf("double swap should restore order, got %v", item.Images)
			break
		}
	}
}

func TestSwapImagesOutOfRangeIsNoOp(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{{ListingID: "a", Images: []string{"a_1.jpg"}}})

	if err := s.SwapImages(0, 1, 2); err != nil {
		t.Fatalf("SwapImages() error = %v, want no-op", err)
	}
	if s.IsModified(0) {
		t.Errorf("no-op swap must not mark the item modified")
	}
}

func TestUpdateMetadata(t *testing.T) {
	tests := []struct {
		name        string
		gradeText   string
		company     string
		wantKind    model.GradeKind
		wantGrade   string
		wantCompany string
	}{
		{
			name:        "numeric grade",
			gradeText:   "10",
			company:     "PSA",
			wantKind:    model.GradeNumber,
			wantGrade:   "10",
			wantCompany: "PSA",
		},
		{
			name:        "text grade",
			gradeText:   "Authentic",
			company:     "SGC",
			wantKind:    model.GradeText,
			wantGrade:   "Authentic",
			wantCompany: "SGC",
		},
		{
			name:     "blank clears both",
			wantKind: model.GradeAbsent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, []model.DatasetItem{threeImageItem("a"), threeImageItem("b")})

			if err := s.UpdateMetadata(0, tt.gradeText, tt.company); err != nil {
				t.Fatalf("UpdateMetadata() error = %v", err)
			}

			item, _ := s.Item(0)
			if item.Grade.Kind() != tt.wantKind || item.Grade.String() != tt.wantGrade {
				t.Errorf("grade = %v %q, want %v %q", item.Grade.Kind(), item.Grade.String(), tt.wantKind, tt.wantGrade)
			}
			if item.GradingCompany != tt.wantCompany {
				t.Errorf("company = %q, want %q", item.GradingCompany, tt.wantCompany)
			}
			if !s.IsModified(0) {
				t.Errorf("item should be marked modified")
			}
			if s.Cursor() != 1 {
				t.Errorf("cursor = %d, want 1: confirm advances", s.Cursor())
			}
		})
	}
}

func TestUpdateMetadataCursorClampsAtEnd(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a")})

	if err := s.UpdateMetadata(0, "10", "PSA"); err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 on a one-item dataset", s.Cursor())
	}
}

func TestMarkUnmarkDeletedRoundTrip(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a"), threeImageItem("b")})

	if err := s.UpdateMetadata(0, "9", "CGC"); err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}
	item, _ := s.Item(0)
	imagesBefore := append([]string(nil), item.Images...)

	if err := s.MarkDeleted(0); err != nil {
		t.Fatalf("MarkDeleted() error = %v", err)
	}
	if !s.IsDeleted(0) {
		t.Fatalf("item should be deleted")
	}
	if s.IsModified(0) {
		t.Errorf("deletion must clear the modified flag")
	}

	cursorAfterMark := s.Cursor()
	if err := s.UnmarkDeleted(0); err != nil {
		t.Fatalf("UnmarkDeleted() error = %v", err)
	}
	if s.IsDeleted(0) {
		t.Errorf("item should no longer be deleted")
	}
	if s.Cursor() != cursorAfterMark {
		t.Errorf("UnmarkDeleted must not move the cursor")
	}

	// Restore leaves images and metadata alone.
	item, _ = s.Item(0)
	for i := range imagesBefore {
		if item.Images[i] != imagesBefore[i] {
			t.Errorf("images changed across mark/unmark: %v", item.Images)
			break
		}
	}
	if item.GradingCompany != "CGC" {
		t.Errorf("company changed across mark/unmark: %q", item.GradingCompany)
	}
}

func TestMarkDeletedAdvancesCursor(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a"), threeImageItem("b")})

	if err := s.MarkDeleted(0); err != nil {
		t.Fatalf("MarkDeleted() error = %v", err)
	}
	if s.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", s.Cursor())
	}
}

func TestCursorNavigationClamps(t *testing.T) {
	s := newTestSession(t, []model.DatasetItem{threeImageItem("a"), threeImageItem("b")})

	s.Prev()
	if s.Cursor() != 0 {
		t.Errorf("Prev at start moved cursor to %d", s.Cursor())
	}
	s.Next()
	s.Next()
	if s.Cursor() != 1 {
		t.Errorf("Next past end moved cursor to %d", s.Cursor())
	}
	s.Jump(99)
	if s.Cursor() != 1 {
		t.Errorf("Jump past end moved cursor to %d", s.Cursor())
	}
	s.Jump(-5)
	if s.Cursor() != 0 {
		t.Errorf("Jump before start moved cursor to %d", s.Cursor())
	}
}

func TestStats(t *testing.T) {
	items := []model.DatasetItem{
		{ListingID: "ready", Grade: model.NumberGrade(10), GradingCompany: "PSA", Images: []string{"r1.jpg", "r2.jpg"}},
		{ListingID: "no-grade", GradingCompany: "PSA", Images: []string{"n1.jpg", "n2.jpg"}},
		{ListingID: "one-image", Grade: model.NumberGrade(9), GradingCompany: "BGS", Images: []string{"o1.jpg"}},
		{ListingID: "doomed", Grade: model.NumberGrade(8), GradingCompany: "SGC", Images: []string{"d1.jpg", "d2.jpg"}},
	}
	s := newTestSession(t, items)

	if err := s.MarkDeleted(3); err != nil {
		t.Fatalf("MarkDeleted() error = %v", err)
	}
	if err := s.UpdateMetadata(1, "", ""); err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}

	got := s.Stats()
	want := Stats{Total: 4, Modified: 1, Deleted: 1, Ready: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
