// Package curation implements the dataset curation state machine: an
// in-memory item collection with edit operations and a filtered export.
package curation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/noah-andersen/image-manager/internal/common"
	"github.com/noah-andersen/image-manager/internal/model"
)

// Session owns one load-to-export cycle of a dataset. All state is
// explicit here; constructing a new session discards the old one entirely.
type Session struct {
	items    []model.DatasetItem
	modified map[int]struct{}
	deleted  map[int]struct{}
	basePath string
	cursor   int
}

// NewSession creates a session over a freshly loaded item collection.
// Image paths in items resolve relative to basePath.
func NewSession(items []model.DatasetItem, basePath string) *Session {
	return &Session{
		items:    items,
		basePath: basePath,
		modified: make(map[int]struct{}),
		deleted:  make(map[int]struct{}),
	}
}

// Len returns the number of items, deleted ones included.
func (s *Session) Len() int {
	return len(s.items)
}

// Items exposes the collection for snapshot serialization.
func (s *Session) Items() []model.DatasetItem {
	return s.items
}

// Item returns a pointer to the item at index i.
func (s *Session) Item(i int) (*model.DatasetItem, error) {
	if i < 0 || i >= len(s.items) {
		return nil, fmt.Errorf("item %d: %w", i, common.ErrIndexOutOfRange)
	}
	return &s.items[i], nil
}

// Cursor returns the index of the item under review.
func (s *Session) Cursor() int {
	return s.cursor
}

// Current returns the item under review.
func (s *Session) Current() (*model.DatasetItem, error) {
	if len(s.items) == 0 {
		return nil, common.ErrEmptyDataset
	}
	return &s.items[s.cursor], nil
}

// Next advances the cursor, clamped at the last item.
func (s *Session) Next() {
	if s.cursor < len(s.items)-1 {
		s.cursor++
	}
}

// Prev moves the cursor back, clamped at the first item.
func (s *Session) Prev() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Jump moves the cursor to i, clamped to the valid range.
func (s *Session) Jump(i int) {
	if len(s.items) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.items)-1 {
		i = len(s.items) - 1
	}
	s.cursor = i
}

// ImagePath resolves an item's relative image path against the base
// directory.
func (s *Session) ImagePath(rel string) string {
	return filepath.Join(s.basePath, rel)
}

// IsModified reports whether item i has been touched by an edit since
// load.
func (s *Session) IsModified(i int) bool {
	_, ok := s.modified[i]
	return ok
}

// IsDeleted reports whether item i is marked for exclusion from export.
func (s *Session) IsDeleted(i int) bool {
	_, ok := s.deleted[i]
	return ok
}

// DeleteImage removes the image at imageIndex from item i's list and
// deletes the underlying file when it exists. A missing file is tolerated;
// an out-of-range image index is reported, not silently ignored.
func (s *Session) DeleteImage(i, imageIndex int) error {
	item, err := s.Item(i)
	if err != nil {
		return err
	}
	if imageIndex < 0 || imageIndex >= len(item.Images) {
		return fmt.Errorf("image %d of item %d: %w", imageIndex, i, common.ErrIndexOutOfRange)
	}

	path := s.ImagePath(item.Images[imageIndex])
	if _, statErr := os.Stat(path); statErr == nil {
		if rmErr := os.Remove(path); rmErr != nil {
			slog.Warn("Failed to delete image file", "path", path, "error", rmErr)
		}
	}

	item.Images = append(item.Images[:imageIndex], item.Images[imageIndex+1:]...)
	s.modified[i] = struct{}{}

	slog.Debug("Deleted image", "item", i, "image", imageIndex, "remaining", len(item.Images))
	return nil
}

// SwapImages exchanges the images at positions a and b of item i. An
// out-of-range position is a no-op: the review keys expose fixed 0-1 and
// 1-2 swaps that may be pressed on shorter image lists.
func (s *Session) SwapImages(i, a, b int) error {
	item, err := s.Item(i)
	if err != nil {
		return err
	}
	if a < 0 || b < 0 || a >= len(item.Images) || b >= len(item.Images) {
		return nil
	}

	item.Images[a], item.Images[b] = item.Images[b], item.Images[a]
	s.modified[i] = struct{}{}
	return nil
}

// UpdateMetadata sets item i's grade and grading company and advances the
// cursor; it doubles as "confirm and move to next". Grade input is parsed
// numerically when possible, kept as text otherwise, absent when blank.
func (s *Session) UpdateMetadata(i int, gradeText, company string) error {
	item, err := s.Item(i)
	if err != nil {
		return err
	}

	item.SetMetadata(model.ParseGrade(gradeText), company)
	s.modified[i] = struct{}{}
	s.Next()
	return nil
}

// MarkDeleted excludes item i from export and advances the cursor. A
// deleted item is no longer "in progress", so it also leaves the modified
// set.
func (s *Session) MarkDeleted(i int) error {
	if _, err := s.Item(i); err != nil {
		return err
	}
	s.deleted[i] = struct{}{}
	delete(s.modified, i)
	s.Next()
	return nil
}

// UnmarkDeleted restores item i for export. The cursor stays put.
func (s *Session) UnmarkDeleted(i int) error {
	if _, err := s.Item(i); err != nil {
		return err
	}
	delete(s.deleted, i)
	return nil
}

// Stats summarizes the session for the review sidebar.
type Stats struct {
	Total    int
	Modified int
	Deleted  int
	Ready    int
}

// Stats counts the items ready to export: not marked deleted, grade and
// company present, exactly two images. Source file existence is checked at
// export time, not here.
func (s *Session) Stats() Stats {
	st := Stats{
		Total:    len(s.items),
		Modified: len(s.modified),
		Deleted:  len(s.deleted),
	}
	for i := range s.items {
		if s.eligible(i) {
			st.Ready++
		}
	}
	return st
}

func (s *Session) eligible(i int) bool {
	if s.IsDeleted(i) {
		return false
	}
	item := &s.items[i]
	return item.Grade.Truthy() && item.GradingCompany != "" && len(item.Images) == 2
}
