package reclassify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/noah-andersen/image-manager/internal/common"
	"github.com/noah-andersen/image-manager/internal/model"
)

// Session holds one reclassification pass over a directory of exported
// images: the paired working set, a review cursor, and a classified
// counter. Everything is rebuilt from disk by LoadDirectory; nothing
// survives a reload.
type Session struct {
	dir        string
	pairs      []model.CardPair
	cursor     int
	classified int
}

// LoadDirectory scans dir (non-recursively) for exported card images,
// pairs fronts and backs by unique ID, and keeps only complete pairs whose
// grade is exactly 10. The working set is sorted by unique ID so review
// order is deterministic.
func LoadDirectory(dir string) (*Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	groups := make(map[string]*model.CardPair)
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}

		parsed, ok := parseFilename(entry.Name())
		if !ok || !isGradeTen(parsed.grade) {
			continue
		}

		pair, ok := groups[parsed.uniqueID]
		if !ok {
			pair = &model.CardPair{
				UniqueID:   parsed.uniqueID,
				GradeLabel: parsed.grade,
			}
			groups[parsed.uniqueID] = pair
		}

		if parsed.side == "front" {
			pair.FrontName = entry.Name()
			pair.FrontExt = parsed.ext
		} else {
			pair.BackName = entry.Name()
			pair.BackExt = parsed.ext
		}
	}

	pairs := make([]model.CardPair, 0, len(groups))
	dangling := 0
	for _, pair := range groups {
		if pair.FrontName != "" && pair.BackName != "" {
			pairs = append(pairs, *pair)
		} else {
			dangling++
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].UniqueID < pairs[j].UniqueID })

	slog.Info("Loaded image directory", "dir", dir, "pairs", len(pairs))
	if dangling > 0 {
		slog.Debug("Discarded unpaired sides", "count", dangling)
	}

	return &Session{dir: dir, pairs: pairs}, nil
}

// Len returns the number of pairs in the working set.
func (s *Session) Len() int {
	return len(s.pairs)
}

// Pairs exposes the working set in review order.
func (s *Session) Pairs() []model.CardPair {
	return s.pairs
}

// Cursor returns the index of the pair under review.
func (s *Session) Cursor() int {
	return s.cursor
}

// Current returns the pair under review.
func (s *Session) Current() (*model.CardPair, error) {
	if len(s.pairs) == 0 {
		return nil, common.ErrEmptyDataset
	}
	return &s.pairs[s.cursor], nil
}

// Classified returns how many pairs this session has renamed.
func (s *Session) Classified() int {
	return s.classified
}

// Next advances the cursor, clamped at the last pair.
func (s *Session) Next() {
	if s.cursor < len(s.pairs)-1 {
		s.cursor++
	}
}

// Prev moves the cursor back, clamped at the first pair.
func (s *Session) Prev() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Jump moves the cursor to i, clamped to the valid range.
func (s *Session) Jump(i int) {
	if len(s.pairs) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.pairs)-1 {
		i = len(s.pairs) - 1
	}
	s.cursor = i
}

// Skip advances to the next pair without touching any file or counter.
func (s *Session) Skip() {
	s.Next()
}

// PairPath resolves a pair filename inside the session directory.
func (s *Session) PairPath(name string) string {
	return filepath.Join(s.dir, name)
}

// Classify renames the current pair's files to the given refined grade
// label, 10m or 10p. The two renames are one all-or-nothing step: both
// sides are pre-checked, and if the back rename fails after the front
// succeeded the front is restored, so a failed call leaves the directory
// exactly as it was. On success the in-memory pair is updated, the
// classified counter incremented, and the cursor advanced.
func (s *Session) Classify(label string) error {
	if label != GradeMint && label != GradePoor {
		return fmt.Errorf("%w: %q", common.ErrInvalidGradeLabel, label)
	}

	pair, err := s.Current()
	if err != nil {
		return err
	}
	if pair.FrontName == "" || pair.BackName == "" {
		return common.ErrPairIncomplete
	}

	newFrontName := buildFilename(label, pair.UniqueID, "front", pair.FrontExt)
	newBackName := buildFilename(label, pair.UniqueID, "back", pair.BackExt)

	oldFront := s.PairPath(pair.FrontName)
	oldBack := s.PairPath(pair.BackName)
	newFront := s.PairPath(newFrontName)
	newBack := s.PairPath(newBackName)

	// Pre-checks shrink the window where one side can rename and the
	// other cannot. os.Rename silently overwrites, so colliding
	// destinations must be caught here.
	if _, err := os.Stat(oldFront); err != nil {
		return fmt.Errorf("front image missing: %w", err)
	}
	if _, err := os.Stat(oldBack); err != nil {
		return fmt.Errorf("back image missing: %w", err)
	}
	if newFront != oldFront {
		if _, err := os.Stat(newFront); err == nil {
			return fmt.Errorf("%w: %s", common.ErrDestinationExists, newFrontName)
		}
	}
	if newBack != oldBack {
		if _, err := os.Stat(newBack); err == nil {
			return fmt.Errorf("%w: %s", common.ErrDestinationExists, newBackName)
		}
	}

	if err := os.Rename(oldFront, newFront); err != nil {
		return fmt.Errorf("failed to rename front image: %w", err)
	}
	if err := os.Rename(oldBack, newBack); err != nil {
		if restoreErr := os.Rename(newFront, oldFront); restoreErr != nil {
			slog.Error("Failed to restore front image after aborted rename",
				"file", newFront, "error", restoreErr)
		}
		return fmt.Errorf("failed to rename back image: %w", err)
	}

	pair.GradeLabel = label
	pair.FrontName = newFrontName
	pair.BackName = newBackName
	s.classified++
	s.Next()

	slog.Debug("Classified pair", "unique_id", pair.UniqueID, "label", label)
	return nil
}

// Stats summarizes the session for the review sidebar. Remaining counts
// the pairs after the cursor, matching the review screen's notion of work
// left.
type Stats struct {
	Total      int
	Classified int
	Remaining  int
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	remaining := len(s.pairs) - s.cursor - 1
	if remaining < 0 {
		remaining = 0
	}
	return Stats{
		Total:      len(s.pairs),
		Classified: s.classified,
		Remaining:  remaining,
	}
}

// Describe formats a pair for the --list table.
func Describe(p model.CardPair) string {
	return fmt.Sprintf("%-10s grade %-5s %s", p.UniqueID, p.GradeLabel,
		strings.Join([]string{p.FrontName, p.BackName}, "  "))
}
