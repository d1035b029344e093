package reclassify

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-andersen/image-manager/internal/common"
)

func writePairDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	return dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestLoadDirectoryPairing(t *testing.T) {
	dir := writePairDir(t,
		"10_abc12345_front.jpg",
		"10_abc12345_back.jpg",
		"10.0_def67890_front.png", // no matching back: discarded
		"9_51c00000_front.jpg",    // wrong grade
		"9_51c00000_back.jpg",
		"notes.txt", // not an image
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)

	pairs := s.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, "abc12345", pairs[0].UniqueID)
	assert.Equal(t, "10", pairs[0].GradeLabel)
	assert.Equal(t, "10_abc12345_front.jpg", pairs[0].FrontName)
	assert.Equal(t, "10_abc12345_back.jpg", pairs[0].BackName)
}

func TestLoadDirectorySortsByUniqueID(t *testing.T) {
	dir := writePairDir(t,
		"10_ffff_front.jpg", "10_ffff_back.jpg",
		"10_0a0a_front.jpg", "10_0a0a_back.jpg",
		"10.0_beef_front.jpg", "10.0_beef_back.jpg",
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)

	var ids []string
	for _, p := range s.Pairs() {
		ids = append(ids, p.UniqueID)
	}
	assert.Equal(t, []string{"0a0a", "beef", "ffff"}, ids)
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 0, s.Classified())
}

func TestLoadDirectoryTracksPerSideExtensions(t *testing.T) {
	dir := writePairDir(t,
		"10_aa11_front.jpg",
		"10_aa11_back.png",
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	pair, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "jpg", pair.FrontExt)
	assert.Equal(t, "png", pair.BackExt)
	assert.Equal(t, "jpg", pair.Ext(), "display extension is the front's")
}

func TestLoadDirectoryMissing(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestClassifyRenamesBothSides(t *testing.T) {
	dir := writePairDir(t,
		"10_aa11_front.jpg", "10_aa11_back.png",
		"10_bb22_front.jpg", "10_bb22_back.jpg",
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)

	require.NoError(t, s.Classify(GradeMint))

	assert.Equal(t, []string{
		"10_bb22_back.jpg",
		"10_bb22_front.jpg",
		"10m_aa11_back.png",
		"10m_aa11_front.jpg",
	}, listDir(t, dir), "each side keeps its own extension")

	// In-memory pair mirrors the rename; counter and cursor advanced.
	first := s.Pairs()[0]
	assert.Equal(t, GradeMint, first.GradeLabel)
	assert.Equal(t, "10m_aa11_front.jpg", first.FrontName)
	assert.Equal(t, "10m_aa11_back.png", first.BackName)
	assert.Equal(t, "aa11", first.UniqueID, "identity is unchanged by classification")
	assert.Equal(t, 1, s.Classified())
	assert.Equal(t, 1, s.Cursor())
}

func TestClassifyPoorLabel(t *testing.T) {
	dir := writePairDir(t, "10_cc33_front.jpg", "10_cc33_back.jpg")

	s, err := LoadDirectory(dir)
	require.NoError(t, err)
	require.NoError(t, s.Classify(GradePoor))

	assert.Equal(t, []string{"10p_cc33_back.jpg", "10p_cc33_front.jpg"}, listDir(t, dir))
	assert.Equal(t, 0, s.Cursor(), "cursor clamps on the last pair")
}

func TestClassifyRejectsUnknownLabel(t *testing.T) {
	dir := writePairDir(t, "10_cc33_front.jpg", "10_cc33_back.jpg")

	s, err := LoadDirectory(dir)
	require.NoError(t, err)

	err = s.Classify("10x")
	require.ErrorIs(t, err, common.ErrInvalidGradeLabel)
	assert.Equal(t, []string{"10_cc33_back.jpg", "10_cc33_front.jpg"}, listDir(t, dir))
	assert.Equal(t, 0, s.Classified())
}

func TestClassifyAtomicityOnBackCollision(t *testing.T) {
	// The back's destination already exists, so the whole rename must be
	// refused and the directory left byte-identical.
	dir := writePairDir(t,
		"10_dd44_front.jpg",
		"10_dd44_back.jpg",
		"10m_dd44_back.jpg",
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)
	before := listDir(t, dir)

	err = s.Classify(GradeMint)
	require.ErrorIs(t, err, common.ErrDestinationExists)

	assert.Equal(t, before, listDir(t, dir))
	assert.Equal(t, 0, s.Classified())
	assert.Equal(t, 0, s.Cursor(), "failed classify must not advance")

	pair, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "10_dd44_front.jpg", pair.FrontName)
	assert.Equal(t, "10", pair.GradeLabel)
}

func TestClassifyAtomicityOnMissingBack(t *testing.T) {
	dir := writePairDir(t, "10_ee55_front.jpg", "10_ee55_back.jpg")

	s, err := LoadDirectory(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "10_ee55_back.jpg")))

	err = s.Classify(GradeMint)
	require.Error(t, err)

	// The front was never renamed.
	assert.Equal(t, []string{"10_ee55_front.jpg"}, listDir(t, dir))
}

func TestSkipAdvancesWithoutTouchingFiles(t *testing.T) {
	dir := writePairDir(t,
		"10_aa11_front.jpg", "10_aa11_back.jpg",
		"10_bb22_front.jpg", "10_bb22_back.jpg",
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)
	before := listDir(t, dir)

	s.Skip()
	assert.Equal(t, 1, s.Cursor())
	assert.Equal(t, 0, s.Classified())
	assert.Equal(t, before, listDir(t, dir))

	s.Skip()
	assert.Equal(t, 1, s.Cursor(), "skip clamps at the last pair")
}

func TestStatsCounters(t *testing.T) {
	dir := writePairDir(t,
		"10_aa11_front.jpg", "10_aa11_back.jpg",
		"10_bb22_front.jpg", "10_bb22_back.jpg",
		"10_cc33_front.jpg", "10_cc33_back.jpg",
	)

	s, err := LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Classified: 0, Remaining: 2}, s.Stats())

	require.NoError(t, s.Classify(GradeMint))
	assert.Equal(t, Stats{Total: 3, Classified: 1, Remaining: 1}, s.Stats())

	s.Jump(2)
	assert.Equal(t, Stats{Total: 3, Classified: 1, Remaining: 0}, s.Stats())
}
