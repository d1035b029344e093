package model

// CardPair is a front/back file grouping reconstructed from exported
// filenames. It exists only for the lifetime of one directory scan; a
// rescan rebuilds the whole set. The front and back may legitimately carry
// different extensions, so each side records its own.
type CardPair struct {
	UniqueID   string
	GradeLabel string
	FrontName  string
	BackName   string
	FrontExt   string
	BackExt    string
}

// Ext returns the extension used for display, deterministically the
// front's.
func (p CardPair) Ext() string {
	return p.FrontExt
}
