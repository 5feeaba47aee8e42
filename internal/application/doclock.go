package application

import "sync"

const lockStripes = 64

// docLocks serializes index-addressed mutations per document. The
// backing store has no positional atomic update for the JSON columns,
// so the read-validate-mutate-write sequence for comments and file
// items must not interleave for the same document.
type docLocks struct {
	stripes [lockStripes]sync.Mutex
}

func newDocLocks() *docLocks {
	return &docLocks{}
}

// Lock acquires the stripe covering id and returns the unlock func.
func (l *docLocks) Lock(id uint) func() {
	m := &l.stripes[id%lockStripes]
	m.Lock()
	return m.Unlock
}
