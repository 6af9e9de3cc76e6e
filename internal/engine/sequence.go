package engine

// sequenceGuard tracks the last accepted sequence number and validates that
// each delta's declared predecessor matches it. An unsynced guard means
// "awaiting a snapshot": deltas are meaningless until one arrives.
type sequenceGuard struct {
	cursor uint64
	synced bool
}

// onSnapshot unconditionally resynchronizes the cursor. A snapshot always
// re-anchors sequencing regardless of prior state.
func (g *sequenceGuard) onSnapshot(seqNum uint64) {
	g.cursor = seqNum
	g.synced = true
}

// onDelta reports whether the delta continues the accepted sequence. On
// accept the cursor advances to seqNum. A rejected delta leaves the guard
// untouched; the caller resets it as part of resync.
func (g *sequenceGuard) onDelta(prevSeqNum, seqNum uint64) bool {
	if !g.synced || prevSeqNum != g.cursor {
		return false
	}
	g.cursor = seqNum
	return true
}

// reset drops the cursor back to the awaiting-snapshot state.
func (g *sequenceGuard) reset() {
	g.cursor = 0
	g.synced = false
}
