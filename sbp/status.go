package sbp

import "sync"

// StatusMirror merges incoming driver status updates into a local record
// and remaps the driver's segment-relative line number back onto the
// source program (spec.md §4.7). It is the one piece of state in this
// module genuinely touched from two sides at once: the driver delivers
// updates from its own goroutine while the engine reads a snapshot
// synchronously, so unlike the rest of Runtime it is internally
// synchronized (spec.md §5).
type StatusMirror struct {
	mu             sync.Mutex
	current        StatusUpdate
	startOfChunk   int
}

// SetChunkOffset records the program line the current chunk began at, used
// to project a driver-reported line back onto the source program.
func (m *StatusMirror) SetChunkOffset(line int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startOfChunk = line
}

// Merge copies every field present in update into the local record,
// remapping Line by adding the chunk's starting line offset.
func (m *StatusMirror) Merge(update StatusUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Pos = update.Pos
	m.current.Line = update.Line + m.startOfChunk
}

// Snapshot returns a copy of the merged status record.
func (m *StatusMirror) Snapshot() StatusUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Position satisfies StatusSource for the Expression Evaluator.
func (m *StatusMirror) Position() Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Pos
}
