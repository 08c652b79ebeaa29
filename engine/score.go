package engine

// Scoreboard tracks the current round's score and the best score of the process
type Scoreboard struct {
	Score  uint32
	Record uint32
}

// Reset zeroes the score; the record is kept
func (b *Scoreboard) Reset() {
	b.Score = 0
}

// Feed counts one eaten item
func (b *Scoreboard) Feed() {
	b.Score++
}

// Finalize commits the score into the record and reports a new best
// Record never decreases
func (b *Scoreboard) Finalize() bool {
	if b.Score > b.Record {
		b.Record = b.Score
		return true
	}
	return false
}
