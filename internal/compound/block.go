package compound

import (
	"errors"
	"time"
)

// ErrBeforeGenesis time earlier than the genesis
var ErrBeforeGenesis = errors.New("invalid blocks")

// Clock maps wall time to block numbers
type Clock struct {
	Genesis         int64
	SecondsPerBlock int64
}

// NewClock fall back to SecondsPerBlock when secondsPerBlock is not positive
func NewClock(genesis, secondsPerBlock int64) Clock {
	if secondsPerBlock <= 0 {
		secondsPerBlock = SecondsPerBlock
	}

	return Clock{Genesis: genesis, SecondsPerBlock: secondsPerBlock}
}

// BlockAt block containing t
func (c Clock) BlockAt(t time.Time) (int64, error) {
	seconds := t.UTC().Unix() - c.Genesis
	if seconds < 0 {
		return 0, ErrBeforeGenesis
	}

	return seconds / c.SecondsPerBlock, nil
}

// CurrentBlock current block
func (c Clock) CurrentBlock() (int64, error) {
	return c.BlockAt(time.Now())
}
