package store

import (
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/hummingbird/logging"
)

const DefaultJanitorDelay = 30 * time.Second

// Janitor sweeps old files some time after the last write. Bursts of writes result in
// a single sweep.
type Janitor struct {
	store     *Store
	maxAge    time.Duration
	log       logging.Logger
	debounced func(f func())
	swept     chan int
}

func NewJanitor(s *Store, maxAge, delay time.Duration, log logging.Logger) *Janitor {
	if log == nil {
		log = &logging.NoOpLogger{}
	}
	return &Janitor{
		store:     s,
		maxAge:    maxAge,
		log:       log,
		debounced: debounce.New(delay),
	}
}

// Touch schedules a sweep.
func (j *Janitor) Touch() {
	j.debounced(j.sweep)
}

func (j *Janitor) sweep() {
	n, err := j.store.Cleanup(j.maxAge)
	if err != nil {
		j.log.Error(err, "cleanup failed", logging.Fields{"dir": j.store.Dir()})
	} else if n > 0 {
		j.log.Info("cleaned up old files", logging.Fields{"deleted": n, "dir": j.store.Dir()})
	}
	if j.swept != nil {
		j.swept <- n
	}
}
