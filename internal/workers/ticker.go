package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// Ticker calls job once on start and then every interval until its context
// is cancelled. Runs never overlap.
type Ticker struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context)

	logger *logger.Logger
}

// NewTicker returns a periodic worker. A non-positive interval makes Run a
// no-op that only waits for cancellation.
func NewTicker(name string, interval time.Duration, job func(ctx context.Context), logger *logger.Logger) *Ticker {
	return &Ticker{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger,
	}
}

func (t *Ticker) Run(ctx context.Context) {
	log := t.logger.With().Str("worker", t.name).Logger()

	if t.interval <= 0 || t.job == nil {
		log.Debug().Msg("worker disabled")
		<-ctx.Done()
		return
	}

	log.Debug().Dur("interval", t.interval).Msg("worker started")
	defer log.Debug().Msg("worker stopped")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.job(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.job(ctx)
		}
	}
}
