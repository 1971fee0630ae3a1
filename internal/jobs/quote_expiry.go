package jobs

import (
	"log"
	"time"

	"github.com/syaoranea/FlowChat/internal/models"
	"github.com/syaoranea/FlowChat/internal/storage"
)

// QuoteExpiryJob marks draft quotes past their validity date as
// expired.
type QuoteExpiryJob struct {
	store     storage.Store
	interval  time.Duration
	isRunning bool
}

// NewQuoteExpiryJob creates a new quote expiry sweeper.
func NewQuoteExpiryJob(store storage.Store) *QuoteExpiryJob {
	return &QuoteExpiryJob{
		store:    store,
		interval: 24 * time.Hour,
	}
}

// Start begins the scheduled sweep.
func (j *QuoteExpiryJob) Start() {
	if j.isRunning {
		log.Println("Quote expiry job already running")
		return
	}

	j.isRunning = true
	log.Println("Starting quote expiry job...")

	go j.run()
}

// Stop halts the scheduled sweep after the current cycle.
func (j *QuoteExpiryJob) Stop() {
	j.isRunning = false
	log.Println("Stopping quote expiry job...")
}

func (j *QuoteExpiryJob) run() {
	// Sweep once at startup, then on the interval.
	j.SweepOnce()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for range ticker.C {
		if !j.isRunning {
			return
		}
		j.SweepOnce()
	}
}

// SweepOnce expires all draft quotes whose validity has passed.
func (j *QuoteExpiryJob) SweepOnce() {
	quotes, err := j.store.ListExpiredQuotes(time.Now().UTC())
	if err != nil {
		log.Printf("❌ Quote expiry sweep failed: %v", err)
		return
	}

	for _, quote := range quotes {
		if err := j.store.UpdateQuoteStatus(quote.ID, models.QuoteStatusExpired); err != nil {
			log.Printf("❌ Failed to expire quote %s: %v", quote.FormattedNumber, err)
			continue
		}
		log.Printf("⏰ Quote %s expired (valid until %s)", quote.FormattedNumber, quote.ExpiresAt.Format("2006-01-02"))
	}

	if len(quotes) > 0 {
		log.Printf("Quote expiry sweep done: %d quote(s) expired", len(quotes))
	}
}
