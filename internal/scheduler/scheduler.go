package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ankurmani/stock-mvp/internal/cache"
	"github.com/ankurmani/stock-mvp/internal/scoring"
)

// Scheduler runs the end-of-day watchlist re-score on a cron cadence and
// keeps the fetch cache from accumulating expired entries.
type Scheduler struct {
	Cron   *cron.Cron
	Engine *scoring.Engine
	Store  *cache.Store
	Ctx    context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, engine *scoring.Engine, store *cache.Store) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Engine: engine,
		Store:  store,
		Ctx:    ctx,
	}
}

// Register registers the EOD task.
func (s *Scheduler) Register(eodCron string) error {
	if _, err := s.Cron.AddFunc(eodCron, s.eodTask); err != nil {
		return fmt.Errorf("register eod task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the EOD task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.eodTask()
}

func (s *Scheduler) eodTask() {
	dropped := s.Store.PurgeExpired()
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("purged expired cache entries")
	}

	results := s.Engine.ScoreWatchlist(s.Ctx)
	for rank, ts := range results {
		if ts.Err != nil {
			log.Warn().Str("ticker", ts.Ticker).Str("message", ts.Message).Msg("watchlist entry failed")
			continue
		}
		r := ts.Result
		log.Info().
			Int("rank", rank+1).
			Str("ticker", r.Ticker).
			Float64("final_score", r.FinalScore).
			Str("risk", r.RiskBucket.String()).
			Int("articles", r.ArticleCount).
			Bool("turnaround", r.IsTurnaround).
			Str("label", r.Label).
			Msg(r.Explanation)
	}
}
