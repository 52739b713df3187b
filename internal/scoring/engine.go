package scoring

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ankurmani/stock-mvp/internal/cache"
	"github.com/ankurmani/stock-mvp/internal/calculator"
	"github.com/ankurmani/stock-mvp/internal/config"
	"github.com/ankurmani/stock-mvp/internal/model"
	"github.com/ankurmani/stock-mvp/internal/provider"
)

// Engine is the scoring and explanation pipeline. Stateless per request:
// the only shared mutable state is the fetch cache, which shields the two
// providers from redundant concurrent calls.
type Engine struct {
	cfg    *config.Config
	store  *cache.Store
	prices provider.PriceProvider
	news   provider.NewsProvider
}

// NewEngine wires the pipeline.
func NewEngine(cfg *config.Config, store *cache.Store, prices provider.PriceProvider, news provider.NewsProvider) *Engine {
	return &Engine{cfg: cfg, store: store, prices: prices, news: news}
}

// Score produces the full result for one ticker: cache-guarded fetches,
// momentum/risk/sentiment, composite, turnaround, explanation.
func (e *Engine) Score(ctx context.Context, ticker string) (*model.ScoreResult, error) {
	series, batch, err := e.fetch(ctx, ticker)
	if err != nil {
		return nil, err
	}

	mom, err := calculator.Momentum(series, e.cfg.Momentum.Weight1Day, e.cfg.Momentum.Weight5Day)
	if err != nil {
		return nil, err
	}
	vol, err := calculator.Risk(series)
	if err != nil {
		return nil, err
	}
	news := calculator.NewsImpact(batch)

	final := Composite(mom.Value, vol, news.Impact,
		e.cfg.Weights.News, e.cfg.Weights.Momentum, e.cfg.Weights.Risk)
	if e.cfg.Clamp.Enabled {
		final = Clamp(final, e.cfg.Clamp.Min, e.cfg.Clamp.Max)
	}

	for metric, v := range map[string]float64{
		"momentum":    mom.Value,
		"risk_value":  vol,
		"news_impact": news.Impact,
		"final_score": final,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err := &NonFiniteResultError{Ticker: ticker, Metric: metric}
			log.Error().Str("ticker", ticker).Str("metric", metric).Msg("non-finite scoring result")
			return nil, err
		}
	}

	r := &model.ScoreResult{
		Ticker:         ticker,
		Momentum:       mom.Value,
		Return1Day:     mom.R1,
		Return5Day:     mom.R5,
		Window5Days:    mom.Window5,
		ReducedWindow:  mom.ReducedWindow,
		RiskValue:      vol,
		RiskBucket:     calculator.BucketFor(vol, e.cfg.Risk.LowMax, e.cfg.Risk.MediumMax),
		NewsImpact:     news.Impact,
		ArticleCount:   news.ArticleCount,
		PositiveCount:  news.Positive,
		NeutralCount:   news.Neutral,
		NegativeCount:  news.Negative,
		Dominant:       news.Dominant,
		FinalScore:     final,
		IsTurnaround:   IsTurnaround(mom.Value, news.Impact, e.cfg.Turnaround.WeakMomentum, e.cfg.Turnaround.StrongNews),
		CoverageDays:   series.Coverage(),
		PartialHistory: series.Coverage() < e.cfg.Prices.WindowDays,
	}
	r.Label = labelFor(r)
	r.Explanation = Explain(r)
	return r, nil
}

// fetch loads the price series and news batch through the cache, in
// parallel. All downstream computation is synchronous and CPU-bound; the
// provider boundary is the only suspension point.
func (e *Engine) fetch(ctx context.Context, ticker string) (*model.PriceSeries, *model.NewsBatch, error) {
	var (
		series *model.PriceSeries
		batch  *model.NewsBatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := e.store.GetOrFetch(gctx, cache.KindPrices, ticker, func(fctx context.Context) (any, error) {
			return e.prices.PriceSeries(fctx, ticker, e.cfg.Prices.WindowDays)
		})
		if err != nil {
			return err
		}
		series = v.(*model.PriceSeries)
		return nil
	})
	g.Go(func() error {
		v, err := e.store.GetOrFetch(gctx, cache.KindNews, ticker, func(fctx context.Context) (any, error) {
			return e.news.RecentNews(fctx, ticker, e.cfg.News.LookbackDays)
		})
		if err != nil {
			return err
		}
		batch = v.(*model.NewsBatch)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return series, batch, nil
}

// TickerScore pairs a ticker with its result or a plain-language failure.
type TickerScore struct {
	Ticker  string
	Result  *model.ScoreResult
	Err     error
	Message string // set on failure, in the explanation register
}

// ScoreWatchlist scores every configured ticker concurrently. Failures are
// isolated per ticker: one ticker's error becomes its marker while the
// others still score. Successes come first, sorted by final score
// descending (the watchlist board order); failures keep watchlist order.
func (e *Engine) ScoreWatchlist(ctx context.Context) []TickerScore {
	out := make([]TickerScore, len(e.cfg.Watchlist))

	var wg sync.WaitGroup
	for i, ticker := range e.cfg.Watchlist {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			res, err := e.Score(ctx, ticker)
			if err != nil {
				log.Warn().Str("ticker", ticker).Err(err).Msg("scoring failed")
				out[i] = TickerScore{Ticker: ticker, Err: err, Message: FailureMessage(ticker, err)}
				return
			}
			out[i] = TickerScore{Ticker: ticker, Result: res}
		}(i, ticker)
	}
	wg.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Result == nil) != (out[j].Result == nil) {
			return out[i].Result != nil
		}
		if out[i].Result == nil {
			return false
		}
		return out[i].Result.FinalScore > out[j].Result.FinalScore
	})
	return out
}
