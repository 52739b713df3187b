package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurmani/stock-mvp/internal/cache"
	"github.com/ankurmani/stock-mvp/internal/calculator"
	"github.com/ankurmani/stock-mvp/internal/config"
	"github.com/ankurmani/stock-mvp/internal/model"
	"github.com/ankurmani/stock-mvp/internal/provider"
)

func testConfig(t *testing.T, watchlist ...string) *config.Config {
	t.Helper()
	cfg, err := config.Load("testdata/nonexistent.yaml") // defaults only
	require.NoError(t, err)
	if len(watchlist) > 0 {
		cfg.Watchlist = watchlist
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func testSeries(ticker string, closes []float64) *model.PriceSeries {
	pts := make([]model.PricePoint, len(closes))
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		pts[i] = model.PricePoint{Date: base.AddDate(0, 0, i), Close: c, Volume: 1000}
	}
	return &model.PriceSeries{Ticker: ticker, Points: pts}
}

func mixedNews(ticker string) *model.NewsBatch {
	return &model.NewsBatch{
		Ticker: ticker,
		Articles: []model.NewsArticle{
			{Title: "Record quarterly profit growth"},
			{Title: "Company wins major contract"},
			{Title: "Stock upgraded after strong quarter"},
			{Title: "Regulator imposes penalty over lapses"},
			{Title: "Board meeting scheduled next week"},
		},
	}
}

func newTestEngine(cfg *config.Config, mock *provider.MockProvider) *Engine {
	return NewEngine(cfg, cache.New(time.Hour, 10*time.Minute), mock, mock)
}

func TestEngine_Score_FullPipeline(t *testing.T) {
	cfg := testConfig(t, "TCS.NS")
	mock := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{"TCS.NS": testSeries("TCS.NS", []float64{100, 101, 99, 102, 103, 105})},
		News:   map[string]*model.NewsBatch{"TCS.NS": mixedNews("TCS.NS")},
	}
	engine := newTestEngine(cfg, mock)

	r, err := engine.Score(context.Background(), "TCS.NS")
	require.NoError(t, err)

	assert.Equal(t, "TCS.NS", r.Ticker)
	assert.InDelta(t, 0.0347, r.Momentum, 1e-3)
	assert.Equal(t, 5, r.ArticleCount)
	assert.Equal(t, model.SentimentPositive, r.Dominant)
	assert.InDelta(t, 0.4, r.NewsImpact, 1e-9)
	assert.False(t, r.ReducedWindow)
	assert.True(t, r.PartialHistory) // 6 of 120 requested days

	// The composite must be exactly the documented linear formula.
	want := Composite(r.Momentum, r.RiskValue, r.NewsImpact,
		cfg.Weights.News, cfg.Weights.Momentum, cfg.Weights.Risk)
	assert.Equal(t, want, r.FinalScore)

	assert.NotEmpty(t, r.Explanation)
	assert.Contains(t, r.Explanation, "5 articles")
	assert.Contains(t, r.Explanation, r.RiskBucket.String())
}

func TestEngine_Score_Turnaround(t *testing.T) {
	cfg := testConfig(t, "INFY.NS")
	mock := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{"INFY.NS": testSeries("INFY.NS", []float64{105, 104, 103, 102, 101, 100})},
		News: map[string]*model.NewsBatch{"INFY.NS": {
			Ticker: "INFY.NS",
			Articles: []model.NewsArticle{
				{Title: "Record profit growth"},
				{Title: "Company wins major contract"},
				{Title: "Stock upgraded after strong quarter"},
				{Title: "Board meeting scheduled next week"},
			},
		}},
	}
	engine := newTestEngine(cfg, mock)

	r, err := engine.Score(context.Background(), "INFY.NS")
	require.NoError(t, err)

	assert.Less(t, r.Momentum, cfg.Turnaround.WeakMomentum)
	assert.Greater(t, r.NewsImpact, cfg.Turnaround.StrongNews)
	assert.True(t, r.IsTurnaround)
	assert.Equal(t, "Turnaround Watch", r.Label)
	assert.Contains(t, r.Explanation, "possible turnaround")
}

func TestEngine_Score_SinglePointSeries(t *testing.T) {
	cfg := testConfig(t, "X.NS")
	mock := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{"X.NS": testSeries("X.NS", []float64{100})},
	}
	engine := newTestEngine(cfg, mock)

	_, err := engine.Score(context.Background(), "X.NS")
	var insufficient *calculator.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
}

func TestEngine_Score_ProviderDown(t *testing.T) {
	cfg := testConfig(t, "X.NS")
	mock := &provider.MockProvider{PriceErr: errors.New("connection refused")}
	engine := newTestEngine(cfg, mock)

	_, err := engine.Score(context.Background(), "X.NS")
	var unavailable *provider.DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "prices", unavailable.Resource)
}

func TestEngine_Score_NonFiniteInput(t *testing.T) {
	cfg := testConfig(t, "X.NS")
	mock := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{"X.NS": testSeries("X.NS", []float64{100, 0, 100})},
	}
	engine := newTestEngine(cfg, mock)

	_, err := engine.Score(context.Background(), "X.NS")
	var nonFinite *NonFiniteResultError
	require.ErrorAs(t, err, &nonFinite)
}

func TestEngine_Score_CachedWithinTTL(t *testing.T) {
	cfg := testConfig(t, "TCS.NS")
	mock := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{"TCS.NS": testSeries("TCS.NS", []float64{100, 101, 99, 102, 103, 105})},
		News:   map[string]*model.NewsBatch{"TCS.NS": mixedNews("TCS.NS")},
	}
	engine := newTestEngine(cfg, mock)

	first, err := engine.Score(context.Background(), "TCS.NS")
	require.NoError(t, err)
	second, err := engine.Score(context.Background(), "TCS.NS")
	require.NoError(t, err)

	prices, news := mock.Calls()
	assert.Equal(t, 1, prices, "second call within TTL must not refetch prices")
	assert.Equal(t, 1, news, "second call within TTL must not refetch news")
	assert.Equal(t, first.FinalScore, second.FinalScore)
}

func TestEngine_ScoreWatchlist_IsolatesFailures(t *testing.T) {
	cfg := testConfig(t, "GOOD.NS", "SHORT.NS", "DOWN.NS")
	mock := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{
			"GOOD.NS":  testSeries("GOOD.NS", []float64{100, 101, 99, 102, 103, 105}),
			"SHORT.NS": testSeries("SHORT.NS", []float64{100}),
			"DOWN.NS":  testSeries("DOWN.NS", []float64{105, 104, 103, 102, 101, 100}),
		},
		News: map[string]*model.NewsBatch{"GOOD.NS": mixedNews("GOOD.NS")},
	}
	engine := newTestEngine(cfg, mock)

	results := engine.ScoreWatchlist(context.Background())
	require.Len(t, results, 3)

	byTicker := map[string]TickerScore{}
	for _, ts := range results {
		byTicker[ts.Ticker] = ts
	}

	require.NoError(t, byTicker["GOOD.NS"].Err)
	require.NotNil(t, byTicker["GOOD.NS"].Result)
	require.NoError(t, byTicker["DOWN.NS"].Err)

	short := byTicker["SHORT.NS"]
	require.Error(t, short.Err)
	assert.Nil(t, short.Result)
	assert.True(t, strings.Contains(short.Message, "Not enough price history"), "got %q", short.Message)

	// Successes ranked by final score descending, failures last.
	require.NotNil(t, results[0].Result)
	require.NotNil(t, results[1].Result)
	assert.GreaterOrEqual(t, results[0].Result.FinalScore, results[1].Result.FinalScore)
	assert.Equal(t, "SHORT.NS", results[2].Ticker)
}
