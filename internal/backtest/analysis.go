package backtest

import (
	"errors"
	"math"

	"earnings-straddle-lab/internal/domain"
)

// ErrEmptySeries is returned when analysis is requested on an empty
// daily series. Callers own their inputs; handing in an empty frame is
// invalid usage, not a data condition.
var ErrEmptySeries = errors.New("empty daily PnL series")

// AnalysisOptions hold the statistic bases and rates.
type AnalysisOptions struct {
	AnnualizationFactor int     // trading days per year
	RiskFreeRateDaily   float64 // subtracted from mean daily return
	PortfolioBase       float64 // divisor converting PnL to returns
	EquityBase          float64 // divisor for rolling drawdown windows
}

// DefaultAnalysisOptions mirror the research defaults: 252 trading days,
// zero risk-free rate, a 2M portfolio base and a 1M equity base.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		AnnualizationFactor: 252,
		RiskFreeRateDaily:   0,
		PortfolioBase:       2_000_000,
		EquityBase:          1_000_000,
	}
}

// StatRow is one named statistic. Value is nil when the statistic is
// undefined for the series (for example average loss with no losses).
type StatRow struct {
	Name  string
	Value *float64
}

// Analysis computes risk/return statistics over a daily PnL series.
type Analysis struct {
	records []*domain.DailyPnL
	opts    AnalysisOptions
}

// NewAnalysis creates an analysis over a non-empty daily series.
func NewAnalysis(records []*domain.DailyPnL, opts AnalysisOptions) (*Analysis, error) {
	if len(records) == 0 {
		return nil, ErrEmptySeries
	}
	return &Analysis{records: records, opts: opts}, nil
}

// Statistics computes the full statistic set. Zero-PnL records are
// excluded first: a day without trades is absent, not a zero-return day.
// With fewer than 2 remaining observations a single "Not enough data"
// row is returned instead.
func (a *Analysis) Statistics() []StatRow {
	var pnl []float64
	for _, r := range a.records {
		if r.DailyPnL != 0 {
			pnl = append(pnl, r.DailyPnL)
		}
	}
	if len(pnl) < 2 {
		return []StatRow{{Name: "Not enough data"}}
	}

	n := len(pnl)
	mean := meanOf(pnl)
	std := sampleStddev(pnl, mean)

	returns := make([]float64, n)
	for i, p := range pnl {
		returns[i] = p / a.opts.PortfolioBase
	}
	rMean := meanOf(returns)
	rStd := sampleStddev(returns, rMean)
	annFactor := float64(a.opts.AnnualizationFactor)

	sharpe := 0.0
	if rStd > 0 {
		sharpe = (rMean - a.opts.RiskFreeRateDaily) / rStd * math.Sqrt(annFactor)
	}

	totalReturn := rMean * float64(n)
	annualizedReturn := math.Pow(1+totalReturn, annFactor/float64(n)) - 1

	var rows []StatRow
	add := func(name string, v float64) {
		rows = append(rows, StatRow{Name: name, Value: &v})
	}
	addPtr := func(name string, v *float64) {
		rows = append(rows, StatRow{Name: name, Value: v})
	}

	add("Mean Daily PnL", mean)
	add("Std Dev Daily PnL", std)
	add("Annualized Sharpe Ratio", sharpe)
	add("Total Return (%)", totalReturn*100)
	add("Annualized Total Return (%)", annualizedReturn*100)
	add("Annualized Return Std Dev (%)", rStd*math.Sqrt(annFactor)*100)

	wins, losses := split(pnl)
	add("Win Rate (%)", float64(len(wins))/float64(n)*100)
	addPtr("Average Win Amount", meanOrNil(wins))
	addPtr("Average Loss Amount", meanOrNil(losses))
	add("Max Daily Win", maxOf(pnl))
	add("Max Daily Loss", minOf(pnl))

	pctLong, pctShort := a.positionShares()
	addPtr("Pct Time Long", pctLong)
	addPtr("Pct Time Short", pctShort)

	add("Skewness", skewness(pnl, mean))
	add("Kurtosis", kurtosis(pnl, mean))

	if n >= 5 {
		add("Worst 5d Cum PnL (%)", worstRollingSum(pnl, 5)/a.opts.EquityBase*100)
	}
	if n >= 20 {
		add("Worst 20d Cum PnL (%)", worstRollingSum(pnl, 20)/a.opts.EquityBase*100)
	}

	return rows
}

// positionShares reports the share of non-zero-PnL days spent long vs
// short, nil when no such days exist.
func (a *Analysis) positionShares() (*float64, *float64) {
	total, long := 0, 0
	for _, r := range a.records {
		if r.DailyPnL == 0 || r.PosSign == "" {
			continue
		}
		total++
		if r.PosSign == domain.PosSignLong {
			long++
		}
	}
	if total == 0 {
		return nil, nil
	}
	pctLong := float64(long) / float64(total) * 100
	pctShort := 100 - pctLong
	return &pctLong, &pctShort
}

// EquityCurve returns the cumulative PnL series offset by the equity
// base, one point per input record in date order.
func (a *Analysis) EquityCurve() []float64 {
	out := make([]float64, len(a.records))
	cum := a.opts.EquityBase
	for i, r := range a.records {
		cum += r.DailyPnL
		out[i] = cum
	}
	return out
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func meanOrNil(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := meanOf(xs)
	return &m
}

// sampleStddev uses the n-1 denominator.
func sampleStddev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}

func split(xs []float64) (wins, losses []float64) {
	for _, x := range xs {
		if x > 0 {
			wins = append(wins, x)
		} else if x < 0 {
			losses = append(losses, x)
		}
	}
	return wins, losses
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// skewness is the population (biased) third standardized moment.
func skewness(xs []float64, mean float64) float64 {
	m2, m3 := centralMoments23(xs, mean)
	if m2 == 0 {
		return 0
	}
	return m3 / math.Pow(m2, 1.5)
}

// kurtosis is the population excess (Fisher) kurtosis.
func kurtosis(xs []float64, mean float64) float64 {
	m2, _ := centralMoments23(xs, mean)
	if m2 == 0 {
		return 0
	}
	n := float64(len(xs))
	m4 := 0.0
	for _, x := range xs {
		d := x - mean
		m4 += d * d * d * d
	}
	m4 /= n
	return m4/(m2*m2) - 3
}

func centralMoments23(xs []float64, mean float64) (m2, m3 float64) {
	n := float64(len(xs))
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	return m2 / n, m3 / n
}

// worstRollingSum returns the minimum trailing sum over windows of the
// given size.
func worstRollingSum(xs []float64, window int) float64 {
	sum := 0.0
	for i := 0; i < window; i++ {
		sum += xs[i]
	}
	worst := sum
	for i := window; i < len(xs); i++ {
		sum += xs[i] - xs[i-window]
		if sum < worst {
			worst = sum
		}
	}
	return worst
}
