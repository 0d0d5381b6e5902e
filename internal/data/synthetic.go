package data

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/contactkeval/box-arb/internal/arb"
	"github.com/contactkeval/box-arb/internal/pricing"
)

// syntheticChainSource generates a plausible option chain around a spot price
// using Black-Scholes mids with a proportional bid/ask spread. Deterministic
// for a fixed seed, so demos and tests need no data files.
type syntheticChainSource struct {
	symbol  string
	date    time.Time
	expiry  time.Time
	spot    float64
	strikes int
	seed    int64
}

func NewSyntheticChainSource(symbol string, date, expiry time.Time, spot float64, strikes int, seed int64) ChainSource {
	return &syntheticChainSource{
		symbol:  symbol,
		date:    date,
		expiry:  expiry,
		spot:    spot,
		strikes: strikes,
		seed:    seed,
	}
}

func (s *syntheticChainSource) Chain(ctx context.Context) (*Chain, error) {
	rng := rand.New(rand.NewSource(s.seed))

	const (
		vol  = 0.20
		rate = 0.02
	)
	t := math.Max(s.expiry.Sub(s.date).Hours()/24.0/365.0, 1.0/365.0)
	step := math.Max(math.Round(s.spot*0.01), 1.0)
	first := s.spot - float64(s.strikes/2)*step

	chain := &Chain{}
	for i := 0; i < s.strikes; i++ {
		strike := first + float64(i)*step
		if strike <= 0 {
			continue
		}
		callMid := pricing.BlackScholesPrice(true, s.spot, strike, t, rate, vol)
		putMid := pricing.BlackScholesPrice(false, s.spot, strike, t, rate, vol)

		chain.Quotes = append(chain.Quotes,
			s.quote(strike, arb.Call, callMid, rng),
			s.quote(strike, arb.Put, putMid, rng),
		)
	}
	return chain, nil
}

func (s *syntheticChainSource) quote(strike float64, side arb.OptionType, mid float64, rng *rand.Rand) arb.RawQuote {
	// 1-4% half spread around the mid, floored so deep OTM quotes stay sane
	half := (0.01 + rng.Float64()*0.03) * math.Max(mid, 0.05)
	return arb.RawQuote{
		Date:       s.date,
		Symbol:     s.symbol,
		Expiration: s.expiry,
		Strike:     strike,
		OptionType: side,
		Bid:        math.Max(mid-half, 0),
		Ask:        mid + half,
	}
}
