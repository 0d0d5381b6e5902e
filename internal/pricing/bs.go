// Package pricing provides the Black-Scholes model used to seed synthetic
// option chains with plausible mid prices.
package pricing

import "math"

// BlackScholesPrice returns the European option price for spot S, strike K,
// time to expiry T in years, risk-free rate r and volatility sigma. With zero
// time or volatility it degenerates to intrinsic value.
func BlackScholesPrice(isCall bool, S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		if isCall {
			return math.Max(0, S-K)
		}
		return math.Max(0, K-S)
	}

	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	if isCall {
		return S*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
	}
	return K*math.Exp(-r*T)*normCDF(-d2) - S*normCDF(-d1)
}

func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
