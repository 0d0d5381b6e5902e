package arb

import (
	"sort"
	"time"
)

// ExpirationGroup holds every filtered strike sharing one
// (date, symbol, expiration) key, sorted by ascending strike. The pivot key
// guarantees strikes within a group are unique.
type ExpirationGroup struct {
	Date       time.Time
	Symbol     string
	Expiration time.Time
	Strikes    []FilteredStrike
}

type groupKey struct {
	date       string
	symbol     string
	expiration string
}

// GroupByExpiration splits filtered strikes into scan domains. Output order is
// deterministic: groups sorted by (date, symbol, expiration), strikes within
// each group by strike.
func GroupByExpiration(strikes []FilteredStrike) []ExpirationGroup {
	byKey := make(map[groupKey]*ExpirationGroup)
	var keys []groupKey
	for _, s := range strikes {
		k := groupKey{
			date:       s.Date.Format(dateLayout),
			symbol:     s.Symbol,
			expiration: s.Expiration.Format(dateLayout),
		}
		g, ok := byKey[k]
		if !ok {
			g = &ExpirationGroup{Date: s.Date, Symbol: s.Symbol, Expiration: s.Expiration}
			byKey[k] = g
			keys = append(keys, k)
		}
		g.Strikes = append(g.Strikes, s)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		if keys[i].symbol != keys[j].symbol {
			return keys[i].symbol < keys[j].symbol
		}
		return keys[i].expiration < keys[j].expiration
	})

	out := make([]ExpirationGroup, 0, len(keys))
	for _, k := range keys {
		g := byKey[k]
		sort.Slice(g.Strikes, func(i, j int) bool {
			return g.Strikes[i].Strike < g.Strikes[j].Strike
		})
		out = append(out, *g)
	}
	return out
}
