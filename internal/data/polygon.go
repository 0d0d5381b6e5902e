package data

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"
)

// polygonBarSource fetches daily aggregates from Polygon.io.
type polygonBarSource struct {
	client *polygon.Client
}

func NewPolygonBarSource(apiKey string) BarSource {
	return &polygonBarSource{client: polygon.New(apiKey)}
}

func (p *polygonBarSource) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]Bar, error) {
	log.Debugf("fetching daily bars for %s from %s to %s",
		symbol, from.Format(dateLayout), to.Format(dateLayout))

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.WithOrder(models.Asc).WithAdjusted(true)

	iter := p.client.ListAggs(ctx, params)

	var bars []Bar
	for iter.Next() {
		item := iter.Item()
		bars = append(bars, Bar{
			Date:  time.Time(item.Timestamp).UTC(),
			Close: item.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("polygon aggs for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no daily bars returned for %s", symbol)
	}
	return bars, nil
}
