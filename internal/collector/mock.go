package collector

import (
	"context"
	"math"
	"time"

	"SignalSentinel/internal/model"
)

// MockFetcher returns deterministic synthetic data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  model.Series
	// End is the date of the last generated bar; zero means today.
	End time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) (model.Series, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	end := m.End
	if end.IsZero() {
		end = dayOf(time.Now())
	}
	price := m.Price
	if price <= 0 {
		price = 100
	}
	return generateMockBars(price, days, end), nil
}

// generateMockBars draws a slow uptrend with a 40-bar cycle on top.
func generateMockBars(basePrice float64, count int, end time.Time) model.Series {
	bars := make(model.Series, count)
	for i := 0; i < count; i++ {
		x := float64(i)
		p := basePrice * (1 + (x-float64(count)/2)*0.001 + 0.05*math.Sin(2*math.Pi*x/40))
		open := p * (1 - 0.004*math.Cos(x))
		bars[i] = model.Bar{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   open,
			High:   math.Max(open, p) * 1.005,
			Low:    math.Min(open, p) * 0.995,
			Close:  p,
			Volume: 1000000 * (1 + 0.3*math.Sin(x/3)),
		}
	}
	return bars
}
