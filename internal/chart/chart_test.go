package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"SignalSentinel/internal/model"
)

func series(n int) model.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.Series, n)
	for i := range s {
		c := 10 + float64(i%7)*0.1
		s[i] = model.Bar{
			Time: start.AddDate(0, 0, i), Open: c - 0.05, High: c + 0.2, Low: c - 0.2, Close: c, Volume: 1000,
			MA5: c, MA10: c, MA20: c, MACDDif: 0.1, MACDDea: 0.05, MACD: 0.1,
			KDJK: 50, KDJD: 50, KDJJ: 50, RSI6: 55, RSI12: 52, RSI24: 51,
			BollUpper: c + 1, BollMid: c, BollLower: c - 1,
		}
	}
	return s
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "000001.SZ", series(200)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"000001.SZ", "MACD", "KDJ", "RSI6", "DIF"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "2024-01-01") {
		t.Error("page should only show the most recent bars")
	}
}

func TestRenderEmpty(t *testing.T) {
	if err := Render(&bytes.Buffer{}, "x", nil); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("err = %v, want ErrEmptySeries", err)
	}
}
