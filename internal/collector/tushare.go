package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"SignalSentinel/internal/model"
)

const tushareBaseURL = "http://api.tushare.pro"

// TushareFetcher implements Fetcher using the Tushare Pro HTTP API. Besides
// OHLCV it pulls the provider's precomputed MACD/KDJ/RSI/BOLL (stk_factor)
// and forward-adjusted MA (stk_factor_pro) columns.
type TushareFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client
	now     func() time.Time
}

// NewTushareFetcher creates a new fetcher with optional proxy support.
func NewTushareFetcher(token, proxyURL string) *TushareFetcher {
	return &TushareFetcher{
		BaseURL: tushareBaseURL,
		Token:   token,
		Client:  newHTTPClient(proxyURL),
		now:     time.Now,
	}
}

func (f *TushareFetcher) Name() string { return "tushare" }

type tushareRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields"`
}

const (
	tushareDaily     = "trade_date,open,high,low,close,vol"
	tushareFactor    = "trade_date,macd_dif,macd_dea,macd,kdj_k,kdj_d,kdj_j,rsi_6,rsi_12,rsi_24,boll_upper,boll_mid,boll_lower"
	tushareFactorPro = "trade_date,ma_qfq_5,ma_qfq_10,ma_qfq_20,ma_qfq_30,ma_qfq_60,ma_qfq_90,ma_qfq_250"
	tushareDate      = "20060102"
)

// barSetters maps Tushare column names onto Bar fields.
var barSetters = map[string]func(*model.Bar, float64){
	"open":       func(b *model.Bar, v float64) { b.Open = v },
	"high":       func(b *model.Bar, v float64) { b.High = v },
	"low":        func(b *model.Bar, v float64) { b.Low = v },
	"close":      func(b *model.Bar, v float64) { b.Close = v },
	"vol":        func(b *model.Bar, v float64) { b.Volume = v },
	"macd_dif":   func(b *model.Bar, v float64) { b.MACDDif = v },
	"macd_dea":   func(b *model.Bar, v float64) { b.MACDDea = v },
	"macd":       func(b *model.Bar, v float64) { b.MACD = v },
	"kdj_k":      func(b *model.Bar, v float64) { b.KDJK = v },
	"kdj_d":      func(b *model.Bar, v float64) { b.KDJD = v },
	"kdj_j":      func(b *model.Bar, v float64) { b.KDJJ = v },
	"rsi_6":      func(b *model.Bar, v float64) { b.RSI6 = v },
	"rsi_12":     func(b *model.Bar, v float64) { b.RSI12 = v },
	"rsi_24":     func(b *model.Bar, v float64) { b.RSI24 = v },
	"boll_upper": func(b *model.Bar, v float64) { b.BollUpper = v },
	"boll_mid":   func(b *model.Bar, v float64) { b.BollMid = v },
	"boll_lower": func(b *model.Bar, v float64) { b.BollLower = v },
	"ma_qfq_5":   func(b *model.Bar, v float64) { b.MA5 = v },
	"ma_qfq_10":  func(b *model.Bar, v float64) { b.MA10 = v },
	"ma_qfq_20":  func(b *model.Bar, v float64) { b.MA20 = v },
	"ma_qfq_30":  func(b *model.Bar, v float64) { b.MA30 = v },
	"ma_qfq_60":  func(b *model.Bar, v float64) { b.MA60 = v },
	"ma_qfq_90":  func(b *model.Bar, v float64) { b.MA90 = v },
	"ma_qfq_250": func(b *model.Bar, v float64) { b.MA250 = v },
}

// FetchDailyBars merges daily, stk_factor and stk_factor_pro rows on
// trade_date. Days the daily table lacks are dropped.
func (f *TushareFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) (model.Series, error) {
	end := f.now()
	params := map[string]string{
		"ts_code":    symbol,
		"start_date": end.AddDate(0, 0, -days).Format(tushareDate),
		"end_date":   end.Format(tushareDate),
	}

	byDate := make(map[string]*model.Bar)
	var order []string
	for _, api := range []struct{ name, fields string }{
		{"daily", tushareDaily},
		{"stk_factor", tushareFactor},
		{"stk_factor_pro", tushareFactorPro},
	} {
		rows, err := f.query(ctx, api.name, api.fields, params)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			date := row["trade_date"].String()
			b, ok := byDate[date]
			if !ok {
				if api.name != "daily" {
					continue
				}
				t, err := time.Parse(tushareDate, date)
				if err != nil {
					return nil, fmt.Errorf("tushare %s: bad trade_date %q", api.name, date)
				}
				b = &model.Bar{Time: t}
				byDate[date] = b
				order = append(order, date)
			}
			for col, v := range row {
				if set, ok := barSetters[col]; ok && v.Type == gjson.Number {
					set(b, v.Float())
				}
			}
		}
		if api.name == "daily" && len(order) == 0 {
			return nil, fmt.Errorf("tushare: no daily data for %s", symbol)
		}
	}

	bars := make(model.Series, 0, len(order))
	for _, d := range order {
		bars = append(bars, *byDate[d])
	}
	return bars, nil
}

// query posts one Tushare request and returns each item keyed by field name.
func (f *TushareFetcher) query(ctx context.Context, api, fields string, params map[string]string) ([]map[string]gjson.Result, error) {
	payload, err := json.Marshal(tushareRequest{APIName: api, Token: f.Token, Params: params, Fields: fields})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tushare %s: %w", api, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tushare %s read body: %w", api, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tushare %s: status %d, body: %s", api, resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("tushare %s: invalid json", api)
	}

	res := gjson.ParseBytes(body)
	if code := res.Get("code").Int(); code != 0 {
		return nil, fmt.Errorf("tushare %s: code %d: %s", api, code, res.Get("msg").String())
	}
	names := res.Get("data.fields").Array()
	items := res.Get("data.items").Array()
	rows := make([]map[string]gjson.Result, 0, len(items))
	for _, item := range items {
		cells := item.Array()
		row := make(map[string]gjson.Result, len(names))
		for i, name := range names {
			if i < len(cells) {
				row[name.String()] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
