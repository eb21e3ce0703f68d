package model

// FactorScore represents a single indicator family's contribution to the consensus.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// ConsensusTier maps a total score range to a descriptive stance.
type ConsensusTier struct {
	Label string `json:"label"`
	Bias  int    `json:"bias"` // +1 bullish, -1 bearish, 0 neutral
}

// Consensus is the cross-family resonance summary. It describes, it does not trade.
type Consensus struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	Tier       ConsensusTier `json:"tier"`
	WarningMsg string        `json:"warning,omitempty"`
}

// PriceContext is the market snapshot printed alongside an analysis.
type PriceContext struct {
	LatestClose     float64 `json:"latest_close"`
	ChangePct       float64 `json:"change_pct"`
	VolumeChangePct float64 `json:"volume_change_pct"`
	High52w         float64 `json:"high_52w"`
	Low52w          float64 `json:"low_52w"`
	Position52w     float64 `json:"position_52w"` // 0.0 ~ 1.0
}
