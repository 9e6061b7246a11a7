package nse

import "strings"

// MarketStatus is the exchange-wide segment status payload.
type MarketStatus struct {
	MarketState []MarketSegment `json:"marketState"`
}

// MarketSegment is one market segment's status line.
type MarketSegment struct {
	Market       string `json:"market"`
	MarketStatus string `json:"marketStatus"`
}

// CapitalMarketOpen reports whether the cash segment is trading. An absent
// segment counts as open; only an explicit "Close*" status gates the loop.
func (m *MarketStatus) CapitalMarketOpen() bool {
	for _, seg := range m.MarketState {
		if seg.Market == "Capital Market" {
			return !strings.HasPrefix(strings.ToLower(seg.MarketStatus), "close")
		}
	}
	return true
}

type indexResponse struct {
	Data []indexEntry `json:"data"`
}

type indexEntry struct {
	Symbol    string  `json:"symbol"`
	LastPrice float64 `json:"lastPrice"`
	Last      float64 `json:"last"`
}

// OptionChain is the raw option-chain payload for an index symbol.
type OptionChain struct {
	Records ChainRecords `json:"records"`
}

// ChainRecords carries the expiry ladder and per-strike rows.
type ChainRecords struct {
	ExpiryDates []string   `json:"expiryDates"`
	Data        []ChainRow `json:"data"`
}

// ChainRow is one strike's pair of legs. Either side may be absent.
type ChainRow struct {
	StrikePrice float64   `json:"strikePrice"`
	ExpiryDate  string    `json:"expiryDate"`
	CE          *ChainLeg `json:"CE"`
	PE          *ChainLeg `json:"PE"`
}

// ChainLeg is the quoted state of a single option contract.
type ChainLeg struct {
	LastPrice            float64 `json:"lastPrice"`
	OpenInterest         float64 `json:"openInterest"`
	ChangeinOpenInterest float64 `json:"changeinOpenInterest"`
	BidPrice             float64 `json:"bidprice"`
	AskPrice             float64 `json:"askPrice"`
}
