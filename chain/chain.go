// Package chain turns a raw option-chain snapshot into the small set of
// strike picks the strategy actually trades: ATM plus two in/out-of-the-money
// rungs per side, nearest expiry only.
package chain

import (
	"fmt"
	"math"
	"sort"

	"fourbar/nse"
)

// OptionType distinguishes the two legs of a strike row.
type OptionType string

const (
	Call OptionType = "CE"
	Put  OptionType = "PE"
)

// Leg is one tradable option contract, read-only to the decision core.
type Leg struct {
	Expiry       string     `json:"expiry"`
	Strike       int        `json:"strike"`
	OptionType   OptionType `json:"option_type"`
	LastPrice    float64    `json:"ltp"`
	OpenInterest float64    `json:"oi"`
	ChangeInOI   float64    `json:"change_in_oi"`
	Bid          float64    `json:"bid"`
	Ask          float64    `json:"ask"`
	Symbol       string     `json:"symbol"`
}

// Ladder holds one side's picks around the money. Rungs may be nil when the
// chain doesn't list the target strike.
type Ladder struct {
	ATM  *Leg `json:"ATM"`
	ITM1 *Leg `json:"ITM1"`
	ITM2 *Leg `json:"ITM2"`
	OTM1 *Leg `json:"OTM1"`
	OTM2 *Leg `json:"OTM2"`
}

// Preferred returns the leg entry policy wants: ATM when listed, first
// out-of-the-money rung otherwise. Nil when neither exists.
func (l Ladder) Preferred() *Leg {
	if l.ATM != nil {
		return l.ATM
	}
	return l.OTM1
}

// Picks is the chain snapshot distilled for one decision tick.
type Picks struct {
	Spot   float64 `json:"spot"`
	Expiry string  `json:"expiry"`
	ATM    int     `json:"atm"`
	Calls  Ladder  `json:"calls"`
	Puts   Ladder  `json:"puts"`
}

// RoundToStep rounds x to the nearest multiple of step.
func RoundToStep(x float64, step int) int {
	return int(math.Round(x/float64(step))) * step
}

// BuildPicks selects the ATM strike (spot rounded to step, snapped to the
// closest listed strike when unlisted) and fills both ladders from the
// nearest expiry.
func BuildPicks(oc *nse.OptionChain, symbol string, spot float64, step int) (*Picks, error) {
	if spot <= 0 {
		return nil, fmt.Errorf("chain: no spot available")
	}
	if len(oc.Records.ExpiryDates) == 0 {
		return nil, fmt.Errorf("chain: no expiries in snapshot")
	}
	expiry := oc.Records.ExpiryDates[0]

	byStrike := make(map[int]map[OptionType]*nse.ChainLeg)
	for i := range oc.Records.Data {
		row := &oc.Records.Data[i]
		k := int(row.StrikePrice)
		if k == 0 {
			continue
		}
		legs, ok := byStrike[k]
		if !ok {
			legs = make(map[OptionType]*nse.ChainLeg, 2)
			byStrike[k] = legs
		}
		if row.CE != nil {
			legs[Call] = row.CE
		}
		if row.PE != nil {
			legs[Put] = row.PE
		}
	}
	if len(byStrike) == 0 {
		return nil, fmt.Errorf("chain: empty snapshot")
	}

	strikes := make([]int, 0, len(byStrike))
	for k := range byStrike {
		strikes = append(strikes, k)
	}
	sort.Ints(strikes)

	atm := RoundToStep(spot, step)
	if _, listed := byStrike[atm]; !listed {
		atm = closest(strikes, spot)
	}

	pick := func(side OptionType, strike int) *Leg {
		raw, ok := byStrike[strike][side]
		if !ok {
			return nil
		}
		return &Leg{
			Expiry:       expiry,
			Strike:       strike,
			OptionType:   side,
			LastPrice:    raw.LastPrice,
			OpenInterest: raw.OpenInterest,
			ChangeInOI:   raw.ChangeinOpenInterest,
			Bid:          raw.BidPrice,
			Ask:          raw.AskPrice,
			Symbol:       symbol,
		}
	}

	// For calls, lower strikes are in the money; for puts, higher ones.
	return &Picks{
		Spot:   spot,
		Expiry: expiry,
		ATM:    atm,
		Calls: Ladder{
			ATM:  pick(Call, atm),
			ITM1: pick(Call, atm-step),
			ITM2: pick(Call, atm-2*step),
			OTM1: pick(Call, atm+step),
			OTM2: pick(Call, atm+2*step),
		},
		Puts: Ladder{
			ATM:  pick(Put, atm),
			ITM1: pick(Put, atm+step),
			ITM2: pick(Put, atm+2*step),
			OTM1: pick(Put, atm-step),
			OTM2: pick(Put, atm-2*step),
		},
	}, nil
}

func closest(sorted []int, spot float64) int {
	best := sorted[0]
	bestDist := math.Abs(float64(best) - spot)
	for _, k := range sorted[1:] {
		if d := math.Abs(float64(k) - spot); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
