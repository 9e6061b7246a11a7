package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fourbar/nse"
)

func leg(ltp, bid, ask float64) *nse.ChainLeg {
	return &nse.ChainLeg{LastPrice: ltp, BidPrice: bid, AskPrice: ask, OpenInterest: 1000}
}

func snapshot(strikes ...int) *nse.OptionChain {
	oc := &nse.OptionChain{}
	oc.Records.ExpiryDates = []string{"31-Jul-2025", "07-Aug-2025"}
	for _, k := range strikes {
		oc.Records.Data = append(oc.Records.Data, nse.ChainRow{
			StrikePrice: float64(k),
			CE:          leg(100, 99, 101),
			PE:          leg(95, 94, 96),
		})
	}
	return oc
}

func TestRoundToStep(t *testing.T) {
	require.Equal(t, 22550, RoundToStep(22560.4, 50))
	require.Equal(t, 22550, RoundToStep(22549.9, 50))
	require.Equal(t, 22600, RoundToStep(22575.0, 50))
	require.Equal(t, 22500, RoundToStep(22510.0, 50))
}

func TestBuildPicksLadders(t *testing.T) {
	oc := snapshot(22400, 22450, 22500, 22550, 22600)

	p, err := BuildPicks(oc, "NIFTY", 22495.0, 50)
	require.NoError(t, err)
	require.Equal(t, 22500, p.ATM)
	require.Equal(t, "31-Jul-2025", p.Expiry)

	require.Equal(t, 22500, p.Calls.ATM.Strike)
	require.Equal(t, 22450, p.Calls.ITM1.Strike)
	require.Equal(t, 22400, p.Calls.ITM2.Strike)
	require.Equal(t, 22550, p.Calls.OTM1.Strike)
	require.Equal(t, 22600, p.Calls.OTM2.Strike)

	require.Equal(t, 22500, p.Puts.ATM.Strike)
	require.Equal(t, 22550, p.Puts.ITM1.Strike)
	require.Equal(t, 22450, p.Puts.OTM1.Strike)

	require.Equal(t, Call, p.Calls.ATM.OptionType)
	require.Equal(t, Put, p.Puts.ATM.OptionType)
	require.Equal(t, "NIFTY", p.Calls.ATM.Symbol)
}

func TestBuildPicksSnapsToClosestListedStrike(t *testing.T) {
	// 22500 is unlisted; 22520 is the closest listed strike to spot.
	oc := snapshot(22420, 22520, 22620)

	p, err := BuildPicks(oc, "NIFTY", 22495.0, 50)
	require.NoError(t, err)
	require.Equal(t, 22520, p.ATM)
	// Ladder targets are step offsets off the snapped ATM; 22470 is
	// unlisted, so ITM1 for calls is simply absent.
	require.Nil(t, p.Calls.ITM1)
	require.Equal(t, 22620, p.Calls.OTM2.Strike)
}

func TestBuildPicksMissingRungFallsBack(t *testing.T) {
	oc := snapshot(22450, 22550)

	p, err := BuildPicks(oc, "NIFTY", 22500.0, 50)
	require.NoError(t, err)
	// ATM 22500 is unlisted; snapping picks one of the equidistant
	// neighbors, and Preferred falls through nil ATM rungs sanely.
	require.NotNil(t, p.Calls.Preferred())
}

func TestPreferredFallsBackToOTM1(t *testing.T) {
	otm := &Leg{Strike: 22550}
	l := Ladder{OTM1: otm}
	require.Equal(t, otm, l.Preferred())

	atm := &Leg{Strike: 22500}
	l = Ladder{ATM: atm, OTM1: otm}
	require.Equal(t, atm, l.Preferred())

	require.Nil(t, Ladder{}.Preferred())
}

func TestBuildPicksErrors(t *testing.T) {
	oc := snapshot(22500)

	_, err := BuildPicks(oc, "NIFTY", 0, 50)
	require.Error(t, err)

	empty := &nse.OptionChain{}
	_, err = BuildPicks(empty, "NIFTY", 22500, 50)
	require.Error(t, err)
}
