package cmd

import (
	"context"

	"fourbar/chain"
	"fourbar/nse"
)

// nseFeed adapts the NSE client to the engine's market data interface.
type nseFeed struct {
	client *nse.Client
	index  string
}

func (f *nseFeed) Spot(ctx context.Context) (float64, error) {
	return f.client.LiveIndex(ctx, f.index)
}

func (f *nseFeed) SessionOpen(ctx context.Context) (bool, error) {
	ms, err := f.client.MarketStatus(ctx)
	if err != nil {
		return false, err
	}
	return ms.CapitalMarketOpen(), nil
}

// nseChainSource fetches a fresh chain snapshot and distills it into
// strike picks for the strategy.
type nseChainSource struct {
	client *nse.Client
	index  string
	symbol string
	step   int
}

func (s *nseChainSource) Picks(ctx context.Context) (*chain.Picks, error) {
	spot, err := s.client.LiveIndex(ctx, s.index)
	if err != nil {
		return nil, err
	}
	oc, err := s.client.OptionChain(ctx, s.symbol)
	if err != nil {
		return nil, err
	}
	return chain.BuildPicks(oc, s.symbol, spot, s.step)
}
