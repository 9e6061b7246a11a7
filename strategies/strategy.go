package strategies

import (
	"context"

	"fourbar/chain"
	"fourbar/market"
)

// BarStrategy is the interface the engine drives. It is called once per
// completed bar.
type BarStrategy interface {
	OnBar(ctx context.Context, b market.Bar) error
}

// ChainSource supplies a fresh option-chain snapshot for the decision
// tick. Implementations fetch and distill the live chain.
type ChainSource interface {
	Picks(ctx context.Context) (*chain.Picks, error)
}
