package domain

import "context"

// PriceOracleRepository persists the singleton oracle record.
type PriceOracleRepository interface {
	// GetPriceOracle returns the stored oracle, or an uninitialized one if
	// nothing is stored yet.
	GetPriceOracle(ctx context.Context) (*PriceOracle, error)
	// UpdatePriceOracle allows to commit multiple changes to the oracle in a
	// transactional way. The record is created if not existing.
	UpdatePriceOracle(
		ctx context.Context,
		updateFn func(o *PriceOracle) (*PriceOracle, error),
	) error
}
