package verifier

import (
	"github.com/Northroot-Labs/northroot-kernel/pkg/arith"
	"github.com/Northroot-Labs/northroot-kernel/pkg/events"
	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
	"github.com/Northroot-Labs/northroot-kernel/pkg/quantity"
)

// TokenPriceKey identifies one entry in a price-index snapshot's token price
// table: a (model, provider, token-type) triple.
type TokenPriceKey struct {
	ModelID   string
	Provider  string
	TokenType string // "input" | "output"
}

// PriceIndexSnapshot is the deterministic conversion table an execution
// event can cite by content-addressed digest.
type PriceIndexSnapshot struct {
	TokenPrices   map[TokenPriceKey]quantity.Quantity
	ComputeRates  map[string]quantity.Quantity
	StorageRates  map[string]quantity.Quantity
}

// ConversionContext anchors a PriceIndexSnapshot to the digest an execution
// event must match before its meters can be converted to USD.
type ConversionContext struct {
	Snapshot       PriceIndexSnapshot
	SnapshotDigest ids.Digest
}

// convertToUSD converts meter (a non-USD unit) into a USD Quantity using the
// conversion context, per spec.md §4.4.3's per-unit-family rules. ok is
// false when no applicable price entry exists, meaning the caller should
// treat this as MissingEvidence.
func convertToUSD(meter events.Meter, exec *events.ExecutionEvent, conv *ConversionContext) (quantity.Quantity, bool) {
	switch {
	case meter.Unit == "tokens.input" || meter.Unit == "tokens.output":
		if exec.ModelID == "" || exec.Provider == "" {
			return quantity.Quantity{}, false
		}
		tokenType := "input"
		if meter.Unit == "tokens.output" {
			tokenType = "output"
		}
		key := TokenPriceKey{ModelID: exec.ModelID, Provider: exec.Provider, TokenType: tokenType}
		price, ok := conv.Snapshot.TokenPrices[key]
		if !ok {
			return quantity.Quantity{}, false
		}
		return arith.Mul(meter.Amount, price)
	case meter.Unit == "compute.seconds":
		rate, ok := conv.Snapshot.ComputeRates[meter.Unit]
		if !ok {
			return quantity.Quantity{}, false
		}
		return arith.Mul(meter.Amount, rate)
	case meter.Unit == "storage.bytes":
		rate, ok := conv.Snapshot.StorageRates[meter.Unit]
		if !ok {
			return quantity.Quantity{}, false
		}
		return arith.Mul(meter.Amount, rate)
	default:
		return quantity.Quantity{}, false
	}
}
