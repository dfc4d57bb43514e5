package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Northroot-Labs/northroot-kernel/pkg/canonicalize"
	"github.com/Northroot-Labs/northroot-kernel/pkg/eventid"
	"github.com/Northroot-Labs/northroot-kernel/pkg/quantity"
	"github.com/Northroot-Labs/northroot-kernel/pkg/verifier"
)

// priceIndexFile is the on-disk wire form of a price-index snapshot: a
// caller-authored document naming per-(model,provider,token-type) token
// prices plus flat compute/storage rates, per spec.md §4.4.3. It is decoded
// twice: once generically (to compute the same content-addressed digest an
// execution event's pricing_snapshot_digest must match) and once into this
// typed form (to build the verifier's lookup tables).
type priceIndexFile struct {
	TokenPrices []struct {
		ModelID   string            `json:"model_id"`
		Provider  string            `json:"provider"`
		TokenType string            `json:"token_type"`
		Price     quantity.Quantity `json:"price"`
	} `json:"token_prices"`
	ComputeRates map[string]quantity.Quantity `json:"compute_rates"`
	StorageRates map[string]quantity.Quantity `json:"storage_rates"`
}

// loadConversionContext reads a price-index snapshot from path and returns
// the ConversionContext VerifyExecution needs to convert usd-denominated
// meter caps, anchored to the digest of the snapshot as written.
func loadConversionContext(path string, canon *canonicalize.Canonicalizer) (*verifier.ConversionContext, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decoding price-index as JSON: %w", err)
	}
	genericMap, ok := generic.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("price-index must be a JSON object")
	}
	digest, err := eventid.ComputePriceIndexDigest(genericMap, canon)
	if err != nil {
		return nil, fmt.Errorf("digesting price-index: %w", err)
	}

	var file priceIndexFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decoding price-index: %w", err)
	}

	snapshot := verifier.PriceIndexSnapshot{
		TokenPrices:  make(map[verifier.TokenPriceKey]quantity.Quantity, len(file.TokenPrices)),
		ComputeRates: file.ComputeRates,
		StorageRates: file.StorageRates,
	}
	for _, tp := range file.TokenPrices {
		snapshot.TokenPrices[verifier.TokenPriceKey{ModelID: tp.ModelID, Provider: tp.Provider, TokenType: tp.TokenType}] = tp.Price
	}

	return &verifier.ConversionContext{Snapshot: snapshot, SnapshotDigest: digest}, nil
}
