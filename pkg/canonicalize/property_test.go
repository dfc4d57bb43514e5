package canonicalize

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCanonicalizationIsKeyOrderIndependent is the Go realization of the
// property that two JSON objects differing only in key order canonicalize
// to identical bytes.
func TestCanonicalizationIsKeyOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("object key order does not affect canonical bytes", prop.ForAll(
		func(keys []string) bool {
			c := New("northroot-canonical-v1")
			forward := map[string]any{}
			for i, k := range keys {
				forward[k] = float64(i)
			}
			backward := map[string]any{}
			for i := len(keys) - 1; i >= 0; i-- {
				backward[keys[i]] = float64(i)
			}
			out1, _, err1 := c.Canonicalize(forward)
			out2, _, err2 := c.Canonicalize(backward)
			if err1 != nil || err2 != nil {
				return err1 == nil && err2 == nil
			}
			return string(out1) == string(out2)
		},
		gen.SliceOfN(6, gen.AlphaString()).SuchThat(func(keys []string) bool {
			seen := map[string]bool{}
			for _, k := range keys {
				if k == "" || seen[k] {
					return false
				}
				seen[k] = true
			}
			return true
		}),
	))

	properties.Property("canonical bytes are valid JSON that decodes back to an equal-cardinality object", prop.ForAll(
		func(keys []string) bool {
			c := New("northroot-canonical-v1")
			v := map[string]any{}
			for i, k := range keys {
				v[k] = float64(i)
			}
			out, _, err := c.Canonicalize(v)
			if err != nil {
				return false
			}
			var decoded map[string]any
			if err := json.Unmarshal(out, &decoded); err != nil {
				return false
			}
			return len(decoded) == len(v)
		},
		gen.SliceOfN(4, gen.AlphaString()).SuchThat(func(keys []string) bool {
			seen := map[string]bool{}
			for _, k := range keys {
				if k == "" || seen[k] {
					return false
				}
				seen[k] = true
			}
			return true
		}),
	))

	properties.TestingRun(t)
}
