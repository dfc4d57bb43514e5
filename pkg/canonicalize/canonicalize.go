package canonicalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gowebpki/jcs"
	"golang.org/x/text/unicode/norm"
)

// Canonicalizer canonicalizes decoded JSON values under a named profile. The
// profile ID is recorded in every HygieneReport it produces but does not
// currently change behavior; it exists so producers can pin which hygiene
// ruleset applied.
type Canonicalizer struct {
	ProfileID string
}

// New returns a Canonicalizer tagged with profileID.
func New(profileID string) *Canonicalizer {
	return &Canonicalizer{ProfileID: profileID}
}

// Canonicalize walks v (a decoded JSON-like tree of nil, bool, string,
// float64/json.Number, []any, or map[string]any) depth-first, collecting
// hygiene findings, then renders RFC 8785 canonical bytes via
// github.com/gowebpki/jcs. The first fatal finding (a non-finite number, an
// invalid UTF-8 string, or an unsupported Go type) terminates the walk
// immediately: no bytes are returned and the report's Status is Invalid.
func (c *Canonicalizer) Canonicalize(v any) ([]byte, HygieneReport, error) {
	w := &walker{metrics: newMetrics(), status: StatusOk}
	if err := w.visit("root", v); err != nil {
		report := HygieneReport{Status: StatusInvalid, Warnings: w.warnings, Metrics: w.metrics, ProfileID: c.ProfileID}
		return nil, report, err
	}

	intermediate, err := marshalNoHTMLEscape(v)
	if err != nil {
		report := HygieneReport{Status: StatusInvalid, Warnings: w.warnings, Metrics: w.metrics, ProfileID: c.ProfileID}
		return nil, report, structErr("root", ErrInvalidStructure)
	}

	out, err := jcs.Transform(intermediate)
	if err != nil {
		report := HygieneReport{Status: StatusInvalid, Warnings: w.warnings, Metrics: w.metrics, ProfileID: c.ProfileID}
		return nil, report, fmt.Errorf("canonicalize: jcs transform: %w", err)
	}

	report := HygieneReport{Status: w.status, Warnings: w.warnings, Metrics: w.metrics, ProfileID: c.ProfileID}
	return out, report, nil
}

// marshalNoHTMLEscape renders v with encoding/json without HTML-escaping
// "<", ">", "&", producing the intermediate bytes jcs.Transform normalizes
// into RFC 8785 form. Hashing the canonical bytes is deliberately not done
// here: identity hashing is domain-separated and lives in pkg/eventid.
func marshalNoHTMLEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type walker struct {
	warnings []Warning
	metrics  *Metrics
	status   Status
}

func joinKey(parent, key string) string {
	if parent == "root" {
		return key
	}
	return parent + "." + key
}

func joinIndex(parent string, idx int) string {
	if parent == "root" {
		return fmt.Sprintf("[%d]", idx)
	}
	return fmt.Sprintf("%s[%d]", parent, idx)
}

func (w *walker) warn(path string, status Status, detail string) {
	w.status = maxStatus(w.status, status)
	w.warnings = append(w.warnings, Warning{Path: path, Detail: detail})
}

func (w *walker) visit(path string, v any) error {
	switch val := v.(type) {
	case nil:
		w.metrics.inc("nulls")
		return nil
	case bool:
		w.metrics.inc("booleans")
		return nil
	case string:
		w.metrics.inc("strings")
		if !utf8.ValidString(val) {
			w.status = StatusInvalid
			return structErr(path, ErrInvalidUTF8)
		}
		if !norm.NFC.IsNormalString(val) {
			w.warn(path, StatusLossy, "string is not NFC-normalized")
		}
		return nil
	case json.Number:
		w.metrics.inc("numbers")
		return w.visitNumberLiteral(path, string(val))
	case float64:
		w.metrics.inc("numbers")
		if math.IsNaN(val) || math.IsInf(val, 0) {
			w.status = StatusInvalid
			return structErr(path, ErrNonFiniteNumber)
		}
		return nil
	case map[string]any:
		w.metrics.inc("objects")
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := w.visit(joinKey(path, k), val[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		w.metrics.inc("arrays")
		for i, elem := range val {
			if err := w.visit(joinIndex(path, i), elem); err != nil {
				return err
			}
		}
		return nil
	default:
		w.status = StatusInvalid
		return structErr(path, ErrInvalidStructure)
	}
}

// visitNumberLiteral inspects a json.Number's original text. json.Number
// cannot hold NaN/Infinity (those are not valid JSON literals), but it can
// hold non-minimal forms -- "1.50", "+3", "1E2", "007" -- that RFC 8785
// reformats. Flag those as Ambiguous: the transform is defined, but the
// input's presentation will not round-trip byte-for-byte.
func (w *walker) visitNumberLiteral(path, lit string) error {
	if !isMinimalNumber(lit) {
		w.warn(path, StatusAmbiguous, fmt.Sprintf("number %q is not in minimal canonical form", lit))
	}
	return nil
}

func isMinimalNumber(lit string) bool {
	s := lit
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if strings.ContainsAny(lit, "eE") {
		return false
	}
	intPart := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		frac := s[i+1:]
		if frac == "" || strings.HasSuffix(frac, "0") {
			return false
		}
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return false
	}
	if intPart == "" {
		return false
	}
	return true
}
