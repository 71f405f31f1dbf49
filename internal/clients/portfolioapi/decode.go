package portfolioapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bobmcallan/vire-dash/internal/models"
)

// ParsePortfolio normalizes a portfolio response body into the strict Holding
// shape. A missing or non-array "stocks" yields an empty portfolio; entries
// that are not objects are skipped. Numeric fields fall back to 0 and string
// fields to "" when absent or malformed.
func ParsePortfolio(data []byte) (*models.Portfolio, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}

	p := &models.Portfolio{Stocks: []models.Holding{}}

	var items []json.RawMessage
	if err := json.Unmarshal(body["stocks"], &items); err != nil {
		return p, nil
	}

	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		p.Stocks = append(p.Stocks, models.Holding{
			Symbol:       coerceString(fields["symbol"]),
			Quantity:     coerceNumber(fields["quantity"]),
			BuyPrice:     coerceNumber(fields["buyPrice"]),
			BuyDate:      coerceString(fields["buyDate"]),
			CurrentPrice: coerceNumber(fields["currentPrice"]),
		})
	}
	return p, nil
}

// ParseSummary normalizes a summary response body. A JSON null body yields a
// nil summary without error.
func ParseSummary(data []byte) (*models.Summary, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}

	s := &models.Summary{
		TotalInvested:     coerceNumber(body["totalInvested"]),
		CurrentValue:      coerceNumber(body["currentValue"]),
		Unrealized:        coerceNumber(body["unrealized"]),
		UnrealizedPercent: coerceNumber(body["unrealizedPercent"]),
		RiskRating:        stringOnly(body["riskRating"]),
		Suggestions:       parseSuggestions(body["suggestions"]),
	}
	if v, ok := parseNumber(body["volatility"]); ok {
		s.Volatility = &v
	}
	if entries, ok := parseAllocation(body["allocation"]); ok {
		s.Allocation = &models.Allocation{Entries: entries}
	}
	return s, nil
}

// parseNumber accepts a JSON number or a numeric string holding a finite value.
func parseNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, false
		}
	} else if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return 0, false
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func coerceNumber(raw json.RawMessage) float64 {
	v, _ := parseNumber(raw)
	return v
}

// coerceString accepts a JSON string or number; anything else yields "".
func coerceString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		return stringOnly(raw)
	}
	if _, ok := parseNumber(raw); ok {
		return string(raw)
	}
	return ""
}

func stringOnly(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// parseAllocation decodes a JSON object keeping its key order. It reports
// false when the field is absent or not an object.
func parseAllocation(raw json.RawMessage) ([]models.AllocationEntry, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, false
	}

	entries := []models.AllocationEntry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		entries = append(entries, models.AllocationEntry{Symbol: key, Percent: coerceNumber(value)})
	}
	return entries, true
}

// parseSuggestions keeps strings, stringifies numbers and booleans and skips
// everything else.
func parseSuggestions(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		switch {
		case len(item) == 0:
		case item[0] == '"':
			out = append(out, stringOnly(item))
		case bytes.Equal(item, []byte("true")), bytes.Equal(item, []byte("false")):
			out = append(out, string(item))
		default:
			if _, ok := parseNumber(item); ok {
				out = append(out, string(item))
			}
		}
	}
	return out
}
