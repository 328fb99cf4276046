package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SortKey selects the ordering of a filtered listing view
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating-desc"
	SortName      SortKey = "name-asc"
)

// sortAliases maps the values the web client sends onto canonical keys
var sortAliases = map[string]SortKey{
	"newest":      SortNewest,
	"price-asc":   SortPriceAsc,
	"price-low":   SortPriceAsc,
	"price-desc":  SortPriceDesc,
	"price-high":  SortPriceDesc,
	"rating-desc": SortRating,
	"rating":      SortRating,
	"name-asc":    SortName,
	"name":        SortName,
}

// ParseSortKey resolves a client sort value. Unknown values fall back to newest.
func ParseSortKey(s string) SortKey {
	if k, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return SortNewest
}

// Criteria is the set of user-chosen constraints over listings.
// A nil pointer or empty value means no constraint.
type Criteria struct {
	Query      string   `json:"query,omitempty"`
	University *string  `json:"university,omitempty"`
	Region     *string  `json:"region,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
	Amenities  []string `json:"amenities,omitempty"`
	Sort       SortKey  `json:"sort,omitempty"`
}

// ActiveFilters counts the constraints shown as filter chips
func (c Criteria) ActiveFilters() int {
	n := 0
	for _, set := range []bool{c.University != nil, c.Region != nil, c.PriceMin != nil, c.PriceMax != nil} {
		if set {
			n++
		}
	}
	return n + len(c.Amenities)
}

// FlexNumber accepts a JSON number or a JSON string.
// Parsing is deferred so malformed input can be treated as unset.
type FlexNumber string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexNumber(s)
		return nil
	}
	*f = FlexNumber(data)
	return nil
}

// SearchRequest is the wire form of a listing search
type SearchRequest struct {
	Query      string     `json:"query" form:"q"`
	University string     `json:"university" form:"university"`
	Region     string     `json:"region" form:"region"`
	PriceMin   FlexNumber `json:"price_min" form:"price_min"`
	PriceMax   FlexNumber `json:"price_max" form:"price_max"`
	Amenities  []string   `json:"amenities" form:"amenities"`
	Sort       string     `json:"sort" form:"sort"`
	Page       int        `json:"page" form:"page"`
	PageSize   int        `json:"page_size" form:"page_size"`
}

// ListingSearchResult represents a search result with additional metadata
type ListingSearchResult struct {
	Listing
	MatchedReasons []string `json:"matched_reasons"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Results       []ListingSearchResult `json:"results"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
	TotalPages    int                   `json:"total_pages"`
	HasMore       bool                  `json:"has_more"`
	Criteria      Criteria              `json:"criteria"`
	ActiveFilters int                   `json:"active_filters"`
	Amenities     []string              `json:"amenities"`
	Took          int64                 `json:"took_ms"`
}
