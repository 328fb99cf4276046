package service

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"hostelhub/internal/campus"
	"hostelhub/internal/model"
	"hostelhub/internal/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter evaluates Criteria against listings. It holds no mutable state.
type Filter struct {
	dir *campus.Directory
}

// NewFilter creates a filter that resolves regions through dir
func NewFilter(dir *campus.Directory) *Filter {
	if dir == nil {
		dir = campus.Default()
	}
	return &Filter{dir: dir}
}

// FilterAndSort applies c to listings using the built-in campus directory
func FilterAndSort(listings []model.Listing, c model.Criteria) []model.Listing {
	return NewFilter(nil).Apply(listings, c)
}

// Apply returns the listings matching every set constraint of c, ordered by c.Sort.
// The input slice and its elements are left untouched.
func (f *Filter) Apply(listings []model.Listing, c model.Criteria) []model.Listing {
	m := newMatcher(c)

	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if f.matches(m, l) {
			out = append(out, l)
		}
	}

	sortListings(out, c.Sort)
	return out
}

// Matches reports whether a single listing satisfies c
func (f *Filter) Matches(l model.Listing, c model.Criteria) bool {
	return f.matches(newMatcher(c), l)
}

// matcher holds criteria pre-processed once per Apply call
type matcher struct {
	query      string
	university string
	region     string
	hasUni     bool
	hasRegion  bool
	min, max   *float64
	amenities  []string
}

func newMatcher(c model.Criteria) matcher {
	m := matcher{
		query:     strings.ToLower(strings.TrimSpace(c.Query)),
		min:       c.PriceMin,
		max:       c.PriceMax,
		amenities: utils.NormalizeAmenities(c.Amenities),
	}
	if c.University != nil {
		m.university = strings.TrimSpace(*c.University)
		m.hasUni = m.university != ""
	}
	if c.Region != nil {
		m.region = strings.TrimSpace(*c.Region)
		m.hasRegion = m.region != ""
	}
	return m
}

func (f *Filter) matches(m matcher, l model.Listing) bool {
	if m.query != "" &&
		!strings.Contains(strings.ToLower(l.Name), m.query) &&
		!strings.Contains(strings.ToLower(l.Location), m.query) &&
		!strings.Contains(strings.ToLower(l.Description), m.query) {
		return false
	}

	if m.hasUni && !strings.EqualFold(strings.TrimSpace(l.University), m.university) {
		return false
	}

	if m.hasRegion && !f.inRegion(l, m.region) {
		return false
	}

	if m.min != nil && l.Price < *m.min {
		return false
	}
	if m.max != nil && l.Price > *m.max {
		return false
	}

	if len(m.amenities) > 0 {
		have := make(map[string]bool, len(l.Amenities))
		for _, a := range l.Amenities {
			have[utils.NormalizeAmenity(a)] = true
		}
		for _, want := range m.amenities {
			if !have[want] {
				return false
			}
		}
	}

	return true
}

// inRegion matches when the listing's university is in the region's town
// or the listing's location mentions it
func (f *Filter) inRegion(l model.Listing, region string) bool {
	if town, ok := f.dir.TownOf(l.University); ok && strings.EqualFold(town, region) {
		return true
	}
	return strings.Contains(strings.ToLower(l.Location), strings.ToLower(region))
}

// sortListings orders listings in place. Equal keys keep their input order.
func sortListings(listings []model.Listing, key model.SortKey) {
	var less func(a, b *model.Listing) bool

	switch key {
	case model.SortPriceAsc:
		less = func(a, b *model.Listing) bool { return a.Price < b.Price }
	case model.SortPriceDesc:
		less = func(a, b *model.Listing) bool { return a.Price > b.Price }
	case model.SortRating:
		less = func(a, b *model.Listing) bool { return a.Rating > b.Rating }
	case model.SortName:
		col := collate.New(language.English, collate.Loose)
		less = func(a, b *model.Listing) bool { return col.CompareString(a.Name, b.Name) < 0 }
	default:
		less = func(a, b *model.Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return less(&listings[i], &listings[j])
	})
}

// ParsePrice turns a user-entered bound into a constraint.
// Blank, malformed, negative or non-finite input yields nil (no constraint).
func ParsePrice(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// CriteriaFromRequest converts a wire search request into Criteria
func CriteriaFromRequest(req model.SearchRequest) model.Criteria {
	c := model.Criteria{
		Query:     strings.TrimSpace(req.Query),
		PriceMin:  ParsePrice(string(req.PriceMin)),
		PriceMax:  ParsePrice(string(req.PriceMax)),
		Amenities: utils.NormalizeAmenities(utils.SplitList(req.Amenities)),
		Sort:      model.ParseSortKey(req.Sort),
	}
	if u := strings.TrimSpace(req.University); u != "" {
		c.University = &u
	}
	if r := strings.TrimSpace(req.Region); r != "" {
		c.Region = &r
	}
	if len(c.Amenities) == 0 {
		c.Amenities = nil
	}
	return c
}

// CollectAmenities returns the distinct amenities offered across listings, sorted
func CollectAmenities(listings []model.Listing) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, l := range listings {
		for _, a := range l.Amenities {
			n := utils.NormalizeAmenity(a)
			if n != "" && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}
