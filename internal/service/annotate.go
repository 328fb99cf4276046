package service

import (
	"fmt"
	"strings"

	"hostelhub/internal/model"
	"hostelhub/internal/utils"
)

// Match reason constants
const (
	ReasonPriceMatch   = "Price within budget"
	ReasonAmenities    = "Has all requested amenities"
	ReasonHighlyRated  = "Highly rated"
	ReasonVerified     = "Verified"
	ReasonRoomsFree    = "Rooms available"
	ReasonQueryMatch   = "Matches your search"
	ReasonGeneralMatch = "General match"
	highlyRatedMinimum = 4.5
	reasonNearPrefix   = "Near "
	reasonRegionPrefix = "In "
)

// Annotator explains why listings matched a search
type Annotator struct{}

// NewAnnotator creates a new annotator
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate wraps each listing with its matched reasons, keeping order
func (a *Annotator) Annotate(listings []model.Listing, c model.Criteria) []model.ListingSearchResult {
	results := make([]model.ListingSearchResult, 0, len(listings))
	for _, l := range listings {
		results = append(results, model.ListingSearchResult{
			Listing:        l,
			MatchedReasons: a.reasons(l, c),
		})
	}
	return results
}

// reasons generates human-readable reasons for why this listing matched
func (a *Annotator) reasons(l model.Listing, c model.Criteria) []string {
	reasons := []string{}

	if strings.TrimSpace(c.Query) != "" {
		reasons = append(reasons, ReasonQueryMatch)
	}
	if c.University != nil && l.University != "" {
		reasons = append(reasons, reasonNearPrefix+l.University)
	}
	if c.Region != nil {
		reasons = append(reasons, reasonRegionPrefix+strings.TrimSpace(*c.Region))
	}
	if c.PriceMin != nil || c.PriceMax != nil {
		reasons = append(reasons, ReasonPriceMatch)
	}
	if len(utils.NormalizeAmenities(c.Amenities)) > 0 {
		reasons = append(reasons, ReasonAmenities)
	}

	if l.Rating >= highlyRatedMinimum {
		reasons = append(reasons, ReasonHighlyRated)
	}
	if l.Verified {
		reasons = append(reasons, ReasonVerified)
	}
	if free := freeRooms(l); free > 0 {
		reasons = append(reasons, fmt.Sprintf("%s (%d)", ReasonRoomsFree, free))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}
	return reasons
}

func freeRooms(l model.Listing) int {
	n := 0
	for _, rt := range l.RoomTypes {
		if rt.Available > 0 {
			n += rt.Available
		}
	}
	return n
}
