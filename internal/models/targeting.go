package models

// Age bounds accepted by the ad platform.
const (
	MinAge = 18
	MaxAge = 65
)

// Custom pin radius bounds in kilometers.
const (
	MinPinRadiusKM = 1.0
	MaxPinRadiusKM = 500.0
)

// GeoLocation is a named targeting entry returned by location search.
// Locations are unique per draft by (Key, Type).
type GeoLocation struct {
	Key         string   `json:"key"`
	Type        string   `json:"type"` // country / region / city
	Name        string   `json:"name"`
	CountryCode string   `json:"country_code,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// CustomPin is a user-drawn map pin with a delivery radius.
type CustomPin struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKM float64 `json:"radius_km"`
	Name     string  `json:"name,omitempty"`
}

// ClampPinRadius forces a requested radius into the platform's accepted range.
func ClampPinRadius(r float64) float64 {
	if r < MinPinRadiusKM {
		return MinPinRadiusKM
	}
	if r > MaxPinRadiusKM {
		return MaxPinRadiusKM
	}
	return r
}

type Targeting struct {
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
	Genders   []string `json:"genders,omitempty"`   // empty = all
	Platforms []string `json:"platforms,omitempty"` // empty = automatic placements
	Interests []string `json:"interests,omitempty"`
}

// DefaultTargeting is the widest age range; it is what a fresh draft starts
// with so the targeting step never blocks on an unset range.
func DefaultTargeting() Targeting {
	return Targeting{AgeMin: MinAge, AgeMax: MaxAge}
}

func (t Targeting) AgeRangeValid() bool {
	return t.AgeMin >= MinAge && t.AgeMax <= MaxAge && t.AgeMin <= t.AgeMax
}
