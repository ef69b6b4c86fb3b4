package blogger

import (
	"math"
	"strings"
)

// Listing is a denormalized directory entry: one creator with profile
// fields and the aggregate follower count across active platforms.
type Listing struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Handle     string   `json:"handle"`
	AvatarURL  string   `json:"avatar_url,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	Topics     []string `json:"topics"`
	Followers  int      `json:"followers"`
	PostPrice  *float64 `json:"post_price"`
	StoryPrice *float64 `json:"story_price"`
	Barter     bool     `json:"barter_available"`
	Mart       bool     `json:"mart_available"`
}

// Criteria describes directory filter inputs. Zero-valued criteria are
// vacuously true; follower bounds are in thousands, matching the
// sidebar inputs.
type Criteria struct {
	Search        string
	Gender        string
	Topics        []string
	MinFollowers  *float64 // thousands
	MaxFollowers  *float64 // thousands
	MinPostPrice  *float64
	MaxPostPrice  *float64
	MinStoryPrice *float64
	MaxStoryPrice *float64
	Barter        bool
	Mart          bool
}

// Filter returns the subsequence of listings matching every present
// criterion, preserving the original order.
func Filter(listings []Listing, c Criteria) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if c.matches(l) {
			out = append(out, l)
		}
	}
	return out
}

func (c Criteria) matches(l Listing) bool {
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		name := strings.ToLower(l.Name)
		handle := strings.ToLower(l.Handle)
		if !strings.Contains(name, term) && !strings.Contains(handle, term) {
			return false
		}
	}

	if c.Gender != "" && l.Gender != c.Gender {
		return false
	}

	if len(c.Topics) > 0 {
		if !hasOverlap(l.Topics, c.Topics) {
			return false
		}
	}

	if c.MinFollowers != nil || c.MaxFollowers != nil {
		min, max := 0.0, math.Inf(1)
		if c.MinFollowers != nil {
			min = *c.MinFollowers * 1000
		}
		if c.MaxFollowers != nil {
			max = *c.MaxFollowers * 1000
		}
		followers := float64(l.Followers)
		if followers < min || followers > max {
			return false
		}
	}

	// A record without a price passes price bounds: the bound
	// constrains only records that state one.
	if c.MinPostPrice != nil && l.PostPrice != nil && *l.PostPrice < *c.MinPostPrice {
		return false
	}
	if c.MaxPostPrice != nil && l.PostPrice != nil && *l.PostPrice > *c.MaxPostPrice {
		return false
	}
	if c.MinStoryPrice != nil && l.StoryPrice != nil && *l.StoryPrice < *c.MinStoryPrice {
		return false
	}
	if c.MaxStoryPrice != nil && l.StoryPrice != nil && *l.StoryPrice > *c.MaxStoryPrice {
		return false
	}

	// The checkboxes only constrain when set: unchecked means "either".
	if c.Barter && !l.Barter {
		return false
	}
	if c.Mart && !l.Mart {
		return false
	}

	return true
}

func hasOverlap(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
