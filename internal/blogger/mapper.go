package blogger

import (
	"strconv"
	"strings"
)

// setField applies one raw CSV value to a record under construction.
type setField func(r *Record, value string)

// headerFields maps a normalized (lowercased, trimmed) header name to
// its setter. Each attribute has a long and a short synonym; headers
// not present here are ignored.
var headerFields = map[string]setField{
	"name":      setName,
	"full_name": setName,

	"handle":   setHandle,
	"username": setHandle,

	"bio":         setBio,
	"description": setBio,

	"gender": setGender,
	"sex":    setGender,

	"topics":     setTopics,
	"categories": setTopics,

	"post_price": setPostPrice,
	"price_post": setPostPrice,

	"story_price": setStoryPrice,
	"price_story": setStoryPrice,

	"barter":           setBarter,
	"barter_available": setBarter,

	"mart":           setMart,
	"mart_available": setMart,

	"work_conditions": setWorkConditions,
	"conditions":      setWorkConditions,

	"restricted_topics": setRestrictedTopics,
	"forbidden_topics":  setRestrictedTopics,
}

func init() {
	// Platform metric columns follow a fixed pattern:
	// <platform>_<field> with a short platform alias (ig, yt, tg, tt).
	aliases := map[Platform]string{
		PlatformInstagram: "ig",
		PlatformYouTube:   "yt",
		PlatformTelegram:  "tg",
		PlatformTikTok:    "tt",
	}
	for _, p := range AllPlatforms {
		p := p
		fields := map[string]setField{
			"followers":   func(r *Record, v string) { r.metric(p).Followers = parseIntValue(v) },
			"engagement":  func(r *Record, v string) { r.metric(p).EngagementRate = parseFloatValue(v) },
			"post_reach":  func(r *Record, v string) { r.metric(p).PostReach = parseIntValue(v) },
			"story_reach": func(r *Record, v string) { r.metric(p).StoryReach = parseIntValue(v) },
		}
		for name, set := range fields {
			headerFields[string(p)+"_"+name] = set
			headerFields[aliases[p]+"_"+name] = set
		}
	}
}

func setName(r *Record, v string)             { r.Name = v }
func setHandle(r *Record, v string)           { r.Handle = v }
func setBio(r *Record, v string)              { r.Bio = v }
func setGender(r *Record, v string)           { r.Gender = v }
func setWorkConditions(r *Record, v string)   { r.WorkConditions = v }
func setTopics(r *Record, v string)           { r.Topics = splitMulti(v) }
func setRestrictedTopics(r *Record, v string) { r.RestrictedTopics = splitMulti(v) }

func setPostPrice(r *Record, v string) {
	price := parseFloatValue(v)
	r.PostPrice = &price
}

func setStoryPrice(r *Record, v string) {
	price := parseFloatValue(v)
	r.StoryPrice = &price
}

func setBarter(r *Record, v string) { r.BarterAvailable = isTruthy(v) }
func setMart(r *Record, v string)   { r.MartAvailable = isTruthy(v) }

// truthyTokens are the accepted spellings for a true boolean cell,
// compared case-insensitively. Anything else is false.
var truthyTokens = map[string]bool{
	"true": true,
	"1":    true,
	"да":   true,
	"yes":  true,
}

func isTruthy(v string) bool {
	return truthyTokens[strings.ToLower(v)]
}

// splitMulti splits a multi-value cell on the inner ; separator,
// trimming each piece and dropping empties while preserving order.
func splitMulti(v string) []string {
	parts := strings.Split(v, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseIntValue parses an integer cell, falling back to 0 on anything
// unparseable. Decimal values are truncated rather than rejected.
func parseIntValue(v string) int {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

// parseFloatValue parses a numeric cell, falling back to 0.
func parseFloatValue(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// MapRows converts tokenized CSV rows (header row first) into creator
// records.
//
// Header names are lowercased and trimmed once up front. A data row is
// silently skipped when it has fewer fields than the header, and an
// empty cell never overwrites a field. A record is kept only when both
// name and handle are non-empty after mapping; rows failing that check
// vanish without an error entry. The invisible drop matches the
// behavior the existing spreadsheets were built against.
func MapRows(rows [][]string) []*Record {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var records []*Record
	for _, row := range rows[1:] {
		if len(row) < len(headers) {
			continue
		}

		rec := &Record{}
		for i, header := range headers {
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			set, ok := headerFields[header]
			if !ok {
				continue
			}
			set(rec, value)
		}

		if rec.Name != "" && rec.Handle != "" {
			records = append(records, rec)
		}
	}
	return records
}
