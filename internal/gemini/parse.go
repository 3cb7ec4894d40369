package gemini

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	jsonObjectRegex = regexp.MustCompile(`\{[\s\S]*\}`)
	percentRegex    = regexp.MustCompile(`%?(\d+(?:\.\d+)?)`)
)

// extractJSON returns the outermost {...} span of text. Models like to wrap
// their JSON in markdown fences or prose.
func extractJSON(text string) (string, bool) {
	match := jsonObjectRegex.FindString(text)
	return match, match != ""
}

// decodeJSONObject finds the JSON object in text and decodes it into v.
func decodeJSONObject(text string, v any) bool {
	raw, ok := extractJSON(text)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

// normalizeBodyFat turns "%18", "18.5" or a range like "%18-22" into a
// number. A range yields its mean, rounded to one decimal.
func normalizeBodyFat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		if number <= 0 {
			return nil
		}
		return &number
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil
	}
	return parseBodyFatText(text)
}

func parseBodyFatText(text string) *float64 {
	matches := percentRegex.FindAllStringSubmatch(strings.TrimSpace(text), -1)
	if len(matches) == 0 {
		return nil
	}

	first, err := strconv.ParseFloat(matches[0][1], 64)
	if err != nil {
		return nil
	}
	if len(matches) == 1 {
		return &first
	}

	second, err := strconv.ParseFloat(matches[1][1], 64)
	if err != nil {
		return nil
	}
	mean := math.RoundToEven((first+second)/2*10) / 10
	return &mean
}
