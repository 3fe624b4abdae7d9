// Package navigation carries the menu selection over to the player view.
package navigation

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	paramClip     = "clip"
	paramSubtitle = "subs"
)

// HandOff is what the menu passes to the player: the clip index and the 1-based subtitle track, 0 for none
type HandOff struct {
	Clip     int
	Subtitle int
}

// Encode renders the hand-off as a query string
func (h HandOff) Encode() string {
	v := url.Values{}
	v.Set(paramClip, strconv.Itoa(h.Clip))
	if h.Subtitle > 0 {
		v.Set(paramSubtitle, strconv.Itoa(h.Subtitle))
	}
	return v.Encode()
}

// Parse reads a hand-off query string.  Missing or unreadable parameters are treated as absent and default to 0.
func Parse(query string) HandOff {
	// ParseQuery keeps every pair it could read even when it reports an error
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))

	h := HandOff{
		Clip:     intParam(values, paramClip),
		Subtitle: intParam(values, paramSubtitle),
	}
	if h.Subtitle < 0 {
		h.Subtitle = 0
	}
	return h
}

func intParam(values url.Values, key string) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil {
		return 0
	}
	return n
}
