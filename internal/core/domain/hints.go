package domain

import (
	"net/url"
	"strings"
)

const (
	ParamGroupID   = "groupId"
	ParamTeamsLink = "teamsLink"
	ParamRoomID    = "roomId"
)

// URLHints are the call locators found in the page URL when it was opened.
type URLHints struct {
	GroupID   string
	TeamsLink string
	RoomID    string
}

func HintsFromQuery(q url.Values) URLHints {
	return URLHints{
		GroupID:   strings.TrimSpace(q.Get(ParamGroupID)),
		TeamsLink: strings.TrimSpace(q.Get(ParamTeamsLink)),
		RoomID:    strings.TrimSpace(q.Get(ParamRoomID)),
	}
}

// JoiningExistingCall is true when the visitor followed a shared link.
func (h URLHints) JoiningExistingCall() bool {
	return h.GroupID != "" || h.TeamsLink != "" || h.RoomID != ""
}

// Encode renders the hints back into a query string without the leading "?".
func (h URLHints) Encode() string {
	var parts []string
	for _, p := range []struct{ key, value string }{
		{ParamGroupID, h.GroupID},
		{ParamTeamsLink, h.TeamsLink},
		{ParamRoomID, h.RoomID},
	} {
		if p.value != "" {
			parts = append(parts, p.key+"="+encodeURIComponent(p.value))
		}
	}
	return strings.Join(parts, "&")
}
