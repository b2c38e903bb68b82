package domain

import (
	"net/url"
	"strings"
)

type TargetKind string

const (
	TargetGroupCall     TargetKind = "group_call"
	TargetTeamsMeeting  TargetKind = "teams_meeting"
	TargetRoom          TargetKind = "room"
	TargetDirectCallees TargetKind = "direct_callees"
)

// CallTarget is what a session joins or dials. Exactly one implementation is
// active per call attempt.
type CallTarget interface {
	Kind() TargetKind
	isCallTarget()
}

type GroupCall struct {
	GroupID string
}

type TeamsMeeting struct {
	MeetingLink string
}

type Room struct {
	RoomID string
}

type DirectCallees struct {
	Identities []Identity
}

func (GroupCall) Kind() TargetKind     { return TargetGroupCall }
func (TeamsMeeting) Kind() TargetKind  { return TargetTeamsMeeting }
func (Room) Kind() TargetKind          { return TargetRoom }
func (DirectCallees) Kind() TargetKind { return TargetDirectCallees }

func (GroupCall) isCallTarget()     {}
func (TeamsMeeting) isCallTarget()  {}
func (Room) isCallTarget()          {}
func (DirectCallees) isCallTarget() {}

// JoinParams renders the shareable query string for a locator target.
// DirectCallees have nothing to share and report false.
func JoinParams(t CallTarget) (string, bool) {
	switch t := t.(type) {
	case TeamsMeeting:
		return "?" + ParamTeamsLink + "=" + encodeURIComponent(t.MeetingLink), true
	case Room:
		return "?" + ParamRoomID + "=" + encodeURIComponent(t.RoomID), true
	case GroupCall:
		return "?" + ParamGroupID + "=" + encodeURIComponent(t.GroupID), true
	default:
		return "", false
	}
}

// url.QueryEscape writes spaces as "+" and escapes !*'(), which browsers'
// encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%2A", "*",
	"%27", "'",
	"%28", "(",
	"%29", ")",
)

func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
