package domain

import "strings"

type CallOption string

const (
	OptionACSCall      CallOption = "ACSCall"
	OptionTeamsMeeting CallOption = "TeamsMeeting"
	OptionRooms        CallOption = "Rooms"      // join an existing room
	OptionStartRooms   CallOption = "StartRooms" // provision a new room
	OptionTeamsAdhoc   CallOption = "TeamsAdhoc" // dial Teams users directly
	OptionOneToN       CallOption = "1:N"        // dial ACS or phone identities directly
)

func ParseCallOption(s string) (CallOption, error) {
	switch o := CallOption(strings.TrimSpace(s)); o {
	case OptionACSCall, OptionTeamsMeeting, OptionRooms, OptionStartRooms, OptionTeamsAdhoc, OptionOneToN:
		return o, nil
	case "":
		return OptionACSCall, nil
	default:
		return "", ErrUnknownOption
	}
}

// Direct options dial callees instead of joining a locator.
func (o CallOption) Direct() bool {
	return o == OptionTeamsAdhoc || o == OptionOneToN
}

// CreatesCall reports options hidden from visitors who arrived on a shared link.
func (o CallOption) CreatesCall() bool {
	return o == OptionStartRooms || o.Direct()
}

type Role string

const (
	RolePresenter Role = "Presenter"
	RoleAttendee  Role = "Attendee"
	RoleConsumer  Role = "Consumer"
)

func ParseRole(s string) Role {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAttendee, RoleConsumer:
		return r
	default:
		return RolePresenter
	}
}

// CallDetails is what the home form submits.
type CallDetails struct {
	DisplayName string
	Option      CallOption
	Locator     CallTarget // optional, typed by the option
	Callees     []string
	Role        Role
}

// NewCallDetails builds details from raw form values. The locator text is
// typed according to the option; direct options never carry one.
func NewCallDetails(displayName string, option CallOption, locator string, callees []string, role Role) (CallDetails, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return CallDetails{}, ErrEmptyDisplayName
	}
	d := CallDetails{
		DisplayName: displayName,
		Option:      option,
		Role:        role,
	}
	if locator = strings.TrimSpace(locator); locator != "" {
		switch option {
		case OptionTeamsMeeting:
			d.Locator = TeamsMeeting{MeetingLink: locator}
		case OptionRooms:
			d.Locator = Room{RoomID: locator}
		case OptionACSCall:
			d.Locator = GroupCall{GroupID: locator}
		}
	}
	for _, c := range callees {
		if c = strings.TrimSpace(c); c != "" {
			d.Callees = append(d.Callees, c)
		}
	}
	return d, nil
}
