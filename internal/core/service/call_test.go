package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var acsUser = domain.ParseIdentity("8:acs:resource_user-1")

func details(t *testing.T, option domain.CallOption, locator string, callees ...string) domain.CallDetails {
	t.Helper()
	d, err := domain.NewCallDetails("Ada", option, locator, callees, domain.RoleAttendee)
	require.NoError(t, err)
	return d
}

func newCallService(rooms *fakeRooms) (*CallService, *fakeMetrics) {
	m := newFakeMetrics()
	return NewCallService(rooms, rooms, m), m
}

func TestResolve_FreshVisitorGetsNewGroupCall(t *testing.T) {
	svc, m := newCallService(&fakeRooms{})

	res, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionACSCall, ""), domain.URLHints{})
	require.NoError(t, err)

	group, ok := res.Target.(domain.GroupCall)
	require.True(t, ok, "expected a group call, got %T", res.Target)
	assert.NotEmpty(t, group.GroupID)
	assert.Equal(t, "/?groupId="+group.GroupID, res.JoinURL)
	assert.Equal(t, 1, m.resolved[domain.TargetGroupCall])
}

func TestResolve_GeneratedGroupIDsDiffer(t *testing.T) {
	svc, _ := newCallService(&fakeRooms{})
	a, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionACSCall, ""), domain.URLHints{})
	require.NoError(t, err)
	b, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionACSCall, ""), domain.URLHints{})
	require.NoError(t, err)
	assert.NotEqual(t, a.Target, b.Target)
}

func TestResolve_Precedence(t *testing.T) {
	rooms := &fakeRooms{}
	svc, _ := newCallService(rooms)
	all := domain.URLHints{GroupID: "g-url", TeamsLink: "https://teams/url", RoomID: "r-url"}

	tests := []struct {
		name    string
		details domain.CallDetails
		hints   domain.URLHints
		want    domain.CallTarget
	}{
		{"submitted locator beats every hint", details(t, domain.OptionTeamsMeeting, "https://teams/form"), all, domain.TeamsMeeting{MeetingLink: "https://teams/form"}},
		{"room hint beats teams and group", details(t, domain.OptionACSCall, ""), all, domain.Room{RoomID: "r-url"}},
		{"teams hint beats group", details(t, domain.OptionACSCall, ""), domain.URLHints{GroupID: "g-url", TeamsLink: "https://teams/url"}, domain.TeamsMeeting{MeetingLink: "https://teams/url"}},
		{"group hint", details(t, domain.OptionACSCall, ""), domain.URLHints{GroupID: "g-url"}, domain.GroupCall{GroupID: "g-url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Resolve(context.Background(), acsUser, tt.details, tt.hints)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Target)
			assert.Empty(t, res.JoinURL, "joining an existing call never rewrites the URL")
		})
	}
}

func TestResolve_JoinRoomUsesURLRoomOverSubmittedLocator(t *testing.T) {
	rooms := &fakeRooms{}
	svc, _ := newCallService(rooms)

	res, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionRooms, "r-form"), domain.URLHints{RoomID: "R2"})
	require.NoError(t, err)
	assert.Equal(t, domain.Room{RoomID: "R2"}, res.Target)
	assert.Equal(t, []addedUser{{acsUser.RawID, "R2", domain.RoleAttendee}}, rooms.addedUsers())
}

func TestResolve_JoinRoomFallsBackToSubmittedLocator(t *testing.T) {
	rooms := &fakeRooms{}
	svc, _ := newCallService(rooms)

	res, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionRooms, "r-form"), domain.URLHints{GroupID: "g"})
	require.NoError(t, err)
	assert.Equal(t, domain.Room{RoomID: "r-form"}, res.Target)
}

func TestResolve_JoinRoomWithoutAnyRoom(t *testing.T) {
	svc, m := newCallService(&fakeRooms{})
	_, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionRooms, ""), domain.URLHints{})
	assert.ErrorIs(t, err, domain.ErrMissingLocator)
	assert.Zero(t, m.resolved[domain.TargetRoom])
}

func TestResolve_DirectCallDiscardsLocator(t *testing.T) {
	svc, _ := newCallService(&fakeRooms{})

	res, err := svc.Resolve(context.Background(), acsUser,
		details(t, domain.OptionTeamsAdhoc, "", "8:orgid:a", "8:orgid:b"),
		domain.URLHints{})
	require.NoError(t, err)

	callees, ok := res.Target.(domain.DirectCallees)
	require.True(t, ok, "expected direct callees, got %T", res.Target)
	assert.Equal(t, []domain.Identity{
		{Kind: domain.KindTeamsUser, RawID: "8:orgid:a"},
		{Kind: domain.KindTeamsUser, RawID: "8:orgid:b"},
	}, callees.Identities)
	assert.Empty(t, res.JoinURL)
}

func TestResolve_DirectCallIgnoresURLHints(t *testing.T) {
	svc, _ := newCallService(&fakeRooms{})
	res, err := svc.Resolve(context.Background(), acsUser,
		details(t, domain.OptionOneToN, "", "4:+15551234567"),
		domain.URLHints{GroupID: "g", RoomID: "r"})
	require.NoError(t, err)
	assert.Equal(t, domain.TargetDirectCallees, res.Target.Kind())
}

func TestResolve_DirectCallNeedsCallees(t *testing.T) {
	svc, _ := newCallService(&fakeRooms{})
	_, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionTeamsAdhoc, ""), domain.URLHints{})
	assert.ErrorIs(t, err, domain.ErrNoCallees)
}

func TestResolve_StartRoomProvisionsAndRegisters(t *testing.T) {
	rooms := &fakeRooms{roomID: "R 1"}
	svc, m := newCallService(rooms)

	res, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionStartRooms, ""), domain.URLHints{})
	require.NoError(t, err)

	assert.Equal(t, domain.Room{RoomID: "R 1"}, res.Target)
	assert.Equal(t, "/?roomId=R%201", res.JoinURL)
	assert.Equal(t, []addedUser{{acsUser.RawID, "R 1", domain.RoleAttendee}}, rooms.addedUsers())
	assert.Equal(t, 1, m.rooms[true])
}

func TestResolve_StartRoomFailureShortCircuits(t *testing.T) {
	rooms := &fakeRooms{createErr: errors.New("http 500: boom")}
	svc, m := newCallService(rooms)

	_, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionStartRooms, ""), domain.URLHints{})
	require.ErrorIs(t, err, domain.ErrRoomProvisioning)
	assert.True(t, strings.Contains(err.Error(), "boom"))
	assert.Empty(t, rooms.addedUsers())
	assert.Equal(t, 1, m.rooms[false])
}

func TestResolve_StartRoomEmptyIDIsAFailure(t *testing.T) {
	svc, _ := newCallService(&fakeRooms{roomID: ""})
	_, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionStartRooms, ""), domain.URLHints{})
	assert.ErrorIs(t, err, domain.ErrRoomProvisioning)
}

func TestResolve_RoomRequiresCommunicationUser(t *testing.T) {
	for name, user := range map[string]domain.Identity{
		"teams user": domain.ParseIdentity("8:orgid:x"),
		"unknown":    domain.ParseIdentity("who"),
		"none yet":   {},
	} {
		t.Run(name, func(t *testing.T) {
			rooms := &fakeRooms{}
			svc, _ := newCallService(rooms)
			_, err := svc.Resolve(context.Background(), user, details(t, domain.OptionRooms, ""), domain.URLHints{RoomID: "R"})
			assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
			assert.Empty(t, rooms.addedUsers())
		})
	}
}

func TestResolve_MembershipFailurePropagates(t *testing.T) {
	rooms := &fakeRooms{addErr: errors.New("forbidden")}
	svc, _ := newCallService(rooms)
	_, err := svc.Resolve(context.Background(), acsUser, details(t, domain.OptionRooms, "r"), domain.URLHints{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add user to room r")
}

func TestResolve_NonRoomTargetsDoNotNeedIdentity(t *testing.T) {
	svc, _ := newCallService(&fakeRooms{})
	res, err := svc.Resolve(context.Background(), domain.Identity{}, details(t, domain.OptionTeamsMeeting, "https://teams/x"), domain.URLHints{})
	require.NoError(t, err)
	assert.Equal(t, "/?teamsLink=https%3A%2F%2Fteams%2Fx", res.JoinURL)
}
