package service

import (
	"context"
	"fmt"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/Wyydra/calling/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Resolution is the outcome of a home form submission.
type Resolution struct {
	Target domain.CallTarget
	// JoinURL is the shareable path, empty for callee targets and for
	// visitors who arrived on a shared link.
	JoinURL string
}

type CallService struct {
	rooms   port.RoomProvisioner
	members port.RoomMembership
	metrics port.Metrics
}

func NewCallService(rooms port.RoomProvisioner, members port.RoomMembership, metrics port.Metrics) *CallService {
	return &CallService{
		rooms:   rooms,
		members: members,
		metrics: metrics,
	}
}

// Resolve turns a submission into exactly one call target. user is the
// session identity and may be the zero value if credentials are not in yet.
func (s *CallService) Resolve(ctx context.Context, user domain.Identity, details domain.CallDetails, hints domain.URLHints) (Resolution, error) {
	var target domain.CallTarget

	switch {
	case details.Option == domain.OptionRooms:
		if hints.RoomID != "" {
			target = domain.Room{RoomID: hints.RoomID}
		} else if details.Locator != nil {
			target = details.Locator
		} else {
			return Resolution{}, domain.ErrMissingLocator
		}

	case details.Option.Direct():
		callees := make([]domain.Identity, 0, len(details.Callees))
		for _, raw := range details.Callees {
			callees = append(callees, domain.ParseIdentity(raw))
		}
		if len(callees) == 0 {
			return Resolution{}, domain.ErrNoCallees
		}
		target = domain.DirectCallees{Identities: callees}

	case details.Option == domain.OptionStartRooms:
		roomID, err := s.provisionRoom(ctx)
		if err != nil {
			return Resolution{}, err
		}
		target = domain.Room{RoomID: roomID}

	default:
		target = defaultTarget(details, hints)
	}

	if room, ok := target.(domain.Room); ok {
		if !user.IsCommunicationUser() {
			return Resolution{}, domain.ErrInvalidIdentity
		}
		if err := s.members.AddUserToRoom(ctx, user.RawID, room.RoomID, details.Role); err != nil {
			return Resolution{}, fmt.Errorf("add user to room %s: %w", room.RoomID, err)
		}
		log.Info().Str("room_id", room.RoomID).Str("role", string(details.Role)).Msg("User added to room")
	}

	res := Resolution{Target: target}
	if !hints.JoiningExistingCall() {
		if params, ok := domain.JoinParams(target); ok {
			res.JoinURL = "/" + params
		}
	}

	s.metrics.Resolved(target.Kind())
	return res, nil
}

// defaultTarget prefers whatever points at an existing call so shared links
// join rather than create.
func defaultTarget(details domain.CallDetails, hints domain.URLHints) domain.CallTarget {
	switch {
	case details.Locator != nil:
		return details.Locator
	case hints.RoomID != "":
		return domain.Room{RoomID: hints.RoomID}
	case hints.TeamsLink != "":
		return domain.TeamsMeeting{MeetingLink: hints.TeamsLink}
	case hints.GroupID != "":
		return domain.GroupCall{GroupID: hints.GroupID}
	default:
		return domain.GroupCall{GroupID: domain.NewGroupID()}
	}
}

func (s *CallService) provisionRoom(ctx context.Context) (string, error) {
	roomID, err := s.rooms.CreateRoom(ctx)
	if err == nil && roomID == "" {
		err = fmt.Errorf("empty room id")
	}
	if err != nil {
		s.metrics.RoomProvisioned(false)
		log.Err(err).Msg("Room provisioning failed")
		return "", fmt.Errorf("%w: %w", domain.ErrRoomProvisioning, err)
	}
	s.metrics.RoomProvisioned(true)
	log.Info().Str("room_id", roomID).Msg("Room created")
	return roomID, nil
}
