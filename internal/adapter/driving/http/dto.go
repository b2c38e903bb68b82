package http

import "github.com/Wyydra/calling/internal/core/domain"

// locatorDTO mirrors the SDK's call adapter locator shapes; only one field is set.
type locatorDTO struct {
	GroupID     string `json:"groupId,omitempty"`
	MeetingLink string `json:"meetingLink,omitempty"`
	RoomID      string `json:"roomId,omitempty"`
}

type handoffDTO struct {
	Token       string      `json:"token"`
	UserID      string      `json:"userId"`
	DisplayName string      `json:"displayName"`
	Locator     *locatorDTO `json:"callLocator,omitempty"`
	Callees     []string    `json:"targetCallees,omitempty"`
}

type sessionDTO struct {
	Page                string      `json:"page"`
	View                string      `json:"view"`
	Title               string      `json:"title"`
	JoiningExistingCall bool        `json:"joiningExistingCall"`
	CredentialsReady    bool        `json:"credentialsReady"`
	CredentialsFailed   bool        `json:"credentialsFailed"`
	JoinURL             string      `json:"joinUrl,omitempty"`
	Handoff             *handoffDTO `json:"handoff,omitempty"`
}

func newHandoffDTO(h *domain.Handoff) *handoffDTO {
	if h == nil {
		return nil
	}
	dto := &handoffDTO{
		Token:       h.Token,
		UserID:      h.User.RawID,
		DisplayName: h.DisplayName,
	}
	switch t := h.Target.(type) {
	case domain.GroupCall:
		dto.Locator = &locatorDTO{GroupID: t.GroupID}
	case domain.TeamsMeeting:
		dto.Locator = &locatorDTO{MeetingLink: t.MeetingLink}
	case domain.Room:
		dto.Locator = &locatorDTO{RoomID: t.RoomID}
	case domain.DirectCallees:
		for _, id := range t.Identities {
			dto.Callees = append(dto.Callees, id.RawID)
		}
	}
	return dto
}

func newSessionDTO(snap domain.SessionSnapshot, view domain.View) sessionDTO {
	return sessionDTO{
		Page:                string(snap.Page),
		View:                string(view.Kind),
		Title:               view.Title,
		JoiningExistingCall: view.JoiningExistingCall,
		CredentialsReady:    snap.Credentials != nil,
		CredentialsFailed:   snap.CredentialsFailed,
		JoinURL:             snap.JoinURL,
		Handoff:             newHandoffDTO(view.Handoff),
	}
}
