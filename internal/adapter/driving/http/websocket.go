package http

import (
	"net/http"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WSClient struct {
	id        string
	sessionID domain.SessionID
	conn      *websocket.Conn
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) SessionID() domain.SessionID {
	return c.sessionID
}

func (c *WSClient) SendUpdate(update domain.SessionUpdate) error {
	type updateDTO struct {
		Event             string `json:"event"`
		Page              string `json:"page"`
		CredentialsReady  bool   `json:"credentialsReady"`
		CredentialsFailed bool   `json:"credentialsFailed"`
		JoinURL           string `json:"joinUrl,omitempty"`
	}

	return c.conn.WriteJSON(updateDTO{
		Event:             "session_update",
		Page:              string(update.Page),
		CredentialsReady:  update.CredentialsReady,
		CredentialsFailed: update.CredentialsFailed,
		JoinURL:           update.JoinURL,
	})
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// ServeWS subscribes the tab to its session's updates. Incoming frames are
// read only to notice the close.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sess, err := h.existingSession(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := &WSClient{
		id:        uuid.New().String(),
		sessionID: sess.ID,
		conn:      conn,
	}

	l := log.With().Str("client_id", client.id).Str("session_id", sess.ID.String()).Logger()
	l.Info().Msg("New client connected")

	h.Hub.Register(client)

	defer func() {
		l.Info().Msg("Client disconnected")
		h.Hub.Unregister(client)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}
	}
}
