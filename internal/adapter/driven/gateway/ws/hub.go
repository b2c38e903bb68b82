package ws

import (
	"context"

	"github.com/Wyydra/calling/internal/core/domain"
	"github.com/rs/zerolog/log"
)

const updateBuffer = 64

// implements port.SessionGateway
type Hub struct {
	clients    map[Client]bool
	updates    chan domain.SessionUpdate
	register   chan Client
	unregister chan Client
	quit       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		updates:    make(chan domain.SessionUpdate, updateBuffer),
		register:   make(chan Client),
		unregister: make(chan Client),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) NotifySessionChanged(ctx context.Context, update domain.SessionUpdate) error {
	select {
	case h.updates <- update:
	default:
		log.Warn().Str("session_id", update.SessionID.String()).Msg("Update channel full, dropping session update")
	}
	return nil
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			log.Info().Str("client_id", client.ID()).Str("session_id", client.SessionID().String()).Msg("Client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				log.Info().Str("client_id", client.ID()).Msg("Client unregistered")
			}

		case update := <-h.updates:
			for client := range h.clients {
				if client.SessionID() != update.SessionID {
					continue
				}
				if err := client.SendUpdate(update); err != nil {
					log.Error().Err(err).Str("client_id", client.ID()).Msg("Error sending session update")
					client.Close()
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.quit:
		c.Close()
	}
}

func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}
