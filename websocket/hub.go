package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var BroadcastReply = make(chan *models.ThreadReply)

// RunHub fans incoming replies out to every participant of the thread (its
// creator plus everyone who has replied), except the author.
func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case reply := <-BroadcastReply:
			participantIDs, err := threadParticipants(reply.ThreadID)
			if err != nil {
				log.Printf("Error fetching participants for thread %s: %v", reply.ThreadID, err)
				continue
			}

			clientsMu.RLock()
			for _, participantID := range participantIDs {
				if participantID == reply.UserID {
					continue
				}
				if conn, ok := clients[participantID]; ok {
					if err := conn.WriteJSON(reply); err != nil {
						log.Printf("Error sending reply to client %s: %v", participantID, err)
						conn.Close()
						clientsMu.RUnlock()
						clientsMu.Lock()
						delete(clients, participantID)
						clientsMu.Unlock()
						clientsMu.RLock()
					}
				}
			}
			clientsMu.RUnlock()
		}
	}
}

func threadParticipants(threadID uuid.UUID) ([]uuid.UUID, error) {
	var thread models.DiscussionThread
	if err := database.DB.First(&thread, "id = ?", threadID).Error; err != nil {
		return nil, err
	}

	var replierIDs []uuid.UUID
	if err := database.DB.Model(&models.ThreadReply{}).
		Where("thread_id = ?", threadID).
		Distinct().
		Pluck("user_id", &replierIDs).Error; err != nil {
		return nil, err
	}

	participants := []uuid.UUID{thread.CreatedByID}
	for _, id := range replierIDs {
		if id != thread.CreatedByID {
			participants = append(participants, id)
		}
	}
	return participants, nil
}
