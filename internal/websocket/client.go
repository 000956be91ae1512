package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	Conn    *websocket.Conn
	Message chan []byte
	ID      string
	done    chan struct{} // Signal for coordinating goroutine shutdown

	connMu sync.Mutex // Serializes writes on Conn (frames and pings)

	sendMu   sync.Mutex // Guards Message channel state; never held across I/O
	isClosed bool
}

func newWSClient(conn *websocket.Conn, id string) *WSClient {
	return &WSClient{
		Conn:    conn,
		Message: make(chan []byte, 16),
		ID:      id,
		done:    make(chan struct{}),
	}
}

// trySend enqueues one serialized frame without blocking. It reports false
// when the client is closed or its buffer is full, so a stalled connection
// never delays delivery to the rest.
func (cl *WSClient) trySend(payload []byte) bool {
	cl.sendMu.Lock()
	defer cl.sendMu.Unlock()

	if cl.isClosed {
		return false
	}

	select {
	case cl.Message <- payload:
		return true
	default:
		return false
	}
}

// markClosed flips the closed flag and closes the outbound channel exactly
// once. Safe against concurrent trySend calls.
func (cl *WSClient) markClosed() {
	cl.sendMu.Lock()
	defer cl.sendMu.Unlock()

	if cl.isClosed {
		return
	}
	cl.isClosed = true
	close(cl.Message)
}

func (cl *WSClient) closed() bool {
	cl.sendMu.Lock()
	defer cl.sendMu.Unlock()
	return cl.isClosed
}

func (cl *WSClient) keepAlive() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			if cl.closed() {
				return
			}
			cl.connMu.Lock()
			err := cl.Conn.WriteMessage(websocket.PingMessage, nil)
			cl.connMu.Unlock()

			if err != nil {
				log.Printf("Ping error for client %s: %v", cl.ID, err)
				return
			}
		}
	}
}

func (cl *WSClient) writeMessage() {
	defer cl.Conn.Close()

	for {
		select {
		case <-cl.done:
			return
		case payload, ok := <-cl.Message:
			if !ok {
				return
			}

			cl.connMu.Lock()
			err := cl.Conn.WriteMessage(websocket.TextMessage, payload)
			cl.connMu.Unlock()

			if err != nil {
				log.Printf("Error sending message to client %s: %v", cl.ID, err)
				return
			}
		}
	}
}
