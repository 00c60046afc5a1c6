package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/session"
)

// ErrConnectionClosed is returned when sending on a closed connection
var ErrConnectionClosed = errors.New("connection closed")

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Connection represents a WebSocket connection to a client. Each
// connection owns a session.Recomputer, so selection updates from the
// client are sequenced and only fresh results reach the wire.
type Connection struct {
	conn       *websocket.Conn
	send       chan *Message
	recomputer *session.Recomputer
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	closeOnce  sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, recomputer *session.Recomputer, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:       conn,
		send:       make(chan *Message, 256),
		recomputer: recomputer,
		logger:     logger.WithPrefix("conn"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.runRecomputer()
	go c.forwardResults()
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// runRecomputer drives this connection's recomputer until the connection
// closes.
func (c *Connection) runRecomputer() {
	if err := c.recomputer.Run(c.ctx); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("recomputer stopped", "error", err)
	}
}

// forwardResults pushes fresh computation results to the client
func (c *Connection) forwardResults() {
	for {
		select {
		case res := <-c.recomputer.Results():
			if res.Err != nil {
				c.sendError("compute_failed", res.Err.Error())
				continue
			}

			probabilities := make(map[string]float64, evaluator.NumCategories)
			for _, category := range evaluator.Categories() {
				probabilities[category.String()] = res.Distribution[category]
			}

			msg, err := NewMessage(MessageTypeResult, ResultData{
				Seq:           res.Seq,
				Hole:          cardCodes(res.Request.Hole),
				Board:         cardCodes(res.Request.Board),
				Pot:           res.Request.Pot,
				Probabilities: probabilities,
				EV:            res.EV,
			})
			if err != nil {
				c.logger.Error("Failed to encode result", "error", err)
				continue
			}
			_ = c.SendMessage(msg)

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeSelect:
		var data SelectData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse selection")
			return
		}
		c.handleSelect(data)
	default:
		c.sendError("unknown_type", "Unknown message type: "+string(msg.Type))
	}
}

// handleSelect validates a selection snapshot and submits it for
// recomputation. Pot text is coerced, never rejected; malformed cards are.
func (c *Connection) handleSelect(data SelectData) {
	hole, err := deck.ParseCards(data.Hole)
	if err != nil {
		c.sendError("invalid_cards", "hole: "+err.Error())
		return
	}
	if len(hole) != 2 {
		c.sendError("invalid_cards", "need exactly 2 hole cards")
		return
	}

	var board []deck.Card
	if data.Board != "" {
		board, err = deck.ParseCards(data.Board)
		if err != nil {
			c.sendError("invalid_cards", "board: "+err.Error())
			return
		}
		if len(board) > 5 {
			c.sendError("invalid_cards", "board cannot have more than 5 cards")
			return
		}
	}

	if _, err := deck.NewCardSet(append(append([]deck.Card{}, hole...), board...)); err != nil {
		c.sendError("duplicate_card", err.Error())
		return
	}

	c.recomputer.Submit(session.Request{
		Hole:  hole,
		Board: board,
		Pot:   session.ParsePot(data.Pot),
	})
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("Failed to encode error message", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

func cardCodes(cards []deck.Card) string {
	var s string
	for _, card := range cards {
		s += card.Code()
	}
	return s
}
