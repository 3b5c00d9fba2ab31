package browser

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// cdpConn is a minimal DevTools protocol client: numbered requests
// over one websocket, responses matched back by id. Protocol events
// are discarded; the capture pipeline is strictly request/response.
type cdpConn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan cdpMessage
	closed  bool
	readErr error
}

type cdpMessage struct {
	ID        int64           `json:"id,omitempty"`
	Method    string          `json:"method,omitempty"`
	Params    interface{}     `json:"params,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *cdpError       `json:"error,omitempty"`
}

type cdpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func dialCDP(wsURL string) (*cdpConn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial devtools %s: %w", wsURL, err)
	}
	c := &cdpConn{
		ws:      ws,
		pending: make(map[int64]chan cdpMessage),
	}
	go c.readLoop()
	return c, nil
}

func (c *cdpConn) readLoop() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.failAll(err)
			return
		}
		var msg cdpMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.ID == 0 {
			// Unsolicited protocol event.
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[msg.ID]
		delete(c.pending, msg.ID)
		c.mu.Unlock()
		if ok {
			ch <- msg
		}
	}
}

func (c *cdpConn) failAll(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.readErr = err
	for id, ch := range c.pending {
		delete(c.pending, id)
		close(ch)
	}
}

// call issues one protocol command and blocks until its response
// arrives. No timeout: a hung renderer hangs the run.
func (c *cdpConn) call(method string, params interface{}, sessionID string, result interface{}) error {
	c.mu.Lock()
	if c.closed {
		err := c.readErr
		c.mu.Unlock()
		return fmt.Errorf("devtools connection closed: %w", err)
	}
	c.nextID++
	id := c.nextID
	ch := make(chan cdpMessage, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	req := cdpMessage{ID: id, Method: method, Params: params, SessionID: sessionID}
	c.writeMu.Lock()
	err := c.ws.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", method, err)
	}

	msg, ok := <-ch
	if !ok {
		return fmt.Errorf("%s: connection lost: %w", method, c.readErr)
	}
	if msg.Error != nil {
		return fmt.Errorf("%s: %s (code %d)", method, msg.Error.Message, msg.Error.Code)
	}
	if result != nil && len(msg.Result) > 0 {
		if err := json.Unmarshal(msg.Result, result); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}
	return nil
}

// post issues a command without waiting for its response. Used during
// teardown, where the browser may be past answering.
func (c *cdpConn) post(method string) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.mu.Unlock()

	c.writeMu.Lock()
	_ = c.ws.WriteJSON(cdpMessage{ID: id, Method: method})
	c.writeMu.Unlock()
}

func (c *cdpConn) Close() error {
	c.failAll(fmt.Errorf("closed"))
	return c.ws.Close()
}
