package server

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// RemoteError is a CompletionError returned by the server.
type RemoteError struct {
	ID      string
	Message string
	Code    int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("request %s failed (code %d): %s", e.ID, e.Code, e.Message)
}

// Client talks to a server over a pair of streams, typically the stdin and
// stdout pipes of a `wordindex serve` process. Calls are serialized.
type Client struct {
	mu     sync.Mutex
	enc    *msgpack.Encoder
	out    *bufio.Writer
	dec    *msgpack.Decoder
	nextID int
}

// NewClient waits for the server's ready message on r.
func NewClient(r io.Reader, w io.Writer) (*Client, error) {
	out := bufio.NewWriter(w)
	c := &Client{
		enc: msgpack.NewEncoder(out),
		out: out,
		dec: msgpack.NewDecoder(r),
	}

	var ready StatusResponse
	if err := c.dec.Decode(&ready); err != nil {
		return nil, fmt.Errorf("read ready message: %w", err)
	}
	if ready.Status != "ready" {
		return nil, fmt.Errorf("unexpected greeting %q", ready.Status)
	}
	return c, nil
}

// Complete asks for up to limit suggestions for prefix. A zero limit uses the
// server's default.
func (c *Client) Complete(prefix string, limit int) (CompletionResponse, error) {
	var resp CompletionResponse
	err := c.call(Request{Action: ActionComplete, Prefix: prefix, Limit: limit}, &resp)
	return resp, err
}

// Insert adds a single word. A zero score uses the server's default.
func (c *Client) Insert(word string, score float64) error {
	var resp StatusResponse
	return c.call(Request{Action: ActionInsert, Word: word, Score: score}, &resp)
}

// Bulk sends many words in one request.
func (c *Client) Bulk(req Request) (BulkResponse, error) {
	var resp BulkResponse
	req.Action = ActionBulk
	err := c.call(req, &resp)
	return resp, err
}

// Stats fetches the index counters.
func (c *Client) Stats() (StatsResponse, error) {
	var resp StatsResponse
	err := c.call(Request{Action: ActionStats}, &resp)
	return resp, err
}

// Health checks that the server still answers.
func (c *Client) Health() error {
	var resp StatusResponse
	return c.call(Request{Action: ActionHealth}, &resp)
}

func (c *Client) call(req Request, resp any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req.ID = "req_" + strconv.Itoa(c.nextID)

	if err := c.enc.Encode(req); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	var raw msgpack.RawMessage
	if err := c.dec.Decode(&raw); err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var failed CompletionError
	if err := msgpack.Unmarshal(raw, &failed); err == nil && failed.Error != "" {
		return &RemoteError{ID: failed.ID, Message: failed.Error, Code: failed.Code}
	}
	if err := msgpack.Unmarshal(raw, resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
