// Package feed streams incremental table updates into a running viewer
// over a websocket, so the graph follows the collecting application live.
package feed

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rdvisser/socionet/pkg/vistable"
)

// Frame is one update message: a batch of rows for one entity table. Rows
// carry the same columns as the static tables, including the optional
// action column (create/update/delete).
type Frame struct {
	Kind string           `json:"kind"` // "nodes", "links" or "packages"
	Rows []map[string]any `json:"rows"`
}

// Table converts the frame's rows into an ingestible table.
func (f *Frame) Table() *vistable.Table {
	t := vistable.New()
	for _, row := range f.Rows {
		t.AddRow(vistable.Row(row))
	}
	return t
}

// DecodeFrame parses one websocket message.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decoding feed frame: %w", err)
	}
	switch f.Kind {
	case "nodes", "links", "packages":
		return f, nil
	default:
		return Frame{}, fmt.Errorf("unknown feed frame kind %q", f.Kind)
	}
}

// Client maintains the feed connection and hands every decoded frame to
// OnFrame. The callback runs on the client's goroutine; the receiver is
// expected to marshal the frame onto its own event loop.
type Client struct {
	URL     string
	OnFrame func(Frame)
}

// Listen dials the feed and reads frames forever, reconnecting with
// exponential backoff. Run it on its own goroutine.
func (c *Client) Listen() {
	backoff := 1 * time.Second
	for {
		log.Printf("Connecting to update feed: %s", c.URL)
		conn, _, err := websocket.DefaultDialer.Dial(c.URL, nil)
		if err != nil {
			log.Printf("Dial error: %v. Retrying in %v...", err, backoff)
			time.Sleep(backoff)
			backoff *= 2
			if backoff > 60*time.Second {
				backoff = 60 * time.Second
			}
			continue
		}
		backoff = 1 * time.Second

		subscribe := `{"type": "subscribe", "tables": ["nodes", "links", "packages"]}`
		if err := conn.WriteMessage(websocket.TextMessage, []byte(subscribe)); err != nil {
			log.Printf("Subscribe error: %v", err)
			conn.Close()
			continue
		}

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v. Reconnecting...", err)
				break
			}
			frame, err := DecodeFrame(message)
			if err != nil {
				log.Printf("Dropping malformed frame: %v", err)
				continue
			}
			if c.OnFrame != nil {
				c.OnFrame(frame)
			}
		}
		conn.Close()
		time.Sleep(time.Second)
	}
}
