package mcdcli

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"oss.terrastruct.com/util-go/cmdlog"
	"oss.terrastruct.com/util-go/xhttp"

	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdtarget"
)

// preview is the message the watch page receives after every compile of the input.
type preview struct {
	// Rev increases with every compile. Clients skip revisions they already drew.
	Rev int `json:"rev"`
	// SVG is the latest successful render. A failed compile keeps the previous one so the
	// page does not go blank while the file is being edited.
	SVG string `json:"svg"`

	Stats    *previewStats `json:"stats,omitempty"`
	Problems []string      `json:"problems,omitempty"`
	Err      *previewErr   `json:"err,omitempty"`

	plan *mcdtarget.Diagram
}

type previewStats struct {
	Entities     int                    `json:"entities"`
	Associations int                    `json:"associations"`
	Modes        map[mcdtarget.Mode]int `json:"modes"`
	// Skipped counts the legs that reference no entity and were left out of the drawing.
	Skipped int `json:"skipped"`
}

type previewErr struct {
	Msg string `json:"msg"`
	// Format is set when the file is not an MCD document at all.
	Format bool `json:"format"`
}

func newPreview(c *compiled) *preview {
	p := &preview{
		SVG:  string(c.svg),
		plan: c.plan,
		Stats: &previewStats{
			Entities:     len(c.plan.Entities),
			Associations: len(c.plan.Associations),
			Modes:        c.plan.ModeCounts(),
		},
	}
	for _, a := range c.plan.Associations {
		p.Stats.Skipped += len(a.SkippedConnections)
	}
	for _, err := range c.problems {
		p.Problems = append(p.Problems, err.Error())
	}
	return p
}

func newErrPreview(err error) *preview {
	return &preview{
		Err: &previewErr{
			Msg:    err.Error(),
			Format: errors.Is(err, mcdgraph.ErrFormat),
		},
	}
}

// previewHub keeps the latest preview and pushes every new one to the connected watch
// pages.
type previewHub struct {
	log *cmdlog.Logger

	mu      sync.Mutex
	latest  *preview
	clients map[chan struct{}]struct{}
	closing bool
	done    chan struct{}
	conns   sync.WaitGroup
}

func newPreviewHub(log *cmdlog.Logger) *previewHub {
	return &previewHub{
		log:     log,
		clients: make(map[chan struct{}]struct{}),
		done:    make(chan struct{}),
	}
}

func (h *previewHub) publish(p *preview) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p.Rev = 1
	if h.latest != nil {
		p.Rev = h.latest.Rev + 1
		if p.Err != nil {
			p.SVG = h.latest.SVG
			p.plan = h.latest.plan
		}
	}
	h.latest = p

	h.log.Debug.Printf("publishing preview %d to %d client(s)", p.Rev, len(h.clients))
	for notify := range h.clients {
		select {
		case notify <- struct{}{}:
		default:
		}
	}
}

func (h *previewHub) current() *preview {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

func (h *previewHub) join() (chan struct{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return nil, false
	}
	notify := make(chan struct{}, 1)
	h.clients[notify] = struct{}{}
	h.conns.Add(1)
	return notify, true
}

func (h *previewHub) leave(notify chan struct{}) {
	h.mu.Lock()
	delete(h.clients, notify)
	h.mu.Unlock()
	h.conns.Done()
}

// close disconnects every watch page and waits for their connections to wind down.
func (h *previewHub) close() {
	h.mu.Lock()
	if h.closing {
		h.mu.Unlock()
		return
	}
	h.closing = true
	close(h.done)
	h.mu.Unlock()

	h.conns.Wait()
}

// servePlan writes the render plan of the latest successful compile.
func (h *previewHub) servePlan(hw http.ResponseWriter, r *http.Request) error {
	p := h.current()
	if p == nil || p.plan == nil {
		return xhttp.Errorf(http.StatusNotFound, nil, "no render plan yet")
	}
	xhttp.JSON(h.log, hw, http.StatusOK, p.plan)
	return nil
}

// serveWatch upgrades to a websocket and sends the latest preview, then every newer one
// until the page or the hub goes away.
func (h *previewHub) serveWatch(hw http.ResponseWriter, r *http.Request) error {
	notify, ok := h.join()
	if !ok {
		return xhttp.Errorf(http.StatusServiceUnavailable, "server shutting down...", "server shutting down...")
	}
	defer h.leave(notify)

	c, err := websocket.Accept(hw, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		h.log.Warn.Printf("failed to accept watch websocket: %v", err)
		return nil
	}
	defer c.Close(websocket.StatusInternalError, "the sky is falling")

	ctx := c.CloseRead(r.Context())
	go heartbeat(ctx, c)

	sent := 0
	for {
		if p := h.current(); p != nil && p.Rev != sent {
			err = writePreview(ctx, c, p)
			if err != nil {
				h.log.Debug.Printf("dropping watch client: %v", err)
				return nil
			}
			sent = p.Rev
		}

		select {
		case <-notify:
		case <-h.done:
			c.Close(websocket.StatusGoingAway, "server shutting down...")
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func writePreview(ctx context.Context, c *websocket.Conn, p *preview) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()
	return wsjson.Write(ctx, c, p)
}

func heartbeat(ctx context.Context, c *websocket.Conn) {
	t := time.NewTicker(time.Second * 30)
	defer t.Stop()
	for {
		err := c.Ping(ctx)
		if err != nil {
			return
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}
}
