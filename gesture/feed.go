package gesture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrBadFrame marks a landmark frame that cannot become a Sample
var ErrBadFrame = errors.New("bad landmark frame")

// FeedPath is the websocket endpoint
const FeedPath = "/hands"

// DefaultFeedBuffer is the event channel capacity
const DefaultFeedBuffer = 8

// Frame is the wire form of one capture frame; null landmarks means no hand
type Frame struct {
	Landmarks [][]float32 `json:"landmarks"`
}

// Sample converts the frame; a nil sample with nil error means no hand
func (f Frame) Sample() (*Sample, error) {
	if f.Landmarks == nil {
		return nil, nil
	}
	if len(f.Landmarks) != LandmarkCount {
		return nil, fmt.Errorf("%w: %d landmarks", ErrBadFrame, len(f.Landmarks))
	}
	var s Sample
	for i, p := range f.Landmarks {
		if len(p) != 3 {
			return nil, fmt.Errorf("%w: landmark %d has %d coordinates", ErrBadFrame, i, len(p))
		}
		for _, v := range p {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return nil, fmt.Errorf("%w: landmark %d not finite", ErrBadFrame, i)
			}
		}
		s[i] = Landmark{X: p[0], Y: p[1], Z: p[2]}
	}
	return &s, nil
}

// Event is one delivered frame; Hand is false when the frame carried no hand
type Event struct {
	Hand   bool
	Sample Sample
}

// Feed accepts landmark frames over websocket and delivers them as Events
// Slow consumers lose the oldest events
type Feed struct {
	addr     string
	events   chan Event
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// NewFeed creates a feed that will listen on addr
func NewFeed(addr string, buffer int) *Feed {
	if buffer < 1 {
		buffer = DefaultFeedBuffer
	}
	return &Feed{
		addr:   addr,
		events: make(chan Event, buffer),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Events returns the delivery channel
func (f *Feed) Events() <-chan Event {
	return f.events
}

// Handler returns the http handler serving FeedPath
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(FeedPath, f.serveWS)
	return mux
}

// Listen binds the configured address; pass the listener to Serve
func (f *Feed) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return nil, fmt.Errorf("gesture feed listen %s: %w", f.addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled
// On return the listener and every open connection are closed
func (f *Feed) Serve(ctx context.Context, ln net.Listener) error {
	f.mu.Lock()
	f.closed = false
	f.mu.Unlock()

	srv := &http.Server{
		Handler:           f.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Printf("[gesture] feed listening on %s", ln.Addr())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		f.closeConns()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("gesture feed: %w", err)
	}

	// Hijacked websocket connections are not tracked by the server
	err := srv.Close()
	f.closeConns()
	<-errCh
	log.Printf("[gesture] feed stopped")
	return err
}

// OpenConns returns the number of live connections
func (f *Feed) OpenConns() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

// closeConns closes every tracked connection and refuses new ones until the next Serve
func (f *Feed) closeConns() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for c := range f.conns {
		c.Close()
		delete(f.conns, c)
	}
}

// track registers c; it reports false and closes c when the feed has shut down
func (f *Feed) track(c *websocket.Conn) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		c.Close()
		return false
	}
	f.conns[c] = struct{}{}
	return true
}

func (f *Feed) untrack(c *websocket.Conn) {
	f.mu.Lock()
	delete(f.conns, c)
	f.mu.Unlock()
}

func (f *Feed) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gesture] upgrade: %v", err)
		return
	}
	if !f.track(conn) {
		return
	}
	defer func() {
		f.untrack(conn)
		conn.Close()
	}()
	log.Printf("[gesture] client connected %s", r.RemoteAddr)

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[gesture] read %s: %v", r.RemoteAddr, err)
			}
			return
		}
		s, err := frame.Sample()
		if err != nil {
			log.Printf("[gesture] %v", err)
			continue
		}
		ev := Event{Hand: s != nil}
		if s != nil {
			ev.Sample = *s
		}
		f.deliver(ev)
	}
}

// deliver enqueues ev, discarding the oldest event when full
func (f *Feed) deliver(ev Event) {
	for {
		select {
		case f.events <- ev:
			return
		default:
		}
		select {
		case <-f.events:
		default:
		}
	}
}
