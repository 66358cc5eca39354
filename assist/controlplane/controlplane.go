// Package controlplane is the minimal network control surface for a running
// engine: update_config, enable/disable, emergency_stop and counters, each a
// small JSON request/response over a single websocket connection per client.
//
// Grounded on the tabular trainer's single-client websocket server
// (tabular/server/server.go): the same upgrader-per-request, one-goroutine-
// per-connection shape, adapted from a push-only state feed to a small
// request/response control protocol since this surface needs replies, not
// just updates.
package controlplane

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/cursorassist/cursorassist/assist"
	"github.com/cursorassist/cursorassist/assist/engine"
)

const (
	writeWait      = 1 * time.Second
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{}

// Engine is the subset of *engine.Engine the control plane depends on, kept
// narrow so this package can be tested against a fake.
type Engine interface {
	Enable()
	Disable()
	EmergencyStop()
	UpdateConfig(cfg assist.AssistiveConfig)
	Running() bool
	Counters() engine.Counters
}

// request is one control-plane command. Exactly one of Config or nothing is
// populated, depending on Kind.
type request struct {
	Kind   string         `json:"kind"`
	Config map[string]any `json:"config,omitempty"`
}

// response is the reply to every request, also used for errors.
type response struct {
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	Running  bool            `json:"running,omitempty"`
	Counters engine.Counters `json:"counters,omitempty"`
}

// Server serves a single control websocket per connection on addr.
type Server struct {
	addr   string
	engine Engine
	log    *logrus.Entry
}

// NewServer binds a control-plane Server to addr and engine.
func NewServer(addr string, engine Engine, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{addr: addr, engine: engine, log: log.WithField("component", "assist.controlplane")}
}

// Serve blocks, handling control connections on "/control" until the
// process exits or http.ListenAndServe returns an error.
func (s *Server) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/control", s.serveControl)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) serveControl(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("control websocket upgrade failed")
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessageSize)

	for {
		var req request
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("control connection read failed")
			}
			return
		}

		resp := s.handle(req)
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := ws.WriteJSON(resp); err != nil {
			s.log.WithError(err).Warn("control connection write failed")
			return
		}
	}
}

func (s *Server) handle(req request) response {
	switch req.Kind {
	case "enable":
		s.engine.Enable()
		return response{OK: true, Running: s.engine.Running()}
	case "disable":
		s.engine.Disable()
		return response{OK: true, Running: s.engine.Running()}
	case "emergency_stop":
		s.engine.EmergencyStop()
		return response{OK: true, Running: s.engine.Running()}
	case "counters":
		return response{OK: true, Counters: s.engine.Counters()}
	case "update_config":
		encoded, err := json.Marshal(req.Config)
		if err != nil {
			return response{OK: false, Error: err.Error()}
		}
		cfg, diags, ok := assist.ParseConfigJSON(encoded)
		if !ok {
			return response{OK: false, Error: joinDiags(diags)}
		}
		s.engine.UpdateConfig(cfg)
		return response{OK: true}
	default:
		return response{OK: false, Error: "unknown control kind: " + req.Kind}
	}
}

func joinDiags(diags []string) string {
	out := ""
	for i, d := range diags {
		if i > 0 {
			out += "; "
		}
		out += d
	}
	return out
}
