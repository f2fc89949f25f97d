package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

const dStatusSleep = 50 * time.Millisecond

type statusResponse struct {
	Response string     `json:"response"`
	Error    string     `json:"error,omitempty"`
	Status   *padStatus `json:"status,omitempty"`
}

// apiHandler - settings for the thing that handles HTTP requests
type apiHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string

	mu     sync.RWMutex
	status padStatus
}

// newHandler - create a new API handler. Without a configured secret a
// throwaway one is made and logged.
func newHandler(rt runtimeConfig) *apiHandler {
	h := &apiHandler{
		rt:     rt,
		secret: rt.settings.GetString(sStatusSecret),
		user:   rt.settings.GetString(sStatusUser),
		realm:  "macropad",
	}
	if h.secret == "" {
		h.secret = rt.clock.Now().Format(time.RFC3339Nano)
		rt.logger.Printf("no status secret configured, using '%s'", h.secret)
	}
	return h
}

// BasicAuth - provide a middleware to authenticate users
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *apiHandler) router() *mux.Router {
	r := mux.NewRouter()
	// auth middleware
	r.Use(m.BasicAuth)
	// api server
	r.HandleFunc("/api/status", m.apiStatus).Methods("GET")
	r.HandleFunc("/api/bindings", m.apiBindings).Methods("GET")
	r.HandleFunc("/api/frame", m.apiFrame).Methods("GET")
	r.HandleFunc("/api/{cmd}", m.apiError)
	return r
}

func (m *apiHandler) setStatus(st padStatus) {
	m.mu.Lock()
	m.status = st
	m.mu.Unlock()
}

func (m *apiHandler) getStatus() statusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status.Updated.IsZero() {
		return statusResponse{Response: "BAD", Error: "pad not running yet"}
	}
	st := m.status
	return statusResponse{Response: "OK", Status: &st}
}

func writeAnswer(w http.ResponseWriter, v interface{}) {
	output, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getStatus())
}

func (m *apiHandler) apiBindings(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	bindings := m.status.Bindings
	m.mu.RUnlock()
	if bindings == nil {
		bindings = map[string]string{}
	}
	writeAnswer(w, bindings)
}

func (m *apiHandler) apiFrame(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	frame := m.status.Frame
	m.mu.RUnlock()
	writeAnswer(w, frame)
}

func (m *apiHandler) apiError(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Error\n"))
}

func startStatusService(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Status"}
	wg.Add(1)
	go runStatusService(rt)
}

func runStatusService(rt runtimeConfig) {
	defer wg.Done()

	handler := newHandler(rt)
	rt.status.launch(handler, rt.settings.GetString(sStatusAddr))

	rt.logger.Println("starting status service comms loop")
	comms := rt.comms

	// comms loop, keep the latest snapshot
	for true {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from status service")
			// stop the server
			rt.status.stop()
			return
		case st := <-comms.status:
			handler.setStatus(st)
		default:
			rt.clock.Sleep(dStatusSleep)
		}
	}
}
