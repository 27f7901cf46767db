// Package apitest provides an in-memory fake of the notification-log backend
// for tests.
package apitest

import (
	"cmp"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/matheus3301/notilog/internal/logs"
)

// TimeLayout matches the backend's isoformat() output.
const TimeLayout = "2006-01-02T15:04:05.999999-07:00"

// Token is the CSRF token handed out by GET /.
const Token = "test-csrf-token"

// Request is one recorded call.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      string
}

type failure struct {
	status int
	body   string
	once   bool
}

type record struct {
	id        int64
	emailTo   string
	mobile    string
	message   string
	createdAt time.Time
}

// Server is a fake backend. The zero value is not usable; call New or
// NewServer.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	rows     map[logs.Variant][]record
	nextID   map[logs.Variant]int64
	requests []Request
	failures map[string]failure
	now      func() time.Time
}

// New starts a fake backend. It is closed when the test ends.
func New(t interface{ Cleanup(func()) }) *Server {
	s := NewServer()
	t.Cleanup(s.Close)
	return s
}

// NewServer starts a fake backend the caller must Close.
func NewServer() *Server {
	s := &Server{
		rows:     make(map[logs.Variant][]record),
		nextID:   map[logs.Variant]int64{logs.Email: 1, logs.SMS: 1, logs.WhatsApp: 1},
		failures: make(map[string]failure),
		now:      func() time.Time { return time.Now().UTC() },
	}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router returns the backend's routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record, s.inject)
	r.HandleFunc("/", s.dashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/stats/", s.stats).Methods(http.MethodGet)
	r.HandleFunc("/api/delete/", s.csrf(s.delete)).Methods(http.MethodPost)
	for _, v := range logs.Variants {
		r.HandleFunc(v.Endpoint(), s.list(v)).Methods(http.MethodGet)
		r.HandleFunc(v.Endpoint(), s.csrf(s.create(v))).Methods(http.MethodPost)
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	return r
}

// AddEmail stores an email log. A zero ID or CreatedAt is assigned.
func (s *Server) AddEmail(e logs.EmailLog) logs.EmailLog {
	rec := s.add(logs.Email, record{id: e.ID, emailTo: e.EmailTo, createdAt: parseTime(e.CreatedAt)})
	return toEmail(rec)
}

// AddMessage stores an SMS or WhatsApp log. A zero ID or CreatedAt is assigned.
func (s *Server) AddMessage(v logs.Variant, m logs.MessageLog) logs.MessageLog {
	rec := s.add(v, record{id: m.ID, mobile: m.MobileNumber, message: m.Message, createdAt: parseTime(m.CreatedAt)})
	return toMessage(rec)
}

// Fail makes every method request to path answer with status and a JSON
// {"error": errText} body until ClearFailures. An empty errText sends an
// empty body.
func (s *Server) Fail(method, path string, status int, errText string) {
	s.setFailure(method, path, status, errText, false)
}

// FailOnce is Fail for the next matching request only.
func (s *Server) FailOnce(method, path string, status int, errText string) {
	s.setFailure(method, path, status, errText, true)
}

// ClearFailures removes every injected failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.failures)
}

// Requests returns a copy of the recorded calls.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Count returns how many recorded calls match method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ResetRequests forgets every recorded call.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Len returns the number of stored records of variant v.
func (s *Server) Len(v logs.Variant) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows[v])
}

func (s *Server) add(v logs.Variant, rec record) record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.id == 0 {
		rec.id = s.nextID[v]
	}
	if rec.id >= s.nextID[v] {
		s.nextID[v] = rec.id + 1
	}
	if rec.createdAt.IsZero() {
		rec.createdAt = s.now()
	}
	s.rows[v] = append(s.rows[v], rec)
	return rec
}

func (s *Server) setFailure(method, path string, status int, errText string, once bool) {
	body := ""
	if errText != "" {
		data, _ := json.Marshal(map[string]string{"error": errText})
		body = string(data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body, once: once}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Body:      string(body),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		f, ok := s.failures[key]
		if ok && f.once {
			delete(s.failures, key)
		}
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if f.body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	})
}

func (s *Server) csrf(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("csrftoken")
		if err != nil || ck.Value != Token || r.Header.Get("X-CSRFToken") != Token {
			// The real backend answers with an HTML page here.
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<h1>Forbidden (403)</h1><p>CSRF verification failed.</p>"))
			return
		}
		next(w, r)
	}
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: Token, Path: "/"})
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte("<html><body>dashboard</body></html>"))
}

func (s *Server) list(v logs.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		rows := slices.Clone(s.rows[v])
		s.mu.Unlock()

		slices.SortStableFunc(rows, func(a, b record) int {
			if c := b.createdAt.Compare(a.createdAt); c != 0 {
				return c
			}
			return cmp.Compare(b.id, a.id)
		})

		if v == logs.Email {
			out := make([]logs.EmailLog, 0, len(rows))
			for _, rec := range rows {
				out = append(out, toEmail(rec))
			}
			writeJSON(w, http.StatusOK, out)
			return
		}
		out := make([]logs.MessageLog, 0, len(rows))
		for _, rec := range rows {
			out = append(out, toMessage(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := logs.Stats{
		Emails:   len(s.rows[logs.Email]),
		SMS:      len(s.rows[logs.SMS]),
		WhatsApp: len(s.rows[logs.WhatsApp]),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) create(v logs.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data map[string]any
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			errorJSON(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if v == logs.Email {
			to := strings.TrimSpace(stringField(data, "email_to"))
			if !validEmail(to) {
				errorJSON(w, "Valid email_to is required", http.StatusBadRequest)
				return
			}
			s.add(v, record{emailTo: to})
			writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
			return
		}

		mobile := strings.TrimSpace(stringField(data, "mobile_number"))
		message := strings.TrimSpace(stringField(data, "message"))
		if mobile == "" || message == "" {
			errorJSON(w, "mobile_number and message are required", http.StatusBadRequest)
			return
		}
		s.add(v, record{mobile: mobile, message: message})
		writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
	}
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		errorJSON(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	id, ok := intField(data, "id")
	if !ok {
		errorJSON(w, "Valid id is required", http.StatusBadRequest)
		return
	}
	v := logs.Variant(strings.TrimSpace(stringField(data, "type")))
	if !slices.Contains(logs.Variants, v) {
		errorJSON(w, "Valid type is required (email/sms/whatsapp)", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	before := len(s.rows[v])
	s.rows[v] = slices.DeleteFunc(s.rows[v], func(rec record) bool { return rec.id == id })
	deleted := before - len(s.rows[v])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func toEmail(rec record) logs.EmailLog {
	return logs.EmailLog{ID: rec.id, EmailTo: rec.emailTo, CreatedAt: rec.createdAt.Format(TimeLayout)}
}

func toMessage(rec record) logs.MessageLog {
	return logs.MessageLog{ID: rec.id, MobileNumber: rec.mobile, Message: rec.message, CreatedAt: rec.createdAt.Format(TimeLayout)}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := logs.Time(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func intField(data map[string]any, key string) (int64, bool) {
	switch v := data[key].(type) {
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
