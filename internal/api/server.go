package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Kerhoff/todo-api/internal/metrics"
	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository"
	"github.com/Kerhoff/todo-api/internal/service"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// Server provides the HTTP API.
type Server struct {
	svc     *service.Service
	logger  *logrus.Logger
	metrics *metrics.Metrics
	mux     *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it. m may be
// nil.
func NewServer(svc *service.Service, logger *logrus.Logger, m *metrics.Metrics) *Server {
	s := &Server{svc: svc, logger: logger, metrics: m, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withLogging(http.HandlerFunc(s.dispatch)))
}

// dispatch routes through the mux. Requests no pattern matches get the
// mux's 404 or 405 status (and Allow header) with a JSON body.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	if _, pattern := s.mux.Handler(r); pattern == "" {
		w = &jsonErrorWriter{ResponseWriter: w, server: s}
	}
	s.mux.ServeHTTP(w, r)
}

// jsonErrorWriter replaces a plain-text error body with respondError.
type jsonErrorWriter struct {
	http.ResponseWriter
	server   *Server
	replaced bool
}

func (w *jsonErrorWriter) WriteHeader(status int) {
	if status < http.StatusBadRequest {
		w.ResponseWriter.WriteHeader(status)
		return
	}
	w.replaced = true
	w.Header().Del("X-Content-Type-Options")
	w.server.respondError(w.ResponseWriter, status, http.StatusText(status)+".")
}

func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.mux.HandleFunc("GET /todos", s.handleListTodos)
	s.mux.HandleFunc("POST /todos", s.handleCreateTodo)
	s.mux.HandleFunc("PUT /todos/{id}/toggle", s.handleToggleTodo)
	s.mux.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)

	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response")
	}
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Message: message})
}

func (s *Server) respondNotFound(w http.ResponseWriter) {
	s.respondError(w, http.StatusNotFound, "Todo not found.")
}

func (s *Server) respondValidation(w http.ResponseWriter, errs models.ValidationErrors) {
	s.respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Message: errs.Message(),
		Errors:  errs.Fields(),
	})
}

// respondStoreError maps a repository failure to a response. Unexpected
// errors are logged and reported without detail.
func (s *Server) respondStoreError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if errors.Is(err, repository.ErrNotFound) {
		s.respondNotFound(w)
		return
	}
	s.requestLogger(r).WithError(err).Errorf("failed to %s", action)
	s.respondError(w, http.StatusInternalServerError, "Server Error")
}

// pathID extracts the {id} path value. Only positive integers can name a
// todo.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ---------------------------------------------------------------------------
// Todos
// ---------------------------------------------------------------------------

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.svc.ListTodos(r.Context())
	if err != nil {
		s.respondStoreError(w, r, err, "list todos")
		return
	}
	s.respondJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	// A body that is not exactly one JSON object is validated as an empty
	// request.
	var req models.CreateTodoRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		s.requestLogger(r).WithError(err).Debug("unreadable create body")
		req = models.CreateTodoRequest{}
	}

	todo, err := s.svc.CreateTodo(r.Context(), req)
	if err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			s.respondValidation(w, verrs)
			return
		}
		s.respondStoreError(w, r, err, "create todo")
		return
	}
	s.respondJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondNotFound(w)
		return
	}

	todo, err := s.svc.ToggleTodo(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err, "toggle todo")
		return
	}
	s.respondJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondNotFound(w)
		return
	}

	if err := s.svc.DeleteTodo(r.Context(), id); err != nil {
		s.respondStoreError(w, r, err, "delete todo")
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health(r.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	s.respondJSON(w, status, report)
}
