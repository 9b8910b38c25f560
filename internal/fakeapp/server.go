// Package fakeapp is a local stand-in for the QA web application. It serves
// the same four pages with the same selectors and client-side behavior,
// including the application's known defects, plus the JSON register and
// login endpoints. The suite's own tests drive it so the harness can be
// verified without the network.
package fakeapp

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/kuitang/qa-suite/internal/errs"
	"github.com/kuitang/qa-suite/internal/obs"
)

//go:embed static
var staticFiles embed.FS

// Server serves the stand-in application.
type Server struct {
	store *Store
}

// NewServer creates a server backed by store.
func NewServer(store *Store) *Server {
	return &Server{store: store}
}

// New creates a server with an empty store and a cheap hasher, for tests.
func New() *Server {
	return NewServer(NewStore(FakeInsecureHasher{}))
}

// Store exposes the account store.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the application's routes wrapped in request-id and
// access-log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)

	pages, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("fakeapp: embedded static dir missing: " + err.Error())
	}
	fileServer := http.FileServerFS(pages)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/index.html", http.StatusFound)
	})
	mux.Handle("GET /", fileServer)

	return obs.HTTPMiddleware("fakeapp", mux)
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type apiResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	User    *Account `json:"user,omitempty"`
}

// handleRegister accepts any well-formed JSON body. There is no CSRF token
// check, matching the deployed application.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.InvalidArgument, "Invalid request body", err))
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, r, errs.New(errs.InvalidArgument, "Missing required fields"))
		return
	}

	acct := Account{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
	}
	if err := s.store.Create(acct, req.Password); err != nil {
		s.writeError(w, r, err)
		return
	}

	obs.From(r.Context()).Info("account_registered", "accounts", s.store.Len())
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Registration successful"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.InvalidArgument, "Invalid request body", err))
		return
	}

	acct, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Login successful", User: &acct})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.CodeOf(err)
	status := errs.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		obs.From(r.Context()).Error("api_error", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, apiResponse{Success: false, Message: errs.MessageOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
