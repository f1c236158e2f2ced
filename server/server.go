package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jira_defect_writer/document"
	"jira_defect_writer/generator"
)

//go:embed web/templates/*.html
var embeddedTemplates embed.FS

// Session keys for the last generated report.
const (
	keyReportID     = "report.id"
	keyReportText   = "report.text"
	keyReportSprint = "report.sprint"
	keyReportStyle  = "report.style"
)

// Options tune the server. Zero values select defaults.
type Options struct {
	// Timeout bounds one generation, including the completion call.
	Timeout         time.Duration
	SessionLifetime time.Duration
}

type Server struct {
	genAgent *generator.Agent
	sessions *scs.SessionManager
	page     *template.Template
	timeout  time.Duration
}

func New(genAgent *generator.Agent, opts Options) (*Server, error) {
	if genAgent == nil {
		return nil, errors.New("generator agent required")
	}

	page, err := template.ParseFS(embeddedTemplates, "web/templates/index.html")
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = generator.DefaultTimeout
	}

	// scs keeps sessions in memory unless a store is set.
	sessions := scs.New()
	if opts.SessionLifetime > 0 {
		sessions.Lifetime = opts.SessionLifetime
	}
	sessions.Cookie.Name = "defect_writer_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	return &Server{
		genAgent: genAgent,
		sessions: sessions,
		page:     page,
		timeout:  timeout,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.LoadAndSave)
		r.Get("/", s.handleIndex)
		r.Post("/generate", s.handleGenerate)
		r.Get("/download/{id}", s.handleDownload)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/reports", s.handleAPIGenerate)
		r.Post("/reports/docx", s.handleAPIDocx)
	})
	return r
}

// generate runs the agent under the server's timeout.
func (s *Server) generate(ctx context.Context, fields generator.DefectFields) (generator.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.genAgent.Generate(ctx, fields)
}

// --- Helpers ---

// outcome maps a generation error to a user-visible state, a message and an
// HTTP status.
func outcome(err error) (State, string, int) {
	var verr *generator.ValidationError
	var eerr *generator.EmptyResponseError
	switch {
	case errors.As(err, &verr):
		return StateWarning, verr.Error(), http.StatusUnprocessableEntity
	case errors.As(err, &eerr):
		return StateError, eerr.Error(), http.StatusBadGateway
	case errors.Is(err, document.ErrEmptyReport):
		return StateError, "AI returned empty content.", http.StatusBadGateway
	default:
		return StateError, "Error generating report: " + err.Error(), http.StatusBadGateway
	}
}

func errorKind(err error) string {
	var verr *generator.ValidationError
	var terr *generator.TransportError
	var eerr *generator.EmptyResponseError
	switch {
	case errors.As(err, &verr):
		return "validation"
	case errors.As(err, &eerr), errors.Is(err, document.ErrEmptyReport):
		return "empty_response"
	case errors.As(err, &terr):
		return "transport"
	default:
		return "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDocx(w http.ResponseWriter, doc document.Document) {
	var buf bytes.Buffer
	if err := doc.WriteDOCX(&buf); err != nil {
		log.Printf("[server] docx export failed: %v", err)
		http.Error(w, "could not build document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", document.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+document.FileName(doc.Sprint)+`"`)
	_, _ = w.Write(buf.Bytes())
}
