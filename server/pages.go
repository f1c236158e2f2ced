package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"jira_defect_writer/document"
	"jira_defect_writer/generator"
)

// State is what the page currently shows the user.
type State string

const (
	StateIdle    State = "idle"
	StateWarning State = "warning"
	StateSuccess State = "success"
	StateError   State = "error"
)

// formValues echoes the submitted form back into the page.
type formValues struct {
	SprintNumber string
	ModuleName   string
	Environment  string
	GroupID      string
	PlanID       string
	UserStory    string
	ImpactArea   string
	Style        string
}

type styleOption struct {
	Value    string
	Title    string
	Selected bool
}

type reportView struct {
	ID       string
	Text     string
	Preview  template.HTML
	FileName string
}

type pageData struct {
	State        State
	Message      string
	Form         formValues
	Environments []generator.Environment
	Styles       []styleOption
	Report       *reportView
}

func (s *Server) newPage(form formValues) pageData {
	if form.Style == "" {
		form.Style = string(s.genAgent.Style())
	}
	if form.Environment == "" {
		form.Environment = string(generator.EnvQA)
	}
	styles := make([]styleOption, 0, len(generator.ReportStyles))
	for _, st := range generator.ReportStyles {
		styles = append(styles, styleOption{Value: string(st), Title: st.Title(), Selected: string(st) == form.Style})
	}
	return pageData{
		State:        StateIdle,
		Form:         form,
		Environments: generator.Environments,
		Styles:       styles,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		log.Printf("[server] render page: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPage(formValues{SprintNumber: "1"}))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := formValues{
		SprintNumber: r.PostForm.Get("sprint_number"),
		ModuleName:   r.PostForm.Get("module_name"),
		Environment:  r.PostForm.Get("environment"),
		GroupID:      r.PostForm.Get("group_id"),
		PlanID:       r.PostForm.Get("plan_id"),
		UserStory:    r.PostForm.Get("user_story"),
		ImpactArea:   r.PostForm.Get("impact_area"),
		Style:        r.PostForm.Get("style"),
	}
	data := s.newPage(form)

	fields, err := form.fields()
	if err != nil {
		s.renderFailure(w, data, err)
		return
	}

	rep, err := s.generate(r.Context(), fields)
	if err != nil {
		s.renderFailure(w, data, err)
		return
	}

	// A report that does not render never gets a download link.
	doc, err := document.Render(rep.Text, rep.Fields.SprintNumber, rep.Fields.Style)
	if err != nil {
		s.renderFailure(w, data, err)
		return
	}

	preview, err := document.PreviewHTML(rep.Text)
	if err != nil {
		log.Printf("[server] preview failed: %v", err)
		preview = "<pre>" + template.HTMLEscapeString(rep.Text) + "</pre>"
	}

	ctx := r.Context()
	if err := s.sessions.RenewToken(ctx); err != nil {
		log.Printf("[server] renew session token: %v", err)
	}
	s.sessions.Put(ctx, keyReportID, rep.ID)
	s.sessions.Put(ctx, keyReportText, rep.Text)
	s.sessions.Put(ctx, keyReportSprint, doc.Sprint)
	s.sessions.Put(ctx, keyReportStyle, string(doc.Style))

	data.State = StateSuccess
	data.Message = "Generated Jira Defect Report with Auto-Detected Defect Type"
	if doc.Style == generator.StyleNavigationPath {
		data.Message = "Jira Defect Generated Successfully!"
	}
	data.Report = &reportView{
		ID:       rep.ID,
		Text:     rep.Text,
		Preview:  template.HTML(preview),
		FileName: document.FileName(doc.Sprint),
	}
	s.renderPage(w, http.StatusOK, data)
}

func (s *Server) renderFailure(w http.ResponseWriter, data pageData, err error) {
	state, msg, status := outcome(err)
	if state == StateError {
		log.Printf("[server] generation failed: %v", err)
	}
	data.State = state
	data.Message = msg
	s.renderPage(w, status, data)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" || id != s.sessions.GetString(ctx, keyReportID) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	style, err := generator.ParseReportStyle(s.sessions.GetString(ctx, keyReportStyle))
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	doc, err := document.Render(s.sessions.GetString(ctx, keyReportText), s.sessions.GetInt(ctx, keyReportSprint), style)
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	writeDocx(w, doc)
}

// fields converts the raw form into generator fields.
func (f formValues) fields() (generator.DefectFields, error) {
	if strings.TrimSpace(f.ModuleName) == "" || strings.TrimSpace(f.UserStory) == "" {
		return generator.DefectFields{}, generator.MissingRequired()
	}
	sprint, err := generator.ParseSprintNumber(f.SprintNumber)
	if err != nil {
		return generator.DefectFields{}, err
	}
	env, err := generator.ParseEnvironment(f.Environment)
	if err != nil {
		return generator.DefectFields{}, err
	}
	var style generator.ReportStyle
	if f.Style != "" {
		if style, err = generator.ParseReportStyle(f.Style); err != nil {
			return generator.DefectFields{}, err
		}
	}
	return generator.DefectFields{
		SprintNumber: sprint,
		ModuleName:   f.ModuleName,
		Environment:  env,
		GroupID:      f.GroupID,
		PlanID:       f.PlanID,
		UserStory:    f.UserStory,
		ImpactArea:   f.ImpactArea,
		Style:        style,
	}, nil
}
