package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"jira_defect_writer/document"
	"jira_defect_writer/generator"
)

// reportReq is the JSON form of the defect form. The sprint number may be
// fractional; it is truncated like the form input.
type reportReq struct {
	SprintNumber float64 `json:"sprint_number"`
	ModuleName   string  `json:"module_name"`
	Environment  string  `json:"environment"`
	GroupID      string  `json:"group_id"`
	PlanID       string  `json:"plan_id"`
	UserStory    string  `json:"user_story"`
	ImpactArea   string  `json:"impact_area"`
	Style        string  `json:"style"`
}

type reportResp struct {
	ID         string               `json:"id"`
	Style      string               `json:"style"`
	Report     string               `json:"report"`
	FileName   string               `json:"file_name"`
	Paragraphs []document.Paragraph `json:"paragraphs"`
}

type docxReq struct {
	SprintNumber float64 `json:"sprint_number"`
	Style        string  `json:"style"`
	Report       string  `json:"report"`
}

type errorResp struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleAPIGenerate(w http.ResponseWriter, r *http.Request) {
	var req reportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid request body: " + err.Error(), Kind: "validation"})
		return
	}

	form := formValues{
		SprintNumber: formatSprint(req.SprintNumber),
		ModuleName:   req.ModuleName,
		Environment:  req.Environment,
		GroupID:      req.GroupID,
		PlanID:       req.PlanID,
		UserStory:    req.UserStory,
		ImpactArea:   req.ImpactArea,
		Style:        req.Style,
	}
	fields, err := form.fields()
	if err != nil {
		writeAPIError(w, err)
		return
	}

	rep, err := s.generate(r.Context(), fields)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	doc, err := document.Render(rep.Text, rep.Fields.SprintNumber, rep.Fields.Style)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResp{
		ID:         rep.ID,
		Style:      string(doc.Style),
		Report:     rep.Text,
		FileName:   document.FileName(doc.Sprint),
		Paragraphs: doc.Paragraphs,
	})
}

// handleAPIDocx renders report text the caller already has. No model call.
func (s *Server) handleAPIDocx(w http.ResponseWriter, r *http.Request) {
	var req docxReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid request body: " + err.Error(), Kind: "validation"})
		return
	}
	sprint, err := generator.ParseSprintNumber(formatSprint(req.SprintNumber))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	style := s.genAgent.Style()
	if req.Style != "" {
		if style, err = generator.ParseReportStyle(req.Style); err != nil {
			writeAPIError(w, err)
			return
		}
	}
	doc, err := document.Render(req.Report, sprint, style)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp{Error: err.Error(), Kind: "validation"})
		return
	}
	writeDocx(w, doc)
}

func writeAPIError(w http.ResponseWriter, err error) {
	_, msg, status := outcome(err)
	writeJSON(w, status, errorResp{Error: msg, Kind: errorKind(err)})
}

func formatSprint(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
