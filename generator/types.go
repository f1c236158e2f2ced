package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Environment is the deployment stage the defect was found in.
type Environment string

const (
	EnvQA         Environment = "QA"
	EnvUAT        Environment = "UAT"
	EnvProduction Environment = "Production"
)

// Environments lists the selectable environments in display order.
var Environments = []Environment{EnvQA, EnvUAT, EnvProduction}

// ParseEnvironment accepts the exact environment names. Empty selects QA.
func ParseEnvironment(s string) (Environment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EnvQA, nil
	}
	for _, env := range Environments {
		if string(env) == s {
			return env, nil
		}
	}
	return "", &ValidationError{Fields: []string{"Environment"}, Msg: fmt.Sprintf("unknown environment %q", s)}
}

// MaxSprintNumber is the largest sprint number accepted.
const MaxSprintNumber = math.MaxInt32

func sprintTooLarge() *ValidationError {
	return &ValidationError{Fields: []string{"Sprint Number"}, Msg: fmt.Sprintf("sprint number must be at most %d", MaxSprintNumber)}
}

// ParseSprintNumber parses the sprint field. Fractional input is truncated.
func ParseSprintNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Fields: []string{"Sprint Number"}, Msg: "sprint number is required"}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Fields: []string{"Sprint Number"}, Msg: fmt.Sprintf("invalid sprint number %q", s)}
	}
	if f >= MaxSprintNumber+1 {
		return 0, sprintTooLarge()
	}
	n := int(math.Trunc(f))
	if n < 1 {
		return 0, &ValidationError{Fields: []string{"Sprint Number"}, Msg: "sprint number must be at least 1"}
	}
	return n, nil
}

// DefectFields are the form values a report is generated from.
type DefectFields struct {
	SprintNumber int         `json:"sprint_number"`
	ModuleName   string      `json:"module_name"`
	Environment  Environment `json:"environment"`
	GroupID      string      `json:"group_id"`
	PlanID       string      `json:"plan_id"`
	UserStory    string      `json:"user_story"`
	ImpactArea   string      `json:"impact_area"`
	Style        ReportStyle `json:"style,omitempty"`
}

// Validate checks the fields a report cannot be generated without.
func (f DefectFields) Validate() error {
	if strings.TrimSpace(f.ModuleName) == "" || strings.TrimSpace(f.UserStory) == "" {
		return MissingRequired()
	}
	if f.SprintNumber < 1 {
		return &ValidationError{Fields: []string{"Sprint Number"}, Msg: "sprint number must be at least 1"}
	}
	if f.SprintNumber > MaxSprintNumber {
		return sprintTooLarge()
	}
	if _, err := ParseEnvironment(string(f.Environment)); err != nil {
		return err
	}
	if f.Style != "" {
		if _, err := ParseReportStyle(string(f.Style)); err != nil {
			return err
		}
	}
	return nil
}

// Report is the model output for one generation cycle.
type Report struct {
	ID     string       `json:"id"`
	Fields DefectFields `json:"fields"`
	Text   string       `json:"text"`
}
