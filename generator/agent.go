package generator

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
)

// Agent validates the form, builds the prompts and asks the model for a report.
type Agent struct {
	llm   LLMClient
	style ReportStyle
}

func NewAgent(llm LLMClient, style ReportStyle) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if style == "" {
		style = DefaultStyle
	}
	if _, err := ParseReportStyle(string(style)); err != nil {
		return nil, err
	}
	return &Agent{llm: llm, style: style}, nil
}

// Style is the style used when the request does not pick one.
func (a *Agent) Style() ReportStyle { return a.style }

// Generate runs one generation cycle. The model is not called when the fields
// fail validation.
func (a *Agent) Generate(ctx context.Context, fields DefectFields) (Report, error) {
	if fields.Style == "" {
		fields.Style = a.style
	}
	if fields.Environment == "" {
		fields.Environment = EnvQA
	}
	if err := fields.Validate(); err != nil {
		return Report{}, err
	}

	prompt, err := BuildPrompts(fields)
	if err != nil {
		return Report{}, err
	}

	id := uuid.NewString()
	log.Printf("[generator] report=%s sprint=%d module=%q env=%s style=%s", id, fields.SprintNumber, fields.ModuleName, fields.Environment, fields.Style)
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[generator] report=%s failed: %v", id, err)
		return Report{}, err
	}
	return PostProcess(id, raw, fields)
}
