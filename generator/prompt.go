package generator

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Prompt is the message pair sent to the model: system instructions and one user message.
type Prompt struct {
	System string
	User   string
}

// promptData holds the values available to the prompt templates. Values are
// inserted as-is; text/template does no escaping.
type promptData struct {
	SprintNumber   int
	ModuleName     string
	Environment    Environment
	GroupID        string
	PlanID         string
	UserStory      string
	ImpactArea     string
	ImpactSentence string
	DefectTypes    []string
}

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// BuildPrompts renders the system and user prompts for the fields' style.
// Callers validate the fields first.
func BuildPrompts(fields DefectFields) (Prompt, error) {
	style := fields.Style.orDefault()
	env := fields.Environment
	if env == "" {
		env = EnvQA
	}

	data := promptData{
		SprintNumber: fields.SprintNumber,
		ModuleName:   fields.ModuleName,
		Environment:  env,
		GroupID:      fields.GroupID,
		PlanID:       fields.PlanID,
		UserStory:    fields.UserStory,
		ImpactArea:   fields.ImpactArea,
		DefectTypes:  DefectTypes,
	}
	if impact := strings.TrimSpace(fields.ImpactArea); impact != "" {
		data.ImpactSentence = fmt.Sprintf("This impacts the %s.", impact)
	}

	system, err := execPrompt(string(style)+".system.tmpl", data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := execPrompt(string(style)+".user.tmpl", data)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: system, User: user}, nil
}

func execPrompt(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}
