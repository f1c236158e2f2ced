package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockLLM answers without calling a model, for local runs and tests.
// Reply/Err override the canned report when set. It is safe for concurrent use.
type MockLLM struct {
	Reply string
	Err   error

	mu    sync.Mutex
	calls int
	last  Prompt
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	m.calls++
	m.last = prompt
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return cannedReport(prompt), nil
}

// Calls is the number of completions requested so far.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Last is the most recent prompt received.
func (m *MockLLM) Last() Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// cannedReport fills every label the system prompt asks for with placeholder text.
func cannedReport(prompt Prompt) string {
	style := StyleDefectType
	if strings.Contains(prompt.System, "NAVIGATION PATH:") {
		style = StyleNavigationPath
	}
	var sb strings.Builder
	for _, label := range style.Labels() {
		switch label {
		case "TITLE:":
			sb.WriteString(label + " " + titleLine(prompt.System) + "\n")
		case "STEPS TO REPRODUCE:":
			sb.WriteString(label + "\n1. Open the module.\n2. Repeat the action from the user story.\n")
		case "DEFECT TYPE:":
			sb.WriteString(label + " " + DefectTypes[0] + "\n")
		default:
			sb.WriteString(fmt.Sprintf("%s (mock) %s\n", label, strings.ToLower(strings.TrimSuffix(label, ":"))))
		}
	}
	return sb.String()
}

var placeholderTitle = strings.NewReplacer("<short issue title>", "Mock issue", "<short issue summary>", "Mock issue")

func titleLine(system string) string {
	for _, line := range strings.Split(system, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "TITLE: "); ok {
			return placeholderTitle.Replace(rest)
		}
	}
	return "Mock issue"
}
