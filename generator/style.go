package generator

import (
	"fmt"
	"strings"
)

// ReportStyle selects the prompt template and the set of labeled lines.
type ReportStyle string

const (
	// StyleDefectType asks the model to classify the defect into one of DefectTypes.
	StyleDefectType ReportStyle = "defect-type"
	// StyleNavigationPath asks for the screen path leading to the defect instead.
	StyleNavigationPath ReportStyle = "navigation-path"
)

// DefaultStyle is used when no style is configured or selected.
const DefaultStyle = StyleDefectType

// ReportStyles lists the known styles in display order.
var ReportStyles = []ReportStyle{StyleDefectType, StyleNavigationPath}

// DefectTypes is the closed set of categories offered by StyleDefectType.
var DefectTypes = []string{
	"Functional",
	"Database",
	"Regression",
	"UI/UX",
	"Validation",
	"Performance",
	"Security",
	"Integration",
	"Compatibility",
}

var styleLabels = map[ReportStyle][]string{
	StyleDefectType: {
		"TITLE:",
		"ISSUE DESCRIPTION:",
		"STEPS TO REPRODUCE:",
		"EXPECTED RESULT:",
		"ACTUAL RESULT:",
		"PLAN ID:",
		"GROUP ID:",
		"DEFECT TYPE:",
	},
	StyleNavigationPath: {
		"TITLE:",
		"ISSUE DESCRIPTION:",
		"NAVIGATION PATH:",
		"STEPS TO REPRODUCE:",
		"EXPECTED RESULT:",
		"ACTUAL RESULT:",
		"PLAN ID:",
		"GROUP ID:",
	},
}

// ParseReportStyle resolves a style name. Empty selects DefaultStyle.
func ParseReportStyle(s string) (ReportStyle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultStyle, nil
	}
	st := ReportStyle(s)
	if _, ok := styleLabels[st]; !ok {
		return "", &ValidationError{Fields: []string{"Report Style"}, Msg: fmt.Sprintf("unknown report style %q", s)}
	}
	return st, nil
}

func (s ReportStyle) orDefault() ReportStyle {
	if s == "" {
		return DefaultStyle
	}
	return s
}

// Title is the human readable name shown in the form.
func (s ReportStyle) Title() string {
	switch s.orDefault() {
	case StyleNavigationPath:
		return "Navigation path"
	default:
		return "Defect type classification"
	}
}

// Labels returns the field prefixes the style asks the model to emit.
func (s ReportStyle) Labels() []string {
	labels := styleLabels[s.orDefault()]
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// IsLabeled reports whether an already trimmed line starts with one of the
// style's labels. Matching is exact: case and the trailing colon count.
func (s ReportStyle) IsLabeled(line string) bool {
	for _, label := range styleLabels[s.orDefault()] {
		if strings.HasPrefix(line, label) {
			return true
		}
	}
	return false
}
