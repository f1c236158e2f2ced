package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() DefectFields {
	return DefectFields{
		SprintNumber: 3,
		ModuleName:   "ICHRA",
		Environment:  EnvUAT,
		GroupID:      "G-100",
		PlanID:       "P-200",
		UserStory:    "Rate calculation is incorrect when selecting age banded plan",
		ImpactArea:   "Rate calculation",
	}
}

func TestBuildPrompts_DefectTypeStyle(t *testing.T) {
	p, err := BuildPrompts(sampleFields())
	require.NoError(t, err)

	assert.Contains(t, p.System, "TITLE: Sprint 3 - ICHRA - <short issue title>")
	assert.Contains(t, p.System, "Sprint 3 - ICHRA -")
	assert.Contains(t, p.System, "PLAN ID: P-200")
	assert.Contains(t, p.System, "GROUP ID: G-100")
	assert.Contains(t, p.System, "DEFECT TYPE: <one of the above types>")
	assert.NotContains(t, p.System, "NAVIGATION PATH:")
	for _, dt := range DefectTypes {
		assert.Contains(t, p.System, "- "+dt+"\n")
	}

	assert.Equal(t, "Module Name: ICHRA\nEnvironment: UAT\nImpact Area: Rate calculation\nUser Story / Issue Context:\nRate calculation is incorrect when selecting age banded plan\n", p.User)
}

func TestBuildPrompts_NavigationPathStyle(t *testing.T) {
	f := sampleFields()
	f.Style = StyleNavigationPath
	p, err := BuildPrompts(f)
	require.NoError(t, err)

	assert.Contains(t, p.System, "TITLE: Sprint 3 - ICHRA - <short issue summary>")
	assert.Contains(t, p.System, "As a Superuser or Broker user in UAT environment, ICHRA module has the following issue:")
	assert.Contains(t, p.System, "This impacts the Rate calculation.")
	assert.Contains(t, p.System, "Superuser → Group → Add Group → ICHRA → Plan Selection → Save and Next.")
	assert.Contains(t, p.System, "NAVIGATION PATH:")
	assert.NotContains(t, p.System, "DEFECT TYPE:")

	assert.Contains(t, p.User, "Module: ICHRA\nEnvironment: UAT\n")
	assert.Contains(t, p.User, "Impact Area:\nRate calculation\n")
}

func TestBuildPrompts_ImpactSentenceOmittedWhenBlank(t *testing.T) {
	f := sampleFields()
	f.Style = StyleNavigationPath
	f.ImpactArea = "   "
	p, err := BuildPrompts(f)
	require.NoError(t, err)
	assert.NotContains(t, p.System, "This impacts the")
}

func TestBuildPrompts_InsertsUserTextVerbatim(t *testing.T) {
	story := "Line one {{.ModuleName}}\n<script>alert(1)</script> & \"quoted\"\n\n  indented tail"
	for _, style := range ReportStyles {
		t.Run(string(style), func(t *testing.T) {
			f := sampleFields()
			f.Style = style
			f.UserStory = story
			f.ModuleName = "Enroll & <Pay>"
			p, err := BuildPrompts(f)
			require.NoError(t, err)
			assert.Contains(t, p.User, story)
			assert.Contains(t, p.System, "Sprint 3 - Enroll & <Pay> -")
		})
	}
}

func TestBuildPrompts_EmptyOptionalFields(t *testing.T) {
	f := DefectFields{SprintNumber: 1, ModuleName: "Billing", UserStory: "Invoice total wrong"}
	p, err := BuildPrompts(f)
	require.NoError(t, err)
	assert.Contains(t, p.System, "PLAN ID: \n")
	assert.Contains(t, p.System, "GROUP ID: \n")
	assert.True(t, strings.HasPrefix(p.User, "Module Name: Billing\nEnvironment: QA\n"))
}
