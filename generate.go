package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"jira_defect_writer/config"
	"jira_defect_writer/document"
	"jira_defect_writer/generator"
)

type generateOpts struct {
	sprint    float64
	module    string
	env       string
	groupID   string
	planID    string
	story     string
	storyFile string
	impact    string
	style     string
	outDir    string
}

func newGenerateCmd() *cobra.Command {
	var o generateOpts
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one defect report and write it as a Word document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			agent, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), agent, o, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Float64Var(&o.sprint, "sprint", 1, "sprint number (fractions are truncated)")
	f.StringVar(&o.module, "module", "", "module name, e.g. ICHRA")
	f.StringVar(&o.env, "env", string(generator.EnvQA), "environment: QA, UAT or Production")
	f.StringVar(&o.groupID, "group-id", "", "group ID")
	f.StringVar(&o.planID, "plan-id", "", "plan ID")
	f.StringVar(&o.story, "story", "", "user story / issue details")
	f.StringVar(&o.storyFile, "story-file", "", "read the user story from a file (- for stdin)")
	f.StringVar(&o.impact, "impact", "", "impact area / additional context")
	f.StringVar(&o.style, "style", "", "report style: defect-type or navigation-path (default from config)")
	f.StringVarP(&o.outDir, "out", "o", ".", "directory for the .docx file")
	return cmd
}

func runGenerate(ctx context.Context, agent *generator.Agent, o generateOpts, out io.Writer) error {
	story := o.story
	if o.storyFile != "" {
		var data []byte
		var err error
		if o.storyFile == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(o.storyFile)
		}
		if err != nil {
			return fmt.Errorf("read story: %w", err)
		}
		story = string(data)
	}

	sprint, err := generator.ParseSprintNumber(strconv.FormatFloat(o.sprint, 'f', -1, 64))
	if err != nil {
		return err
	}
	env, err := generator.ParseEnvironment(o.env)
	if err != nil {
		return err
	}
	var style generator.ReportStyle
	if o.style != "" {
		if style, err = generator.ParseReportStyle(o.style); err != nil {
			return err
		}
	}

	rep, err := agent.Generate(ctx, generator.DefectFields{
		SprintNumber: sprint,
		ModuleName:   o.module,
		Environment:  env,
		GroupID:      o.groupID,
		PlanID:       o.planID,
		UserStory:    story,
		ImpactArea:   o.impact,
		Style:        style,
	})
	if err != nil {
		var terr *generator.TransportError
		if errors.As(err, &terr) {
			return fmt.Errorf("error generating report: %w", err)
		}
		return err
	}

	doc, err := document.Render(rep.Text, rep.Fields.SprintNumber, rep.Fields.Style)
	if err != nil {
		return err
	}
	data, err := doc.DOCX()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(o.outDir, document.FileName(doc.Sprint))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintln(out, rep.Text)
	log.Printf("[cli] report %s written to %s", rep.ID, path)
	return nil
}
