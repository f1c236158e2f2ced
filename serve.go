package main

import (
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"jira_defect_writer/config"
	"jira_defect_writer/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			agent, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			srv, err := server.New(agent, server.Options{
				// Leave room for rendering after the completion call.
				Timeout:         cfg.LLM.Timeout + 5*time.Second,
				SessionLifetime: cfg.SessionLifetime,
			})
			if err != nil {
				return err
			}

			listen := cfg.HTTP.Addr
			if addr != "" {
				listen = addr
			}
			httpServer := &http.Server{
				Addr:              listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			log.Printf("[cli] starting web server on %s (provider=%s model=%s style=%s)", listen, cfg.LLM.Provider, cfg.LLM.Model, cfg.ReportStyle)
			return httpServer.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "http listen address (overrides http.addr)")
	return cmd
}
