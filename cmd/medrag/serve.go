package main

import (
	"github.com/spf13/cobra"

	"github.com/saisubham-29/medrag/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := newSystem()
		if err != nil {
			return err
		}
		defer system.Close()

		err = system.InitializeKnowledgeBase(cmd.Context(), sampleCorpus)
		if err != nil {
			return err
		}

		srv, err := server.New(system)
		if err != nil {
			return err
		}

		return srv.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.PersistentFlags().BoolVar(&useDatabase, "db", false, "use the PostgreSQL/pgvector retrieval index (DB_* env vars)")
}
