package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/aprenda-ai/tutor"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/schema"
)

var (
	configPath string
	mode       string
	name       string
)

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tutor",
		Short: "Study-companion response engine",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config")

	askCmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Answer one question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := tutor.NewClient(cfg)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			out := client.Ask(cmd.Context(), query, schema.Mode(mode), schema.StudentContext{DisplayName: name})
			fmt.Println(out.Text)
			return nil
		},
	}
	askCmd.Flags().StringVarP(&mode, "mode", "m", "", "teaching mode: exercise, socratic, debate, brainstorm")
	askCmd.Flags().StringVarP(&name, "name", "n", "", "student display name")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tutor tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			srv, err := tutor.NewServer(cfg)
			if err != nil {
				return err
			}
			return server.ServeStdio(srv)
		},
	}

	rootCmd.AddCommand(askCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
