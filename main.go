package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"crackr/analyzer"
	"crackr/config"
	"crackr/provider"
	"crackr/server"
	"crackr/tutorial"
)

const Version = "v0.1.0"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "crackr",
	Short: "crackr turns a public repository into a guided tutorial",
	Long: `crackr clones a public GitHub repository, analyzes its structure and
source files with an LLM provider, and produces a tutorial document with an
architecture overview, per-file analyses, and a suggested learning path.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(cfg).Run(ctx)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <github-url>",
	Short: "Analyze one repository and print its tutorial as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		a := analyzer.New(cfg.Analyzer)
		repo, files, err := a.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer os.RemoveAll(repo.ClonePath)

		manager := provider.NewManager(cfg.Credentials)
		gen := tutorial.NewGenerator(manager)
		tut := gen.Generate(cmd.Context(), cfg.DefaultProvider, *repo, files, nil)

		fmt.Print(tutorial.ExportMarkdown(tut))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, analyzeCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("crackr %s\n", Version)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
