package main

import (
	"fmt"

	"github.com/aretw0/screener/internal/config"
	"github.com/aretw0/screener/internal/presentation/graph"
	"github.com/aretw0/screener/pkg/dialogue"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the questions asked for the configured job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(v, path)
		if err != nil {
			return err
		}
		job := cfg.Job.Context()
		out := cmd.OutOrStdout()

		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			var overlay *graph.Overlay
			if at, _ := cmd.Flags().GetString("at"); at != "" {
				step, ok := domain.ParseStep(at)
				if !ok {
					return fmt.Errorf("unknown step %q", at)
				}
				overlay = &graph.Overlay{Current: step}
			}
			_, err := fmt.Fprint(out, graph.GenerateMermaid(job, overlay))
			return err
		}

		for i, q := range dialogue.Questions(job) {
			fmt.Fprintf(out, "%d. %s\n", i+1, q)
		}
		fmt.Fprintf(out, "%d. %s\n", domain.QuestionCount+1, dialogue.ConfirmationPrompt(nil))
		_, err = fmt.Fprintln(out, dialogue.ClosingMessage)
		return err
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().Bool("mermaid", false, "print the flow as a Mermaid flowchart")
	scriptCmd.Flags().String("at", "", "highlight a step in the flowchart (e.g. compensation)")
}
