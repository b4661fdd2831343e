package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"askdata.insights.org/internal/query"
	"askdata.insights.org/internal/render"
)

// queryOptions holds the flags of the query command.
type queryOptions struct {
	scenario       string
	explainContext string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "askdata",
		Short: "Ask questions about South African socio-economic indicators",
		Long: `askdata parses a plain-language question into one of four query templates
and prints the structured result: KPI cards, peer comparisons, Gap-Lens
scenario projections or a chart explanation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newQueryCmd(), newSuggestCmd(), newIndicatorsCmd(), newServeCmd())
	return root
}

func newQueryCmd() *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query [text...]",
		Short: "Parse a question and print the rendered result as JSON",
		Example: `  askdata query Generate KPI card for youth unemployment
  askdata query --scenario aggressive Create Gap-Lens chart for youth unemployment
  askdata query --explain-context gap-lens Explain this chart in plain language`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.OutOrStdout(), strings.Join(args, " "), opts, time.Now())
		},
	}
	cmd.Flags().StringVar(&opts.scenario, "scenario", string(render.ScenarioModerate), "Gap-Lens scenario (moderate|aggressive)")
	cmd.Flags().StringVar(&opts.explainContext, "explain-context", "", "Chart an explain query refers to (gap-analysis|kpi-card|gap-lens)")
	return cmd
}

// queryFailure is printed when the question cannot be answered.
type queryFailure struct {
	Error       string           `json:"error"`
	Template    query.TemplateID `json:"template,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Closest     []string         `json:"closestIndicators,omitempty"`
}

var errQueryFailed = errors.New("query could not be answered")

func runQuery(out io.Writer, text string, opts *queryOptions, now time.Time) error {
	scenario, ok := render.ParseScenario(opts.scenario)
	if !ok {
		return fmt.Errorf("unknown scenario %q", opts.scenario)
	}
	chart, ok := render.ParseChartContext(opts.explainContext)
	if !ok {
		return fmt.Errorf("unknown explain context %q: %s", opts.explainContext, render.ChartContextError)
	}

	parsed, err := query.Default.Process(text)
	if err != nil {
		failure := queryFailure{Error: query.UserMessage(err)}
		var noMatch *query.NoMatchError
		var unresolved *query.UnresolvedEntityError
		switch {
		case errors.As(err, &noMatch):
			failure.Suggestions = noMatch.Suggestions
		case errors.As(err, &unresolved):
			failure.Template = unresolved.Template
			failure.Closest = unresolved.Closest
		}
		if werr := writeJSON(out, failure); werr != nil {
			return werr
		}
		return errQueryFailed
	}

	result := render.Render(parsed, render.Options{
		Scenario:      scenario,
		ChartContext:  chart,
		OriginalQuery: text,
		Now:           now,
	})
	return writeJSON(out, result)
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "List the supported query formats with an example each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range query.Templates() {
				if _, err := fmt.Fprintf(out, "%-14s %s\n%-14s e.g. %s\n", t.ID, t.Description, "", t.Example); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newIndicatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List the indicators, places and peer countries queries can name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), map[string][]string{
				"indicators":    query.Default.AvailableIndicators(),
				"places":        query.Default.AvailablePlaces(),
				"peerCountries": query.Default.AvailablePeerCountries(),
			})
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Show how to start the HTTP API",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(),
				"The HTTP API is a separate binary: go run ./cmd/api -port 4000 -api-keys test")
			return err
		},
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
