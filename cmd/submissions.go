package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"email-intake/internal/importer"
	"email-intake/internal/storage"
	"email-intake/internal/submission"
	"email-intake/internal/validator"
)

var submissionsOutput string

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect the submission log",
	Long:  `List, add or import submissions. Listing is only useful with a file backed sqlite storage, the memory log lives as long as the process.`,
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored submissions",
	Run: func(cmd *cobra.Command, args []string) {
		quietLogger()

		records, err := provider.ListSubmissions(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing submissions: %v\n", err)
			os.Exit(1)
		}

		if err := writeSubmissions(os.Stdout, submissionsOutput, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var submissionsAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Validate and store a submission",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		quietLogger()

		svc := submission.NewService(provider)
		record, err := svc.Submit(cmd.Context(), args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing submission: %v\n", err)
			os.Exit(1)
		}

		if record.Outcome.Valid() {
			fmt.Printf("Submission for %q stored: %s\n", record.Email, validator.ValidMarker)
		} else {
			fmt.Printf("Submission for %q stored with %d violations\n", record.Email, len(record.Outcome.Violations))
		}
	},
}

var submissionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate and store every row of a CSV export",
	Long:  `Reads a comma, semicolon or tab separated file with "name" and "email" (or "nombre" and "correo") header columns. UTF-16 exports with a byte order mark are accepted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		quietLogger()

		pairs, err := importer.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
			os.Exit(1)
		}

		svc := submission.NewService(provider)
		records, err := importPairs(cmd.Context(), svc, pairs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing submission: %v\n", err)
			os.Exit(1)
		}

		if err := writeSubmissions(os.Stdout, submissionsOutput, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// importPairs submits rows in file order and stops at the first storage error.
func importPairs(ctx context.Context, svc *submission.Service, pairs []importer.Pair) ([]storage.Submission, error) {
	records := make([]storage.Submission, 0, len(pairs))
	for _, p := range pairs {
		record, err := svc.Submit(ctx, p.Name, p.Email)
		if err != nil {
			return records, fmt.Errorf("line %d: %w", p.Line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// YAML has no custom marshalling for outcomes, so spell it out.
type submissionView struct {
	Name          string    `yaml:"name"`
	Email         string    `yaml:"email"`
	ErrorMessages any       `yaml:"errorMessages"`
	ReceivedAt    time.Time `yaml:"received_at"`
}

func writeSubmissions(w io.Writer, format string, records []storage.Submission) error {
	switch format {
	case outputJSON:
		if records == nil {
			records = []storage.Submission{}
		}
		return encode(w, format, records)

	case outputYAML:
		views := make([]submissionView, 0, len(records))
		for _, r := range records {
			var messages any = validator.ValidMarker
			if !r.Outcome.Valid() {
				messages = r.Outcome.Messages()
			}
			views = append(views, submissionView{r.Name, r.Email, messages, r.ReceivedAt})
		}
		return encode(w, format, views)

	case outputTable:
		if len(records) == 0 {
			fmt.Fprintln(w, "No submissions found.")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNAME\tEMAIL\tRESULT\tRECEIVED AT")
		for i, r := range records {
			result := validator.ValidMarker
			if !r.Outcome.Valid() {
				result = fmt.Sprintf("%d violations", len(r.Outcome.Violations))
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.Name, r.Email, result, r.ReceivedAt.Format(time.RFC3339))
		}
		return tw.Flush()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func init() {
	submissionsListCmd.Flags().StringVarP(&submissionsOutput, "output", "o", outputTable, "output format: table, json or yaml")
	submissionsImportCmd.Flags().StringVarP(&submissionsOutput, "output", "o", outputTable, "output format: table, json or yaml")

	rootCmd.AddCommand(submissionsCmd)
	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsAddCmd)
	submissionsCmd.AddCommand(submissionsImportCmd)
}
