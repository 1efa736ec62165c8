package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"email-intake/internal/validator"
)

var validateOutput string

type validationReport struct {
	Email      string                `json:"email" yaml:"email"`
	Valid      bool                  `json:"valid" yaml:"valid"`
	Violations []validator.Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <email>...",
	Short: "Check email addresses against the validation rules",
	Long:  `Validate one or more email addresses and print every rule each one breaks. Exits with status 1 if any address is invalid.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		quietLogger()

		allValid, err := writeValidation(os.Stdout, validateOutput, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if !allValid {
			os.Exit(1)
		}
	},
}

func writeValidation(w io.Writer, format string, emails []string) (bool, error) {
	allValid := true
	reports := make([]validationReport, 0, len(emails))
	for _, email := range emails {
		outcome := validator.Validate(email)
		allValid = allValid && outcome.Valid()
		reports = append(reports, validationReport{
			Email:      email,
			Valid:      outcome.Valid(),
			Violations: outcome.Violations,
		})
	}

	if format != outputText {
		return allValid, encode(w, format, reports)
	}

	for _, r := range reports {
		if r.Valid {
			fmt.Fprintf(w, "%q: %s\n", r.Email, validator.ValidMarker)
			continue
		}
		fmt.Fprintf(w, "%q:\n", r.Email)
		for _, v := range r.Violations {
			fmt.Fprintf(w, "  - %s (%s)\n", v.Message, v.Rule)
		}
	}
	return allValid, nil
}

func init() {
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", outputText, "output format: text, json or yaml")
	rootCmd.AddCommand(validateCmd)
}
