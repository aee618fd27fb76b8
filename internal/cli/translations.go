package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alzentdigital/website/pkg/i18n"
)

// ErrAuditFailed is returned when the audit reports errors, or warnings
// under --strict.
var ErrAuditFailed = errors.New("translation audit failed")

// requiredKeys are looked up by the form guard, the validator and the email
// templates. A missing key falls back to English, so the audit only warns.
var requiredKeys = []string{
	"validation.required",
	"validation.email",
	"validation.entity",
	"validation.maxlength",
	"validation.min_amount",
	"validation.max_amount",
	"email.sending",
	"email.success",
	"email.error",
	"email.error_network",
	"email.error_validation",
	"forms.rate_limited.other",
	"mail.subject.notification",
	"mail.subject.confirmation",
}

func newValidateTranslationsCmd() *cobra.Command {
	var (
		dir    string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate-translations",
		Short: "Audit translation catalogues for unsafe markup",
		Long: `Scan every translation string for script injection patterns and for tags
outside the allowed inline set. Without --dir the built-in catalogue is
audited. Exits non-zero when errors are found.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidateTranslations(cmd.Context(), cmd.OutOrStdout(), dir, strict)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of YAML or JSON catalogues to audit")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func runValidateTranslations(ctx context.Context, w io.Writer, dir string, strict bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	adapter := i18n.NewFSAdapter(i18n.Locales(), ".")
	if dir != "" {
		adapter = i18n.NewFSAdapter(os.DirFS(dir), ".")
	}
	tr, err := i18n.NewTranslator(ctx, adapter)
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	report := tr.Audit(
		i18n.WithRequiredLanguages(i18n.SupportedLanguages...),
		i18n.WithRequiredKeys(requiredKeys...),
	)
	for _, f := range report.Findings {
		fmt.Fprintln(w, f.String())
		if f.Sanitized != "" {
			fmt.Fprintf(w, "  suggested: %s\n", f.Sanitized)
		}
	}

	errCount := len(report.Errors())
	warnCount := len(report.Findings) - errCount
	fmt.Fprintf(w, "%d languages, %d errors, %d warnings\n", len(tr.SupportedLanguages()), errCount, warnCount)

	if errCount > 0 || (strict && warnCount > 0) {
		return ErrAuditFailed
	}
	return nil
}
