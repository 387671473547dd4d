package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/chart"
	"github.com/flexidash/flexidash/internal/config"
	"github.com/flexidash/flexidash/internal/secrets"
)

// ChartFileName is the editable chart written by init.
const ChartFileName = "chart.csv"

type initOptions struct {
	force   bool
	company config.Company
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new flexidash project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config")
	cmd.Flags().StringVar(&opts.company.ID, "company", "", "id of a first company to configure")
	cmd.Flags().StringVar(&opts.company.Name, "name", "", "company display name")
	cmd.Flags().StringVar(&opts.company.URL, "url", "", "AbraFlexi company URL, e.g. https://host/c/firma")
	cmd.Flags().StringVar(&opts.company.User, "user", "", "AbraFlexi API user")
	cmd.Flags().StringVar(&opts.company.Currency, "currency", "EUR", "reporting currency")

	return cmd
}

func runInit(out io.Writer, dir string, opts initOptions) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	cfg := config.Default()
	for _, d := range []string{cfg.Logs.Dir, ImportDir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if opts.company.ID != "" {
		if opts.company.Name == "" {
			opts.company.Name = opts.company.ID
		}
		opts.company.ChartFile = ChartFileName
		cfg.Companies = append(cfg.Companies, opts.company)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := chart.Save(filepath.Join(dir, ChartFileName), chart.DefaultTable()); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := ".env\n*.db\n*.db-wal\n*.db-shm\nlogs/\nexport/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if opts.company.ID != "" {
		example := secrets.PasswordVar(opts.company.ID) + "=\n"
		if err := os.WriteFile(filepath.Join(dir, ".env.example"), []byte(example), 0o644); err != nil {
			return fmt.Errorf("writing .env.example: %w", err)
		}
	}

	fmt.Fprintf(out, "Initialized flexidash project at %s\n", dir)
	return nil
}
