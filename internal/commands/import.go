package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/flexidash/flexidash/internal/importer"
	"github.com/flexidash/flexidash/internal/storage"
	"github.com/flexidash/flexidash/internal/sync"
	"github.com/flexidash/flexidash/internal/synclog"
)

// ImportDir is the default directory scanned by import.
const ImportDir = "import"

func newImportCommand(global *globalOptions) *cobra.Command {
	var (
		year int
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "import <company> [file]",
		Short: "Store statements built from saved trial balance files",
		Long: "Process a JSON or CSV stav-uctu export as if it had been fetched from AbraFlexi.\n" +
			"Without a file, the single file waiting in the import directory is processed and\n" +
			"then moved to its processed/ subdirectory. One file holds one year, so several\n" +
			"files are refused.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global.configPath)
			if err != nil {
				return err
			}
			co, err := lookupCompany(cfg, args[0])
			if err != nil {
				return err
			}

			registry := importer.DefaultRegistry()
			files := args[1:]
			scanned := len(files) == 0
			if scanned {
				if dir == "" {
					dir = filepath.Join(filepath.Dir(cfg.Storage.Path), ImportDir)
				}
				found, err := registry.Scan(dir)
				if err != nil {
					return err
				}
				for _, f := range found {
					files = append(files, f.Path)
				}
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}
			// Every file would land on the same year document.
			if len(files) > 1 {
				names := make([]string, len(files))
				for i, f := range files {
					names[i] = filepath.Base(f)
				}
				return fmt.Errorf("%d files for one year (%s): import them one at a time with --year",
					len(files), strings.Join(names, ", "))
			}

			store, err := storage.Open(cmd.Context(), cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			syncer := sync.New(cfg, nil, nil, store, synclog.New(cfg.Logs.Dir), nil)

			if year == 0 {
				year = cfg.YearOr(time.Now())
			}

			var outcomes []sync.Outcome
			for _, path := range files {
				rows, err := registry.ParseFile(path)
				if err != nil {
					return err
				}
				o := syncer.Import(cmd.Context(), co, year, rows, filepath.Base(path))
				outcomes = append(outcomes, o)
				if o.Err == nil && scanned {
					if err := importer.MarkProcessed(filepath.Dir(path), filepath.Base(path)); err != nil {
						return err
					}
				}
			}

			if err := printOutcomes(cmd.OutOrStdout(), outcomes); err != nil {
				return err
			}
			return sync.Failed(outcomes)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "accounting year of the files (default: sync.year or the current year)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory to scan when no files are given (default: import next to the database)")
	return cmd
}
