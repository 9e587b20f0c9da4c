package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/codec"
	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/ofx"
	"github.com/pennywise-app/pennywise/internal/store"
)

func importCmd() *cobra.Command {
	var accountID string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import transactions from OFX/QFX or CSV files",
		Long: `Import bank transactions into one account. Rows that already exist, fail
validation, or predate the account's last reconciliation are skipped, so
re-importing the same file is harmless.

CSV files need a header with at least "date" and "amount" columns;
"description", "payee", "category", and "notes" are picked up when present.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			account, ok := l.Account(accountID)
			if !ok {
				return fmt.Errorf("%w: account %s", ledger.ErrNotFound, accountID)
			}
			precision := accountPrecision(account)

			var candidates []model.Movement
			bar := progressbar.Default(int64(len(args)), "reading files")
			for _, path := range args {
				rows, err := readCandidateFile(path, precision, l)
				if err != nil {
					slog.Error("Failed to read import file", "file", path, "error", err)
					_ = bar.Add(1)
					continue
				}
				candidates = append(candidates, rows...)
				_ = bar.Add(1)
			}
			if len(candidates) == 0 {
				return fmt.Errorf("no transactions found in any file")
			}

			next, res, err := l.ImportMovements(accountID, candidates)
			if err != nil {
				return err
			}
			fmt.Printf("\n%d imported, %d duplicates, %d invalid, %d before last reconciliation\n",
				res.Imported, res.Duplicates, res.Invalid, res.Reconciled)

			if dryRun {
				fmt.Println("Dry run; nothing was saved.")
				return nil
			}
			if res.Imported == 0 {
				return nil
			}
			// Pure insertions take the append fast path instead of rewriting
			// the movements file.
			return store.AppendMovements(next, dir, res.Added)
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "target account id (required)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview without saving")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func readCandidateFile(path string, precision int, l ledger.Ledger) ([]model.Movement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close import file", "file", path, "error", closeErr)
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return ofx.ReadCandidates(f, precision)
	default:
		return readCSVCandidates(f, precision, l)
	}
}

// readCSVCandidates maps CSV rows by header name onto movement candidates.
// The kind is derived from the amount's sign; a category column is resolved
// by name or id against the current categories, and unresolved values are
// left for the import operation to degrade to uncategorized.
func readCSVCandidates(f io.Reader, precision int, l ledger.Ledger) ([]model.Movement, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var candidates []model.Movement
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		date, _ := model.ParseDate(field(row, "date"))
		amount := codec.ParseMoney(field(row, "amount"), precision)
		kind := model.MovementIncome
		if amount < 0 {
			kind = model.MovementExpense
		}
		candidates = append(candidates, model.Movement{
			Kind:        kind,
			Date:        date,
			CategoryID:  resolveCategory(l, field(row, "category")),
			Description: field(row, "description"),
			Payee:       field(row, "payee"),
			Notes:       field(row, "notes"),
			Amount:      amount,
			Source:      model.SourceImport,
		})
	}
	return candidates, nil
}

func resolveCategory(l ledger.Ledger, value string) string {
	if value == "" {
		return ""
	}
	for _, c := range l.Categories {
		if strings.EqualFold(c.Name, value) {
			return c.ID
		}
	}
	return value
}
