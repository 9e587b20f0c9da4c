package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/store"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txEditCmd())
	cmd.AddCommand(txDeleteCmd())
	return cmd
}

func txListCmd() *cobra.Command {
	var account string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(_ *cobra.Command, _ []string) error {
			l, _, err := loadLedger()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tACCOUNT\tKIND\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, m := range l.Movements {
				if account != "" && m.AccountID != account {
					continue
				}
				owner, _ := l.Account(m.AccountID)
				category := ""
				if c, ok := l.Category(m.CategoryID); ok {
					category = c.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Date, owner.Name, m.Kind, formatAmount(m.Amount, owner), category, m.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "only this account id")
	return cmd
}

func txAddCmd() *cobra.Command {
	var accountID, kind, date, amount, category, description, payee, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a transaction",
		RunE: func(_ *cobra.Command, _ []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			account, ok := l.Account(accountID)
			if !ok {
				return fmt.Errorf("%w: account %s", ledger.ErrNotFound, accountID)
			}
			when, err := model.ParseDate(date)
			if err != nil {
				return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
			}
			minor, err := parseAmount(amount, account)
			if err != nil {
				return err
			}
			next, movement, err := l.CreateMovement(ledger.MovementInput{
				Kind:        model.MovementKind(kind),
				AccountID:   accountID,
				Date:        when,
				CategoryID:  category,
				Description: description,
				Payee:       payee,
				Amount:      minor,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Created transaction %s\n", movement.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	cmd.Flags().StringVar(&kind, "kind", "expense", "kind (income, expense)")
	cmd.Flags().StringVar(&date, "date", model.Today().String(), "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, negative for outflow (required)")
	cmd.Flags().StringVar(&category, "category", "", "category id, empty for uncategorized")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&payee, "payee", "", "payee")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func txEditCmd() *cobra.Command {
	var kind, accountID, date, amount, category, description, payee, notes string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a transaction",
		Long: `Update fields of a transaction. For a transfer member, kind, amount, and
account cannot be edited here; use "pennywise transfer" instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			existing, ok := l.Movement(args[0])
			if !ok {
				return fmt.Errorf("%w: movement %s", ledger.ErrNotFound, args[0])
			}
			owner, _ := l.Account(existing.AccountID)
			patch := ledger.MovementPatch{
				AccountID:   stringFlag(cmd.Flags().Changed("account"), accountID),
				CategoryID:  stringFlag(cmd.Flags().Changed("category"), category),
				Description: stringFlag(cmd.Flags().Changed("description"), description),
				Payee:       stringFlag(cmd.Flags().Changed("payee"), payee),
				Notes:       stringFlag(cmd.Flags().Changed("notes"), notes),
			}
			if cmd.Flags().Changed("kind") {
				k := model.MovementKind(kind)
				patch.Kind = &k
			}
			if cmd.Flags().Changed("date") {
				when, err := model.ParseDate(date)
				if err != nil {
					return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
				}
				patch.Date = &when
			}
			if cmd.Flags().Changed("amount") {
				minor, err := parseAmount(amount, owner)
				if err != nil {
					return err
				}
				patch.Amount = &minor
			}
			next, movement, err := l.UpdateMovement(args[0], patch)
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Updated transaction %s\n", movement.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "new kind")
	cmd.Flags().StringVar(&accountID, "account", "", "new account id")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category id")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&payee, "payee", "", "new payee")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction (a transfer member deletes its pair too)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			next, err := l.DeleteMovement(args[0])
			if err != nil {
				return err
			}
			return store.Persist(next, dir)
		},
	}
}
