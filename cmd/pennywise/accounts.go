package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/store"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsEditCmd())
	cmd.AddCommand(accountsHideCmd())
	cmd.AddCommand(accountsDeleteCmd())
	return cmd
}

func accountsListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balance status",
		RunE: func(_ *cobra.Command, _ []string) error {
			l, _, err := loadLedger()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tCURRENCY\tBALANCE\tSTATUS")
			for _, a := range l.Accounts {
				if a.Hidden && !all {
					continue
				}
				status, err := l.BalanceStatus(a.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					a.ID, a.Name, a.Kind, a.Currency, formatAmount(a.Balance, a), status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include hidden accounts")
	return cmd
}

func accountsAddCmd() *cobra.Command {
	var kind, currency, institution, balance string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			if currency == "" {
				currency = viper.GetString("currency.default")
			}
			in := ledger.AccountInput{
				Name:        args[0],
				Kind:        model.AccountKind(kind),
				Currency:    currency,
				Institution: institution,
			}
			in.Balance, err = parseAmount(balance, model.Account{Currency: currency})
			if err != nil {
				return err
			}
			next, account, err := l.CreateAccount(in)
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Created account %s (%s)\n", account.Name, account.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "checking", "account kind (cash, checking, credit_card, loan, savings, asset, crypto)")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default from config)")
	cmd.Flags().StringVar(&institution, "institution", "", "institution name")
	cmd.Flags().StringVar(&balance, "balance", "0", "reported starting balance")
	return cmd
}

func accountsEditCmd() *cobra.Command {
	var name, kind, currency, institution string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			patch := ledger.AccountPatch{
				Name:        stringFlag(cmd.Flags().Changed("name"), name),
				Currency:    stringFlag(cmd.Flags().Changed("currency"), currency),
				Institution: stringFlag(cmd.Flags().Changed("institution"), institution),
			}
			if cmd.Flags().Changed("kind") {
				k := model.AccountKind(kind)
				patch.Kind = &k
			}
			next, account, err := l.UpdateAccount(args[0], patch)
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Updated account %s\n", account.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&kind, "kind", "", "new kind")
	cmd.Flags().StringVar(&currency, "currency", "", "new currency code")
	cmd.Flags().StringVar(&institution, "institution", "", "new institution")
	return cmd
}

func accountsHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <id>",
		Short: "Hide an account without deleting its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			next, err := l.HideAccount(args[0])
			if err != nil {
				return err
			}
			return store.Persist(next, dir)
		},
	}
}

func accountsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account that has no movements",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			next, err := l.DeleteAccount(args[0])
			if err != nil {
				return err
			}
			return store.Persist(next, dir)
		},
	}
}
