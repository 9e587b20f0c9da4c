package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/store"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check and confirm account balances",
	}
	cmd.AddCommand(reconcileStatusCmd())
	cmd.AddCommand(reconcileRunCmd())
	cmd.AddCommand(reconcileAdjustCmd())
	return cmd
}

func reconcileStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <account-id>",
		Short: "Show the account's balance status",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, _, err := loadLedger()
			if err != nil {
				return err
			}
			account, ok := l.Account(args[0])
			if !ok {
				return fmt.Errorf("%w: account %s", ledger.ErrNotFound, args[0])
			}
			status, err := l.BalanceStatus(args[0])
			if err != nil {
				return err
			}
			working, err := l.WorkingBalance(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Account:  %s (%s)\n", account.Name, account.ID)
			fmt.Printf("Status:   %s\n", status)
			fmt.Printf("Reported: %s\n", formatAmount(account.Balance, account))
			fmt.Printf("Working:  %s\n", formatAmount(working, account))
			if !account.Reconciled.IsZero() {
				fmt.Printf("Reconciled on %s\n", account.Reconciled)
			}
			return nil
		},
	}
}

func reconcileRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <account-id> <reported-balance>",
		Short: "Confirm the reported balance matches the transactions",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			account, ok := l.Account(args[0])
			if !ok {
				return fmt.Errorf("%w: account %s", ledger.ErrNotFound, args[0])
			}
			reported, err := parseAmount(args[1], account)
			if err != nil {
				return err
			}
			next, err := l.Reconcile(args[0], reported)
			var disc *ledger.DiscrepancyError
			if errors.As(err, &disc) {
				return fmt.Errorf("%w; run \"pennywise reconcile adjust\" to create a balance adjustment of %s",
					err, formatAmount(disc.Discrepancy, account))
			}
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Account %s reconciled\n", account.Name)
			return nil
		},
	}
}

func reconcileAdjustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <account-id> <reported-balance>",
		Short: "Create a balance adjustment for the current discrepancy",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			account, ok := l.Account(args[0])
			if !ok {
				return fmt.Errorf("%w: account %s", ledger.ErrNotFound, args[0])
			}
			reported, err := parseAmount(args[1], account)
			if err != nil {
				return err
			}
			next, movement, err := l.CreateBalanceAdjustment(args[0], reported)
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Created %s adjustment %s of %s\n",
				movement.Kind, movement.ID, formatAmount(movement.Amount, account))
			return nil
		},
	}
}
