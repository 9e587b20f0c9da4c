package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/store"
)

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between accounts",
	}
	cmd.AddCommand(transferAddCmd())
	cmd.AddCommand(transferSetAmountCmd())
	cmd.AddCommand(transferUnlinkCmd())
	return cmd
}

func transferAddCmd() *cobra.Command {
	var from, to, amount, date, description, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a transfer between two accounts",
		RunE: func(_ *cobra.Command, _ []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			source, ok := l.Account(from)
			if !ok {
				return fmt.Errorf("%w: account %s", ledger.ErrNotFound, from)
			}
			when, err := model.ParseDate(date)
			if err != nil {
				return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
			}
			minor, err := parseAmount(amount, source)
			if err != nil {
				return err
			}
			next, outflow, inflow, err := l.CreateTransfer(ledger.TransferInput{
				FromAccountID: from,
				ToAccountID:   to,
				Amount:        minor,
				Date:          when,
				Description:   description,
				Notes:         notes,
			})
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Created transfer %s -> %s\n", outflow.ID, inflow.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source account id (required)")
	cmd.Flags().StringVar(&to, "to", "", "destination account id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in the source currency (required)")
	cmd.Flags().StringVar(&date, "date", model.Today().String(), "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "description for both sides")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for both sides")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func transferSetAmountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-amount <movement-id> <amount>",
		Short: "Change a transfer's amount, keeping both sides opposite",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			movement, ok := l.Movement(args[0])
			if !ok {
				return fmt.Errorf("%w: movement %s", ledger.ErrNotFound, args[0])
			}
			owner, _ := l.Account(movement.AccountID)
			minor, err := parseAmount(args[1], owner)
			if err != nil {
				return err
			}
			next, err := l.SyncTransferAmount(args[0], minor)
			if err != nil {
				return err
			}
			return store.Persist(next, dir)
		},
	}
}

func transferUnlinkCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "unlink <movement-id>",
		Short: "Turn one side of a transfer into a plain transaction and drop the other",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			next, movement, err := l.UnlinkTransfer(args[0], model.MovementKind(kind))
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Movement %s is now a plain %s\n", movement.ID, movement.Kind)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "expense", "resulting kind (income, expense)")
	return cmd
}
