package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/codec"
	"github.com/pennywise-app/pennywise/internal/ledger"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/store"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budget categories",
	}
	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesHideCmd())
	cmd.AddCommand(categoriesDeleteCmd())
	return cmd
}

func categoriesListCmd() *cobra.Command {
	var all bool
	var from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with assigned, activity, and available",
		RunE: func(_ *cobra.Command, _ []string) error {
			l, _, err := loadLedger()
			if err != nil {
				return err
			}
			fromDate, err := model.ParseDate(from)
			if err != nil {
				return err
			}
			toDate, err := model.ParseDate(to)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tGROUP\tKIND\tASSIGNED\tACTIVITY\tAVAILABLE")
			for _, c := range l.Categories {
				if c.Hidden && !all {
					continue
				}
				activity := l.CategoryActivity(c.ID, fromDate, toDate)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Group, c.Kind,
					codec.FormatMoney(c.Assigned, codec.DefaultPrecision),
					codec.FormatMoney(activity, codec.DefaultPrecision),
					codec.FormatMoney(c.Assigned+activity, codec.DefaultPrecision))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include hidden categories")
	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD)")
	return cmd
}

func categoriesAddCmd() *cobra.Command {
	var kind, group, assigned string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			budget, err := codec.ParseMoneyStrict(assigned, codec.DefaultPrecision)
			if err != nil {
				return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
			}
			next, category, err := l.CreateCategory(ledger.CategoryInput{
				Kind:     model.CategoryKind(kind),
				Name:     args[0],
				Group:    group,
				Assigned: budget,
			})
			if err != nil {
				return err
			}
			if err := store.Persist(next, dir); err != nil {
				return err
			}
			fmt.Printf("Created category %s (%s)\n", category.Name, category.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "expense", "category kind (income, expense)")
	cmd.Flags().StringVar(&group, "group", "", "group label")
	cmd.Flags().StringVar(&assigned, "assigned", "0", "budgeted amount")
	return cmd
}

func categoriesHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <id>",
		Short: "Hide a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			next, err := l.HideCategory(args[0])
			if err != nil {
				return err
			}
			return store.Persist(next, dir)
		},
	}
}

func categoriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category; its movements become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, dir, err := loadLedger()
			if err != nil {
				return err
			}
			next, err := l.DeleteCategory(args[0])
			if err != nil {
				return err
			}
			return store.Persist(next, dir)
		},
	}
}
