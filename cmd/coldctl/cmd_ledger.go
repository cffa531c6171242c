package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var ledgersCmd = &cobra.Command{
	Use:   "ledgers",
	Short: "List ledgers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		ledgers, err := current.api.Ledgers(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tOPENING")
		for _, l := range ledgers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Type, l.OpeningBalance.StringFixed(2))
		}
		return w.Flush()
	},
}

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show closing balances of every ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		ledgers, lines, err := current.api.Balances(cmd.Context())
		if err != nil {
			return err
		}

		sort.SliceStable(ledgers, func(i, j int) bool { return ledgers[i].Name < ledgers[j].Name })

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "LEDGER\tTYPE\tBALANCE\t\t")
		for _, l := range ledgers {
			line := lines[l.ID]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", l.Name, l.Type, line.Amount.StringFixed(2), line.Side)
		}
		return w.Flush()
	},
}

var (
	voucherDebit     string
	voucherCredit    string
	voucherAmount    string
	voucherNarration string
)

var voucherCmd = &cobra.Command{
	Use:   "voucher",
	Short: "Work with vouchers",
}

var voucherPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a voucher between two ledgers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(voucherAmount)
		if err != nil {
			return fmt.Errorf("invalid --amount: %w", err)
		}

		v, err := current.api.PostVoucher(cmd.Context(), models.Voucher{
			DebitLedger:  voucherDebit,
			CreditLedger: voucherCredit,
			Amount:       amount,
			Narration:    voucherNarration,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Posted voucher %s\n", v.ID)
		return nil
	},
}

func init() {
	voucherPostCmd.Flags().StringVar(&voucherDebit, "debit", "", "debit ledger id")
	voucherPostCmd.Flags().StringVar(&voucherCredit, "credit", "", "credit ledger id")
	voucherPostCmd.Flags().StringVar(&voucherAmount, "amount", "", "amount")
	voucherPostCmd.Flags().StringVar(&voucherNarration, "narration", "", "narration")
	_ = voucherPostCmd.MarkFlagRequired("debit")
	_ = voucherPostCmd.MarkFlagRequired("credit")
	_ = voucherPostCmd.MarkFlagRequired("amount")

	voucherCmd.AddCommand(voucherPostCmd)
}
