package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/money"
)

func wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>...",
		Short: "Spell amounts in words",
		Long: `Spell amounts on the crore/lakh scale with paisa, as printed under a
statement's closing balance.`,
		Example: `  stmtgen words 12345678.90
  stmtgen words "Rs. 2,50,000" 1.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				amount, err := money.ParseAmount(arg)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("%q is not an amount", arg), err)
				}

				words := money.NumberToWords(amount)
				if words == "" {
					return common.NewUserError(fmt.Sprintf("%q cannot be spelled out", arg), common.ErrInvalidParameter)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s Only\n", money.FormatMoney(amount), words); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
