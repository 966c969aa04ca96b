package main

import (
	"fmt"

	"github.com/muaishaq001/nacos-hub/internal/flow"
	"github.com/muaishaq001/nacos-hub/internal/repository"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <matric-number>",
	Short: "Look up a membership by matric number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := repository.NewVerificationStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		res, err := flow.NewVerifier(store).Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch res.Outcome {
		case flow.OutcomeNotFound:
			fmt.Fprintf(out, "%s: not found\n", res.MatricNumber)
		default:
			r := res.Record
			fmt.Fprintf(out, "%s: %s\n  name:       %s\n  department: %s\n  level:      %s\n",
				res.MatricNumber, res.Outcome, r.Name, r.Department, r.Level)
		}
		return nil
	},
}
