package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print a doctor's open slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctorID, _ := cmd.Flags().GetInt64("doctor")
			date, _ := cmd.Flags().GetString("date")
			if doctorID == 0 || date == "" {
				return fmt.Errorf("--doctor and --date are required")
			}
			return runSlots(cmd.Context(), cmd, doctorID, date)
		},
	}
	cmd.Flags().Int64("doctor", 0, "Doctor _id")
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD or YYYY/MM/DD")
	return cmd
}

func runSlots(ctx context.Context, cmd *cobra.Command, doctorID int64, date string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	slots, err := a.buildServices(nil).availability.OpenSlots(ctx, doctorID, date)
	if err != nil {
		return err
	}
	for _, s := range slots {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}
