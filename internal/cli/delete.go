package cli

import (
	"context"
	"fmt"

	"clearance-tracker/internal/features/shipments/ports"

	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateDeleteCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "rm",
		Short: "Delete a shipment by ID",
		Long:  `Delete a shipment by ID. Its tracking code stops resolving immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flgs.ID == "" {
				return errorMissingFlag(flagMap.ID.Name)
			}
			return f.withService(flgs, func(ctx context.Context, svc ports.ShipmentService) error {
				if err := svc.Delete(ctx, flgs.ID); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted shipment %s\n", flgs.ID)
				return err
			})
		},
	}
	c.Flags().StringVar(&flgs.ID, flagMap.ID.Name, flagMap.ID.Value, flagMap.ID.Usage)
	return c
}
