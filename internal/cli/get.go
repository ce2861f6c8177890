package cli

import (
	"context"

	"clearance-tracker/internal/features/shipments/ports"

	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateGetCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "get",
		Short: "Print a shipment by ID",
		Long:  `Print the full shipment record for an internal ID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flgs.ID == "" {
				return errorMissingFlag(flagMap.ID.Name)
			}
			return f.withService(flgs, func(ctx context.Context, svc ports.ShipmentService) error {
				s, err := svc.GetByID(ctx, flgs.ID)
				if err != nil {
					return err
				}
				return printMessageWithData(cmd.OutOrStdout(), "", s)
			})
		},
	}
	c.Flags().StringVar(&flgs.ID, flagMap.ID.Name, flagMap.ID.Value, flagMap.ID.Usage)
	return c
}

func (f CommandFactory) CreateTrackCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "track",
		Short: "Look a shipment up by tracking code",
		Long:  `Look a shipment up by its public tracking code, as the tracking page does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flgs.TrackingID == "" {
				return errorMissingFlag(flagMap.TrackingID.Name)
			}
			return f.withService(flgs, func(ctx context.Context, svc ports.ShipmentService) error {
				s, err := svc.Track(ctx, flgs.TrackingID)
				if err != nil {
					return err
				}
				return printMessageWithData(cmd.OutOrStdout(), "", s)
			})
		},
	}
	c.Flags().StringVar(&flgs.TrackingID, flagMap.TrackingID.Name, flagMap.TrackingID.Value, flagMap.TrackingID.Usage)
	return c
}
