package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateListCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List shipments, newest first",
		Long:  `List one page of shipments, newest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := domain.NewPageParams(flgs.Page, flgs.PageSize)
			if err != nil {
				return err
			}
			return f.withService(flgs, func(ctx context.Context, svc ports.ShipmentService) error {
				page, err := svc.List(ctx, params)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "TRACKING ID\tSTATUS\tLOCATION\tCUSTOMS\tID")
				for _, s := range page.Items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.TrackingID, s.Status, s.CurrentLocation, s.CustomsStatus, s.ID)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d of %d shipments\n", page.Page, len(page.Items), page.Total)
				return err
			})
		},
	}
	c.Flags().IntVar(&flgs.Page, flagMap.Page.Name, flagMap.Page.Value, flagMap.Page.Usage)
	c.Flags().IntVar(&flgs.PageSize, flagMap.PageSize.Name, flagMap.PageSize.Value, flagMap.PageSize.Usage)
	return c
}
