package cli

import (
	"context"

	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/spf13/cobra"
)

// CreateEventCommand groups the progress timeline subcommands.
func (f CommandFactory) CreateEventCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "event",
		Short: "Edit a shipment's progress timeline",
	}
	c.PersistentFlags().StringVar(&flgs.ID, flagMap.ID.Name, flagMap.ID.Value, flagMap.ID.Usage)
	c.AddCommand(
		f.CreateEventAddCommand(flgs),
		f.CreateEventEditCommand(flgs),
		f.CreateEventRemoveCommand(flgs),
		f.CreateEventToggleCommand(flgs),
	)
	return c
}

func (f CommandFactory) CreateEventAddCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: "Append a progress event",
		Long:  `Append a progress event. Status and current location follow the new last event.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flgs.ID == "" {
				return errorMissingFlag(flagMap.ID.Name)
			}
			in := domain.EventInput{
				Title:       flgs.Title,
				Description: flgs.Description,
				Location:    flgs.Location,
				Completed:   flgs.Completed,
				Placeholder: flgs.Placeholder,
			}
			return f.mutateAndPrint(cmd, flgs, func(ctx context.Context, svc ports.ShipmentService) (*domain.Shipment, error) {
				return svc.AppendEvent(ctx, flgs.ID, in)
			})
		},
	}
	bindEventFields(c, flgs)
	c.Flags().BoolVar(&flgs.Placeholder, flagMap.Placeholder.Name, flagMap.Placeholder.Value, flagMap.Placeholder.Usage)
	return c
}

func (f CommandFactory) CreateEventEditCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "edit",
		Short: "Edit a progress event in place",
		Long:  `Edit a progress event in place. Only the flags given are changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIndex(flgs); err != nil {
				return err
			}

			var p domain.EventPatch
			if cmd.Flags().Changed(flagMap.Title.Name) {
				p.Title = &flgs.Title
			}
			if cmd.Flags().Changed(flagMap.Description.Name) {
				p.Description = &flgs.Description
			}
			if cmd.Flags().Changed(flagMap.Location.Name) {
				p.Location = &flgs.Location
			}
			if cmd.Flags().Changed(flagMap.Completed.Name) {
				p.Completed = &flgs.Completed
			}
			return f.mutateAndPrint(cmd, flgs, func(ctx context.Context, svc ports.ShipmentService) (*domain.Shipment, error) {
				return svc.EditEvent(ctx, flgs.ID, flgs.Index, p)
			})
		},
	}
	bindEventFields(c, flgs)
	bindIndex(c, flgs)
	return c
}

func (f CommandFactory) CreateEventRemoveCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "rm",
		Short: "Remove a progress event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIndex(flgs); err != nil {
				return err
			}
			return f.mutateAndPrint(cmd, flgs, func(ctx context.Context, svc ports.ShipmentService) (*domain.Shipment, error) {
				return svc.RemoveEvent(ctx, flgs.ID, flgs.Index)
			})
		},
	}
	bindIndex(c, flgs)
	return c
}

func (f CommandFactory) CreateEventToggleCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "toggle",
		Short: "Flip the completed flag of a progress event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIndex(flgs); err != nil {
				return err
			}
			return f.mutateAndPrint(cmd, flgs, func(ctx context.Context, svc ports.ShipmentService) (*domain.Shipment, error) {
				return svc.ToggleCompleted(ctx, flgs.ID, flgs.Index)
			})
		},
	}
	bindIndex(c, flgs)
	return c
}

func (f CommandFactory) mutateAndPrint(cmd *cobra.Command, flgs *Flags, fn func(ctx context.Context, svc ports.ShipmentService) (*domain.Shipment, error)) error {
	return f.withService(flgs, func(ctx context.Context, svc ports.ShipmentService) error {
		s, err := fn(ctx, svc)
		if err != nil {
			return err
		}
		return printMessageWithData(cmd.OutOrStdout(), "", s)
	})
}

func bindEventFields(c *cobra.Command, flgs *Flags) {
	c.Flags().StringVar(&flgs.Title, flagMap.Title.Name, flagMap.Title.Value, flagMap.Title.Usage)
	c.Flags().StringVar(&flgs.Description, flagMap.Description.Name, flagMap.Description.Value, flagMap.Description.Usage)
	c.Flags().StringVar(&flgs.Location, flagMap.Location.Name, flagMap.Location.Value, flagMap.Location.Usage)
	c.Flags().BoolVar(&flgs.Completed, flagMap.Completed.Name, flagMap.Completed.Value, flagMap.Completed.Usage)
}

func bindIndex(c *cobra.Command, flgs *Flags) {
	c.Flags().IntVar(&flgs.Index, flagMap.Index.Name, flagMap.Index.Value, flagMap.Index.Usage)
}

func requireIndex(flgs *Flags) error {
	if flgs.ID == "" {
		return errorMissingFlag(flagMap.ID.Name)
	}
	if flgs.Index < 0 {
		return errorMissingFlag(flagMap.Index.Name)
	}
	return nil
}
