package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateCreateCommand(flgs *Flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a shipment from a JSON draft",
		Long:  `Create a shipment from a JSON draft. The draft uses the same fields as POST /admin/shipments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flgs.File == "" {
				return errorMissingFlag(flagMap.File.Name)
			}
			draft, err := readDraft(cmd.InOrStdin(), flgs.File)
			if err != nil {
				return err
			}
			return f.withService(flgs, func(ctx context.Context, svc ports.ShipmentService) error {
				s, err := svc.Create(ctx, draft)
				if err != nil {
					return err
				}
				return printMessageWithData(cmd.OutOrStdout(), "Created shipment:\n", s)
			})
		},
	}
	c.Flags().StringVar(&flgs.File, flagMap.File.Name, flagMap.File.Value, flagMap.File.Usage)
	return c
}

func readDraft(stdin io.Reader, path string) (domain.Draft, error) {
	var r io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return domain.Draft{}, err
		}
		defer file.Close()
		r = file
	}

	var draft domain.Draft
	if err := json.NewDecoder(r).Decode(&draft); err != nil {
		return domain.Draft{}, fmt.Errorf("invalid draft %s: %w", path, err)
	}
	return draft, nil
}
