package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"clearance-tracker/internal/core/cache"
	"clearance-tracker/internal/features/shipments/adapters"
	"clearance-tracker/internal/features/shipments/ports"
	"clearance-tracker/internal/features/shipments/service"

	"github.com/spf13/cobra"
)

// lookupCacheTTL matches the API default so CLI mutations invalidate the
// entries the API has cached.
const lookupCacheTTL = 30 * time.Second

// CommandFactory builds the shipctl commands around a service constructor.
type CommandFactory struct {
	// CreateService returns the service to operate on and a func releasing its resources.
	CreateService func(ctx context.Context, flags *Flags) (ports.ShipmentService, func() error, error)
}

var defaultCommandFactory = CommandFactory{
	CreateService: createShipmentService,
}

func setDefaultFlags(c *cobra.Command, flgs *Flags) {
	c.PersistentFlags().StringVar(&flgs.RedisURL, flagMap.RedisURL.Name, flagMap.RedisURL.Value, flagMap.RedisURL.Usage)
	c.PersistentFlags().StringVar(&flgs.KeyPrefix, flagMap.KeyPrefix.Name, flagMap.KeyPrefix.Value, flagMap.KeyPrefix.Usage)
}

// CreateRootCommand returns shipctl with every subcommand attached.
func (f CommandFactory) CreateRootCommand(flgs *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "shipctl",
		Short:         "shipctl manages shipment records and their progress timelines",
		Long:          `shipctl reads and edits shipment records directly in Redis, using the same rules as the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	setDefaultFlags(root, flgs)

	root.AddCommand(
		f.CreateListCommand(flgs),
		f.CreateGetCommand(flgs),
		f.CreateTrackCommand(flgs),
		f.CreateCreateCommand(flgs),
		f.CreateDeleteCommand(flgs),
		f.CreateEventCommand(flgs),
	)
	return root
}

// withService runs fn against a freshly created service and releases it afterwards.
func (f CommandFactory) withService(flgs *Flags, fn func(ctx context.Context, svc ports.ShipmentService) error) error {
	ctx := context.Background()
	svc, closeFn, err := f.CreateService(ctx, flgs)
	if err != nil {
		return err
	}
	defer func() {
		if closeFn != nil {
			_ = closeFn()
		}
	}()
	return fn(ctx, svc)
}

func createShipmentService(ctx context.Context, flags *Flags) (ports.ShipmentService, func() error, error) {
	redisCache, err := cache.NewRedisAdapter(flags.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	if err := redisCache.Ping(ctx); err != nil {
		_ = redisCache.Close()
		return nil, nil, fmt.Errorf("redis is unreachable at %s: %w", flags.RedisURL, err)
	}

	repo := adapters.NewRedisShipmentRepository(redisCache.Client(), flags.KeyPrefix)
	svc := service.NewShipmentService(repo, redisCache, service.Settings{
		LookupCacheTTL:    lookupCacheTTL,
		LookupCachePrefix: flags.KeyPrefix,
	})
	return svc, redisCache.Close, nil
}

// Execute runs shipctl with os.Args.
func Execute() {
	root := defaultCommandFactory.CreateRootCommand(&Flags{})
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}
