package cli

import "os"

// Flags holds every option the shipctl commands read. Each command binds only
// the fields it needs.
type Flags struct {
	RedisURL  string
	KeyPrefix string

	ID         string
	TrackingID string
	Page       int
	PageSize   int
	File       string

	Index       int
	Title       string
	Description string
	Location    string
	Completed   bool
	Placeholder bool
}

type FlagSet[T any] struct {
	Name  string
	Usage string
	Value T
}

type FlagMap struct {
	RedisURL    FlagSet[string]
	KeyPrefix   FlagSet[string]
	ID          FlagSet[string]
	TrackingID  FlagSet[string]
	Page        FlagSet[int]
	PageSize    FlagSet[int]
	File        FlagSet[string]
	Index       FlagSet[int]
	Title       FlagSet[string]
	Description FlagSet[string]
	Location    FlagSet[string]
	Completed   FlagSet[bool]
	Placeholder FlagSet[bool]
}

var flagMap = FlagMap{
	RedisURL: FlagSet[string]{
		Name:  "redis-url",
		Usage: "Redis URL holding shipment records. Defaults to $REDIS_URL.",
		Value: envOr("REDIS_URL", "redis://localhost:6379/0"),
	},
	KeyPrefix: FlagSet[string]{
		Name:  "key-prefix",
		Usage: "Namespace of the shipment keys. Defaults to $REDIS_KEY_PREFIX.",
		Value: envOr("REDIS_KEY_PREFIX", "clearance"),
	},
	ID: FlagSet[string]{
		Name:  "id",
		Usage: "Internal shipment ID.",
	},
	TrackingID: FlagSet[string]{
		Name:  "tracking-id",
		Usage: "Public tracking code, e.g. SCS-20251102-330.",
	},
	Page: FlagSet[int]{
		Name:  "page",
		Usage: "Page number, starting at 1.",
		Value: 1,
	},
	PageSize: FlagSet[int]{
		Name:  "page-size",
		Usage: "Shipments per page, at most 100.",
		Value: 20,
	},
	File: FlagSet[string]{
		Name:  "file",
		Usage: "Path of a JSON shipment draft, or - for stdin.",
	},
	Index: FlagSet[int]{
		Name:  "index",
		Usage: "Zero-based position of the progress event.",
		Value: -1,
	},
	Title: FlagSet[string]{
		Name:  "title",
		Usage: "Event title, e.g. \"Out for Delivery\".",
	},
	Description: FlagSet[string]{
		Name:  "description",
		Usage: "Event description.",
	},
	Location: FlagSet[string]{
		Name:  "location",
		Usage: "Event location.",
	},
	Completed: FlagSet[bool]{
		Name:  "completed",
		Usage: "Mark the event as completed.",
	},
	Placeholder: FlagSet[bool]{
		Name:  "placeholder",
		Usage: "Add the event as a future milestone without a timestamp.",
	},
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
