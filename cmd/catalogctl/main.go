package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/skirent/backend/internal/application/catalog"
	"github.com/skirent/backend/internal/domain/shared"
	"github.com/skirent/backend/internal/infrastructure/config"
	"github.com/skirent/backend/internal/infrastructure/event"
	"github.com/skirent/backend/internal/infrastructure/logger"
	"github.com/skirent/backend/internal/infrastructure/messaging"
	"github.com/skirent/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// catalogctl manages the product catalog from the command line. Every
// mutation publishes the corresponding product event to Kafka, so the
// reconciliation worker picks it up like any other catalog change.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	serializer := event.NewCatalogEventSerializer()
	producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ProductTopic)
	publisher := event.NewProductEventPublisher(producer, serializer, log,
		event.WithPublishTimeout(cfg.Event.PublishTimeout),
	)
	// Close waits for in-flight publishes, so CLI mutations reach the
	// broker before the process exits.
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Error closing event publisher", zap.Error(err))
		}
	}()

	productRepo := persistence.NewGormProductRepository(db.DB)
	products := catalogapp.NewProductService(productRepo, publisher, log)

	ctx := context.Background()

	if err := runCommand(ctx, products, command, args[1:]); err != nil {
		log.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}

func runCommand(ctx context.Context, products *catalogapp.ProductService, command string, args []string) error {
	switch command {
	case "create":
		return runCreate(ctx, products, args)

	case "update":
		return runUpdate(ctx, products, args)

	case "get":
		if len(args) < 1 {
			return fmt.Errorf("usage: catalogctl get <id|sku>")
		}
		resp, err := lookup(ctx, products, args[0])
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "list":
		filter := shared.DefaultFilter()
		if len(args) > 0 {
			filter.Search = args[0]
		}
		resp, total, err := products.List(ctx, filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d products total\n", total)
		return printJSON(resp)

	case "activate", "deactivate", "delete":
		if len(args) < 1 {
			return fmt.Errorf("usage: catalogctl %s <id|sku>", command)
		}
		resp, err := lookup(ctx, products, args[0])
		if err != nil {
			return err
		}
		switch command {
		case "activate":
			resp, err = products.Activate(ctx, resp.ID)
		case "deactivate":
			resp, err = products.Deactivate(ctx, resp.ID)
		case "delete":
			return products.Delete(ctx, resp.ID)
		}
		if err != nil {
			return err
		}
		return printJSON(resp)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runCreate(ctx context.Context, products *catalogapp.ProductService, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	req := catalogapp.CreateProductRequest{}
	var basePrice string
	fs.StringVar(&req.SKU, "sku", "", "Product SKU (required)")
	fs.StringVar(&req.Name, "name", "", "Product name (required)")
	fs.StringVar(&req.EquipmentType, "type", "", "Equipment type, e.g. SKI_BOARD, BOOT (required)")
	fs.StringVar(&basePrice, "base-price", "0", "Purchase price (required)")
	fs.StringVar(&req.CategoryName, "category", "", "Category name")
	fs.StringVar(&req.BrandName, "brand", "", "Brand name")
	fs.StringVar(&req.SizeRange, "size-range", "", "Size range, e.g. 150-170cm")
	fs.StringVar(&req.DifficultyLevel, "difficulty", "", "Difficulty level")
	fs.StringVar(&req.Description, "description", "", "Description")
	fs.StringVar(&req.ImageURL, "image-url", "", "Image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	price, err := decimal.NewFromString(basePrice)
	if err != nil {
		return fmt.Errorf("invalid base price %q: %w", basePrice, err)
	}
	req.BasePrice = price

	resp, err := products.Create(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runUpdate(ctx context.Context, products *catalogapp.ProductService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: catalogctl update <id|sku> [flags]")
	}
	existing, err := lookup(ctx, products, args[0])
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	req := catalogapp.UpdateProductRequest{
		Name:            existing.Name,
		CategoryName:    existing.CategoryName,
		BrandName:       existing.BrandName,
		EquipmentType:   existing.EquipmentType,
		SizeRange:       existing.SizeRange,
		DifficultyLevel: existing.DifficultyLevel,
		BasePrice:       existing.BasePrice,
		Description:     existing.Description,
		ImageURL:        existing.ImageURL,
	}
	var basePrice string
	fs.StringVar(&req.Name, "name", req.Name, "Product name")
	fs.StringVar(&req.EquipmentType, "type", req.EquipmentType, "Equipment type")
	fs.StringVar(&basePrice, "base-price", existing.BasePrice.String(), "Purchase price")
	fs.StringVar(&req.CategoryName, "category", req.CategoryName, "Category name")
	fs.StringVar(&req.BrandName, "brand", req.BrandName, "Brand name")
	fs.StringVar(&req.SizeRange, "size-range", req.SizeRange, "Size range")
	fs.StringVar(&req.DifficultyLevel, "difficulty", req.DifficultyLevel, "Difficulty level")
	fs.StringVar(&req.Description, "description", req.Description, "Description")
	fs.StringVar(&req.ImageURL, "image-url", req.ImageURL, "Image URL")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	price, err := decimal.NewFromString(basePrice)
	if err != nil {
		return fmt.Errorf("invalid base price %q: %w", basePrice, err)
	}
	req.BasePrice = price

	resp, err := products.Update(ctx, existing.ID, req)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

// lookup resolves a product by UUID first, then by SKU.
func lookup(ctx context.Context, products *catalogapp.ProductService, key string) (*catalogapp.ProductResponse, error) {
	if id, err := uuid.Parse(key); err == nil {
		return products.GetByID(ctx, id)
	}
	return products.GetBySKU(ctx, key)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printUsage() {
	fmt.Println(`Catalog management tool

Usage:
  catalogctl [flags] <command> [arguments]

Commands:
  create -sku <sku> -name <name> -type <type> -base-price <price> [flags]
  update <id|sku> [flags]
  get <id|sku>
  list [search]
  activate <id|sku>
  deactivate <id|sku>
  delete <id|sku>

Flags:
  -log-level string   Log level: debug, info, warn, error (default: warn)

Every mutation publishes a product event to Kafka for the rental
inventory to reconcile against.

Examples:
  catalogctl create -sku SKI-001 -name "Rossignol Hero" -type SKI_BOARD -base-price 50000
  catalogctl deactivate SKI-001`)
}
