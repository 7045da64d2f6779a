package main

import (
	"log"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/fjod/go_cart/checkout-function/internal/app"
	"github.com/fjod/go_cart/checkout-function/internal/config"
	"github.com/fjod/go_cart/checkout-function/internal/lambda"
	"github.com/fjod/go_cart/checkout-function/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app.SetupTracing()

	logg := logger.New(os.Stdout, "checkout-lambda", logger.ParseLevel(cfg.LogLevel))

	// Metrics are not scraped inside Lambda; CloudWatch gets the structured logs.
	handler, err := app.NewHandler(cfg, logg, nil)
	if err != nil {
		log.Fatalf("failed to initialise checkout: %v", err)
	}

	awslambda.Start(lambda.NewHandler(handler, logg).Handle)
}
