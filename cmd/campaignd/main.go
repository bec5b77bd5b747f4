package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"crowdfund/pkg/api"
	"crowdfund/pkg/campaign"
	"crowdfund/pkg/campaign/store"
	"crowdfund/pkg/events"
	"crowdfund/pkg/vault"
	"crowdfund/pkg/wallet"
)

type campaignConfig struct {
	Admin    string
	Goal     int64
	Deadline time.Duration
	Port     int
}

// systemClock supplies wall-clock time to the campaign
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func main() {
	// Parse command line flags
	config := campaignConfig{}
	flag.StringVar(&config.Admin, "admin", "", "Campaign admin address")
	flag.Int64Var(&config.Goal, "goal", 100000, "Funding goal in smallest value units")
	flag.DurationVar(&config.Deadline, "deadline", 7*24*time.Hour, "Contribution window from startup")
	flag.IntVar(&config.Port, "port", 8080, "API listen port")
	flag.Parse()

	// Validate input
	if config.Admin == "" {
		adminWallet, err := wallet.CreateWallet()
		if err != nil {
			log.Fatalf("Failed to create admin wallet: %v", err)
		}
		config.Admin = adminWallet.Address
	}
	if !wallet.ValidAddress(config.Admin) {
		log.Fatalf("Invalid admin address: %s", config.Admin)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// The escrow account holds the campaign's custodied value
	escrowWallet, err := wallet.CreateWallet()
	if err != nil {
		log.Fatalf("Failed to create escrow wallet: %v", err)
	}
	custody := vault.NewVault()
	escrow := vault.NewEscrow(custody, escrowWallet.Address)

	service := campaign.NewService(
		config.Admin,
		&campaign.Config{
			Goal:            big.NewInt(config.Goal),
			DeadlineOffset:  config.Deadline,
			ApprovalPercent: 50,
		},
		store.NewMemoryStore(),
		systemClock{},
		escrow,
		events.NewLogSink(logger),
		logger,
	)

	logger.Info().
		Str("admin", config.Admin).
		Str("escrow", escrowWallet.Address).
		Int64("goal", config.Goal).
		Time("deadline", service.Deadline()).
		Msg("campaign created")

	server := api.NewServer(service, config.Port, logger)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down campaign daemon...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
