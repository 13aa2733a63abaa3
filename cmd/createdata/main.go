package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/velmark/crm-backend/internal/fixtures"
	"github.com/velmark/crm-backend/internal/infra/database"
	"github.com/velmark/crm-backend/internal/infra/logging"
)

func main() {
	godotenv.Load()

	eventLog, err := logging.NewEventLog()
	if err != nil {
		log.Fatal(err)
	}
	defer eventLog.Sync()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	seeder := &fixtures.Seeder{
		Users:     database.NewUserRepository(db),
		Services:  database.NewServiceRepository(db),
		Campaigns: database.NewCampaignRepository(db),
		Leads:     database.NewLeadRepository(db),
		Contracts: database.NewContractRepository(db),
		Clients:   database.NewClientRepository(db),
		Log:       eventLog,
	}

	if err := seeder.Run(ctx); err != nil {
		eventLog.Error("failed to create test data: " + err.Error())
		os.Exit(1)
	}
}
