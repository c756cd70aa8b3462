package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/models"
	"concierge/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedDemo(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableHotel(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableProvider(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableBooking(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLoyaltyProgram(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLoyaltyMember(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePointsEntry(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLoyaltyReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableRedemptionEntry(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SERVER_MODE, Value: "production"},
				{Key: services.CONFIG_LEADERBOARD_LIMIT, Value: "20"},
				{Key: services.CONFIG_TOP_MEMBERS_LIMIT, Value: "10"},
				{Key: services.CONFIG_CRONJOB_TIME_EXPIRATION, Value: "0 3 * * *"},
				{Key: services.CONFIG_CRONJOB_TIME_LEADERBOARD, Value: "*/15 * * * *"},
				{Key: services.CONFIG_WEBHOOK_URL, Value: ""},
			}

			for _, config := range configs {
				if err := datastore.InsertConfig(ctx, db, config); err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// commandSeedDemo loads a small working dataset: one hotel with an active
// program, a couple of rewards, a hotel admin and a guest.
func commandSeedDemo() *cli.Command {
	return &cli.Command{
		Name: "seed-demo",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			now := time.Now()

			hotel := &models.Hotel{
				ID:        uuid.NewString(),
				Name:      "Grand Meridian",
				Slug:      "grand-meridian",
				City:      "Lisbon",
				Timezone:  "Europe/Lisbon",
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := datastore.InsertHotel(ctx, db, hotel); err != nil {
				return err
			}

			program := &models.LoyaltyProgram{
				ID:      uuid.NewString(),
				HotelID: hotel.ID,
				Name:    "Meridian Rewards",
				Tiers: []models.TierConfig{
					{Name: "Bronze", MinPoints: 0, Benefits: []string{"member rates"}, DiscountPercentage: 0},
					{Name: "Silver", MinPoints: 1000, Benefits: []string{"late checkout"}, DiscountPercentage: 5},
					{Name: "Gold", MinPoints: 5000, Benefits: []string{"room upgrades"}, DiscountPercentage: 10},
				},
				PointsRules: models.PointsRules{
					PointsPerDollar: 1,
					ServiceMultipliers: map[string]float64{
						models.CategorySpa:    2,
						models.CategoryDining: 1.5,
					},
				},
				RedemptionRules: models.RedemptionRules{
					PointsToMoneyRatio: 100,
					MinimumRedemption:  500,
				},
				ExpirationMonths: 24,
				IsActive:         true,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if _, err := datastore.InsertProgram(ctx, db, program); err != nil {
				return err
			}

			rewards := []*models.LoyaltyReward{
				{
					ID:           uuid.NewString(),
					HotelID:      hotel.ID,
					Name:         "Free Breakfast",
					Description:  "Breakfast for two at the main restaurant",
					PointsCost:   500,
					Value:        30,
					ValidityDays: 90,
					IsActive:     true,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
				{
					ID:           uuid.NewString(),
					HotelID:      hotel.ID,
					Name:         "Spa Day Pass",
					Description:  "Full day access to the spa and pools",
					PointsCost:   2000,
					Value:        120,
					RequiredTier: "Silver",
					ValidityDays: 180,
					IsActive:     true,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
			}
			for _, reward := range rewards {
				if _, err := datastore.InsertReward(ctx, db, reward); err != nil {
					return err
				}
			}

			admin := &models.User{
				ID:        uuid.NewString(),
				FirstName: "Ana",
				LastName:  "Ferreira",
				Email:     "admin@grand-meridian.example",
				Role:      models.RoleHotelAdmin,
				HotelID:   &hotel.ID,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := datastore.CreateUser(ctx, db, admin); err != nil {
				return err
			}

			guest := &models.User{
				ID:        uuid.NewString(),
				FirstName: "Tom",
				LastName:  "Okafor",
				Email:     "guest@example.com",
				Role:      models.RoleGuest,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := datastore.CreateUser(ctx, db, guest); err != nil {
				return err
			}

			fmt.Println("Seed success")
			fmt.Println("hotel:", hotel.ID)
			fmt.Println("admin:", admin.ID)
			fmt.Println("guest:", guest.ID)

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
