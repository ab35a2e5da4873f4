// Command seed restaura el dataset de demo (cuentas user/user1, mascotas Adam y Joe, un post).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	mdb "pet-adoption/internal/adapters/storage/mongodb"
	"pet-adoption/internal/domain/accounts"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/posts"
	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	demoPassword = "1234"
	demoImage    = "0ae88b1b20944ffdecbe8bf86c9011a4"
)

func main() {
	drop := flag.Bool("drop", false, "drop the app collections before seeding")
	flag.Parse()

	cfg := config.Load()
	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	if cfg.MongoURI == "" {
		log.Error("MONGO_URI is required", nil)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mdb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("mongo unavailable", map[string]any{"error": err})
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if err := run(ctx, db, *drop, log); err != nil {
		log.Error("seed failed", map[string]any{"error": err})
		os.Exit(1)
	}
	log.Info("seed done", map[string]any{"database": cfg.MongoDatabase})
}

func run(ctx context.Context, db *mongo.Database, drop bool, log logger.Logger) error {
	if drop {
		for _, c := range []string{mdb.CollAccounts, mdb.CollPets, mdb.CollPosts, mdb.CollComments, mdb.CollRatings} {
			if err := db.Collection(c).Drop(ctx); err != nil {
				return fmt.Errorf("drop %s: %w", c, err)
			}
		}
	}
	if err := mdb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	accountsSvc := accounts.NewService(mdb.NewAccountsRepo(db))
	petsSvc := pets.NewService(mdb.NewPetsRepo(db), accountsSvc)
	postsSvc := posts.NewService(mdb.NewPostsRepo(db), ratings.NewService(mdb.NewRatingsRepo(db)))

	for _, u := range []string{"user", "user1"} {
		if _, err := accountsSvc.Create(ctx, u, demoPassword, accounts.Profile{}); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				log.Warn("account already exists", map[string]any{"username": u})
				continue
			}
			return err
		}
	}

	// Adam nace de user y pasa a user1, así queda priorOwners = [user].
	adam, err := petsSvc.Create(ctx, "user", pets.CreateInput{
		Name:        "Adam",
		Species:     "dog",
		Age:         2,
		Zipcode:     "07053",
		Description: "adam is a very funny pet",
		Tag:         "funny",
		ImageRef:    demoImage,
	})
	if err != nil {
		return err
	}
	if ok, err := petsSvc.TransferOwnership(ctx, adam.ID, "user", "user1"); err != nil || !ok {
		return fmt.Errorf("transfer adam: ok=%v err=%v", ok, err)
	}

	if _, err := petsSvc.Create(ctx, "user", pets.CreateInput{
		Name:        "Joe",
		Species:     "cat",
		Age:         1,
		Zipcode:     "07946",
		Description: "a very small cat",
		Tag:         "small",
		ImageRef:    demoImage,
	}); err != nil {
		return err
	}

	_, err = postsSvc.Create(ctx, "user", posts.CreateInput{
		Title:    "My new pet",
		ImageRef: demoImage,
		Tag:      "pet",
		Body:     "here is my new pet",
	})
	return err
}
