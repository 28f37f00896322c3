package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/bookstore/book"
	"github.com/marcelsud/bookstore/book/mongo"
	"github.com/marcelsud/bookstore/book/postgres"
	"github.com/marcelsud/bookstore/config"
	"github.com/marcelsud/bookstore/seed"
)

/* seed - loads a YAML book catalog into both stores.
 * Usage: go run cmd/seed/main.go [catalog.yaml]
 *
 * The two stores hold independent datasets; seeding writes the same
 * catalog to each, but nothing keeps them in sync afterwards.
 */

func main() {
	catalogFile := "catalog.yaml"
	if len(os.Args) > 1 {
		catalogFile = os.Args[1]
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	loader := seed.NewLoader()
	if err := loader.Load(catalogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()

	documentRepo, err := mongo.NewRepository(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Timeout())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer documentRepo.Close(ctx)

	relationalRepo, err := postgres.NewRepository(ctx, cfg.PostgresDSN, cfg.Timeout())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer relationalRepo.Close(ctx)

	if err := relationalRepo.CreateTable(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stores := map[string]book.Repository{
		"mongo":    documentRepo,
		"postgres": relationalRepo,
	}

	for name, repo := range stores {
		svc := book.NewService(repo)
		for _, b := range loader.List() {
			created, err := svc.Create(ctx, patchOf(b))
			if err != nil {
				fmt.Fprintf(os.Stderr, "seeding %s: %v\n", name, err)
				os.Exit(1)
			}
			fmt.Printf("[%s] %s by %s -> %s\n", name, created.Title, created.Author, created.ID)
		}
	}

	fmt.Printf("Seeded %d books into %d stores\n", len(loader.List()), len(stores))
}

func patchOf(b book.Book) book.Patch {
	p := book.Patch{
		Title:  &b.Title,
		Author: &b.Author,
		Pages:  &b.Pages,
		Rating: &b.Rating,
		Genre:  &b.Genre,
	}
	if b.Review != "" {
		p.Review = &b.Review
	}
	return p
}
