package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/bookstore/book"
	"github.com/marcelsud/bookstore/book/mongo"
	"github.com/marcelsud/bookstore/book/postgres"
	"github.com/marcelsud/bookstore/config"
	"github.com/marcelsud/bookstore/internal/http/chi"
	"github.com/marcelsud/bookstore/metrics"
)

const TIMEOUT = 30 * time.Second

/* main wires the application together: both storage adapters are
 * constructed and pinged before the listener starts, so the server never
 * accepts traffic it cannot serve. Imports point one direction only:
 * main -> business -> storage.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	documentRepo, err := mongo.NewRepository(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Timeout())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer documentRepo.Close(ctx)

	relationalRepo, err := postgres.NewRepository(ctx, cfg.PostgresDSN, cfg.Timeout())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer relationalRepo.Close(ctx)

	collector := metrics.NewStoreCollector(map[string]metrics.Counter{
		"mongo":    documentRepo,
		"postgres": relationalRepo,
	})
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	documentBooks := book.NewService(documentRepo)
	relationalBooks := book.NewService(relationalRepo)

	r := chi.Handlers(ctx, documentBooks, relationalBooks, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s (instance %s)\n", cfg.Port, exporter.InstanceID())
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	default:
		errShutdown <- fmt.Errorf("forcing the server to close")
	}
}
