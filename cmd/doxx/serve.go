package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/iw2rmb/doxx"
	"github.com/iw2rmb/doxx/document"
	"github.com/iw2rmb/doxx/internal/server"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Serve.Parse(cc, args); err != nil {
		return err
	}
	c, err := cfg.load()
	if err != nil {
		return err
	}
	if cfg.Addr != "" {
		c.Server.Listen = cfg.Addr
	}
	log, closeLog, err := newLogger(c.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := c.Measurer()
	if err != nil {
		return err
	}
	opts := []document.Option{document.WithMeasurer(m), document.WithLogger(log)}
	if c.Layout.ColumnWidth > 0 {
		opts = append(opts, document.WithColumnWidth(c.Layout.ColumnWidth))
	}
	srv := server.New(document.NewEngine(opts...), log, server.Options{
		MaxReflowPasses: c.Layout.MaxReflowPasses,
		MaxSessions:     c.Server.MaxSessions,
	})

	httpServer := &http.Server{
		Addr:              c.Server.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting doxx", "addr", c.Server.Listen, "version", doxx.Version())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...", "sessions", srv.Sessions().Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
