package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/capmap-hq/capmap/core/capability"
	"github.com/capmap-hq/capmap/server"
)

const seedDebounce = 500 * time.Millisecond

// runAPI starts the HTTP JSON API and blocks until interrupted.
func runAPI(args []string) int {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	var (
		listen   string
		seedPath string
		watch    bool
	)
	fs.StringVar(&listen, "listen", "", "listen address (default: configured or :8321)")
	fs.StringVar(&seedPath, "seed", "", "capability seed file (default: configured or built-in framework)")
	fs.BoolVar(&watch, "watch", false, "reload the knowledge base when the seed file changes")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if listen == "" {
		listen = cfg.Server.Listen
	}
	if seedPath == "" {
		seedPath = cfg.Server.Seed
	}
	watch = watch || cfg.Server.Watch

	store, err := capability.LoadSeedFile(seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	api := server.NewHTTP(version, store, newGenerator(cfg))
	httpSrv := &http.Server{Addr: listen, Handler: api.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Printf("capmap api %s listening on %s\n", version, listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if watch && seedPath != "" {
		g.Go(func() error {
			return watchSeed(ctx, seedPath, api)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	fmt.Println("capmap api stopped")
	return 0
}

// watchSeed reloads the knowledge base whenever the seed file changes,
// debounced so editors that write in bursts trigger a single reload.
func watchSeed(ctx context.Context, seedPath string, api *server.HTTP) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files rather than write in place.
	if err := watcher.Add(filepath.Dir(seedPath)); err != nil {
		return fmt.Errorf("watching %s: %w", seedPath, err)
	}

	var mu sync.Mutex
	var timer *time.Timer

	reload := func() {
		store, err := capability.LoadSeedFile(seedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch: seed reload failed: %v\n", err)
			return
		}
		api.ReplaceStore(store)
		fmt.Printf("watch: reloaded %s\n", seedPath)
	}

	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(seedDebounce, reload)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(seedPath) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-ctx.Done():
			return nil
		}
	}
}
