package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/ranjeetds/gestify/internal/app"
	"github.com/ranjeetds/gestify/internal/config"
	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/server"
	"github.com/ranjeetds/gestify/internal/store"
	"github.com/ranjeetds/gestify/internal/tray"
)

// enabledKey is the settings key under which the tray toggle is persisted.
const enabledKey = "recognition_enabled"

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var (
		configPath = flag.String("config", "", "path to config file (default ~/.gestify/config.yaml)")
		addr       = flag.String("addr", "", "HTTP listen address, overrides config")
		headless   = flag.Bool("headless", false, "run without the system tray")
	)
	flag.Parse()

	if err := run(*configPath, *addr, *headless); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, addr string, headless bool) error {
	fmt.Println("Gestify - Hand Gesture Control")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".gestify")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(dataDir, "config.yaml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	st, err := store.New(filepath.Join(dataDir, "gestify.db"))
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	a := app.New(cfg, st)
	if err := a.LoadBindings(); err != nil {
		log.Printf("Failed to load bindings: %v", err)
	}

	// Restore the enabled state from the previous run.
	if v, err := st.Settings().Get(enabledKey); err == nil && v == "false" {
		a.SetEnabled(false)
	}

	hub := server.NewHub()
	a.AddListener(hub.Broadcast)

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(dataDir)
	}
	if staticDir != "" {
		log.Printf("Serving static files from: %s", staticDir)
	}

	if cfg.Server.Enabled {
		srv := server.New(server.Config{
			StaticDir: staticDir,
			Store:     st,
			Camera:    a.Camera(),
			Hub:       hub,
			OnBindingsChange: func() {
				if err := a.LoadBindings(); err != nil {
					log.Printf("Failed to reload bindings: %v", err)
				}
			},
		})
		go func() {
			log.Printf("Starting server on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	if err := a.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer a.Stop()

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		log.Println("Shutting down")
		return nil
	}

	t := tray.New()
	t.SetEnabled(a.IsEnabled())
	a.AddListener(func(ev gesture.Event) {
		t.SetLastGesture(ev.Gesture.String())
		t.SetAttending(a.Attending())
	})
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if err := st.Settings().Set(enabledKey, strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to persist enabled state: %v", err)
		}
		log.Printf("Recognition enabled: %v", enabled)
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + cfg.Server.Addr)
	})
	t.OnQuit(func() {
		log.Println("Shutting down")
	})

	t.Run()
	return nil
}

// findWebDir searches for the dashboard directory in common locations:
// "web" relative to the working directory, then <dataDir>/web.
func findWebDir(dataDir string) string {
	for _, p := range []string{"web", "../web", filepath.Join(dataDir, "web")} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}

// openBrowser opens the dashboard URL with the platform opener.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
