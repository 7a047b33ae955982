package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/deskhop/deskhop/internal/config"
	"github.com/deskhop/deskhop/internal/desktops"
	"github.com/deskhop/deskhop/internal/dispatch"
	"github.com/deskhop/deskhop/internal/hotkeys"
	"github.com/deskhop/deskhop/internal/ipc"
	"github.com/deskhop/deskhop/internal/notify"
	"github.com/deskhop/deskhop/internal/overlay"
	"github.com/deskhop/deskhop/internal/platform"
	"github.com/deskhop/deskhop/internal/tray"
)

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (overlay: %s, inset: %dpx)", cfg.OverlayDuration(), cfg.OverlayInset)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	// Connect to display server
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	log.Println("deskhop daemon started successfully")

	// Overlay manager draws indicators on every monitor after a switch
	overlays := overlay.NewManager(&overlay.X11Surface{Backend: backend}, cfg.OverlayDuration(), cfg.OverlayInset)

	var trayUI *tray.Tray

	notifier := notify.New(cfg.NotificationsEnabled())

	tracker := desktops.NewTracker(backend, func(n int) {
		if _, err := overlays.Display(n); err != nil {
			logger.Warn("overlay display failed", "desktop", n, "error", err)
		}
		if trayUI != nil {
			trayUI.SetDesktop(n)
		}
	})
	// A failed Init leaves the tracker degraded: switch/move/pin fail
	// fast with descriptive errors instead of the daemon dying here.
	if err := tracker.Init(); err != nil {
		log.Printf("Warning: desktop initialization failed, running degraded: %v", err)
		notifier.Error(fmt.Sprintf("desktop initialization failed: %v", err))
	}

	// Created before the dispatch loop starts so the tracker's switch
	// hook never races the assignment. Menu callbacks only fire after
	// trayUI.Run, by which point the dispatcher and shutdown func exist.
	var dispatcher *dispatch.Dispatcher
	var requestShutdown func()
	if cfg.TrayEnabled() {
		trayUI = tray.New(tray.Callbacks{
			OnSwitchDesktop: func(n int) {
				go func() {
					if _, err := dispatcher.Invoke(hotkeys.Action{Kind: hotkeys.KindSwitch, Desktop: n}); err != nil {
						logger.Warn("tray switch failed", "desktop", n, "error", err)
					}
				}()
			},
			OnAbout: func() {
				// Explicitly requested, so it bypasses the
				// notifications toggle.
				notify.New(true).Info(tray.AboutText())
			},
			OnQuit: func() { requestShutdown() },
		})
	}

	dispatcher = dispatch.New(tracker, overlays, notifier, logger)

	// Register the fixed hotkey scheme; a grab conflict disables only
	// that binding
	handler := hotkeys.NewHandler(backend)
	table, failures := handler.RegisterAll(hotkeys.FixedBindings(), dispatcher.Fire)
	for binding, err := range failures {
		log.Printf("Warning: failed to bind %s: %v", binding.Sequence, err)
	}
	dispatcher.SetTable(table)
	log.Printf("Registered %d hotkeys", table.Len())

	go dispatcher.Run()

	// Start IPC server
	ipcServer, err := ipc.NewServer(dispatcher, backend)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			log.Println("Shutting down deskhop daemon...")
			handler.DetachAll()
			overlays.CancelAll()
			if err := dispatcher.Stop(2 * time.Second); err != nil {
				log.Printf("Warning: %v", err)
			}
			ipcServer.Stop()
			backend.StopEventLoop()
			if trayUI != nil {
				trayUI.Quit()
			}
		})
	}
	requestShutdown = shutdown

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		shutdown()
	}()

	if trayUI != nil {
		// The tray loop needs the main goroutine; X events move to a
		// background one.
		go func() {
			log.Println("Entering event loop...")
			backend.EventLoop()
			shutdown()
		}()

		trayUI.Run(func() {
			if current, ok := tracker.Current(); ok {
				trayUI.SetDesktop(current)
			}
		}, nil)
		return
	}

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	backend.EventLoop()
}
