package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/gni-robotics/fieldrover/internal/config"
	"github.com/gni-robotics/fieldrover/internal/log"
	"github.com/gni-robotics/fieldrover/pkg/camera"
	"github.com/gni-robotics/fieldrover/pkg/mission"
	"github.com/gni-robotics/fieldrover/pkg/motion"
	"github.com/gni-robotics/fieldrover/pkg/photos"
	"github.com/gni-robotics/fieldrover/pkg/sched"
	"github.com/gni-robotics/fieldrover/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	port := flag.String("port", "", "Web server port (overrides config)")
	webDir := flag.String("web", "./web", "Dashboard static files directory")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if *port != "" {
		cfg.Port = *port
	}
	log.Init(cfg.LogLevel)

	fmt.Println("🚜 Field Rover Controller")
	if cfg.Mock {
		fmt.Println("   Motors: MOCK (no hardware commands)")
	} else {
		fmt.Printf("   Motors: Robonect at %s\n", cfg.Robonect.BaseURL)
	}
	fmt.Printf("   Photos: %s\n", cfg.Photos.Dir)
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down...")
		cancel()
	}()

	var sink motion.Sink
	if cfg.Mock {
		sink = motion.NewMock()
	} else {
		sink = motion.NewRobonect(cfg.Robonect.BaseURL, cfg.Robonect.User, cfg.Robonect.Password)
	}

	cam := camera.NewManager(camera.Config{
		Index:   cfg.Camera.Index,
		Width:   cfg.Camera.Width,
		Height:  cfg.Camera.Height,
		Quality: cfg.Camera.Quality,
	})
	defer cam.Close()

	store, err := photos.Open(cfg.Photos.Dir)
	if err != nil {
		log.Error("cannot open photo store", "dir", cfg.Photos.Dir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var driveSync *photos.DriveSync
	if cfg.Drive.ClientID != "" && cfg.Drive.ClientSecret != "" {
		driveSync, err = photos.NewDriveSync(store, photos.DriveSyncConfig{
			ClientID:     cfg.Drive.ClientID,
			ClientSecret: cfg.Drive.ClientSecret,
			FolderID:     cfg.Drive.FolderID,
			TokenPath:    cfg.Drive.TokenPath,
		})
		if err != nil {
			log.Warn("drive sync disabled", "error", err)
			driveSync = nil
		} else {
			defer driveSync.Close()
			fmt.Println("☁️  Drive sync enabled")
		}
	}

	captures := photos.NewService(cam, store, driveSync)
	runner := mission.NewRunner(sink, captures)

	defaults := mission.Params{
		RowTimeMS:      cfg.Mission.RowTimeMS,
		NumRows:        cfg.Mission.NumRows,
		TurnPower:      cfg.Mission.TurnPower,
		TurnRadiusCM:   cfg.Mission.TurnRadiusCM,
		TurnTimeMS:     cfg.Mission.TurnTimeMS,
		CaptureEachRow: cfg.Mission.CaptureEachRow,
	}.Clamp()

	server := web.New(web.Config{
		Port:       cfg.Port,
		WebDir:     *webDir,
		Mock:       cfg.Mock,
		Defaults:   defaults,
		Runner:     runner,
		Sink:       sink,
		Camera:     cam,
		Photos:     captures,
		Store:      store,
		CamManager: cam,
	})

	watcher, err := photos.Watch(store.Dir(), server.PhotoAdded)
	if err != nil {
		log.Warn("photo watcher disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	if cfg.Schedule.Cron != "" {
		scheduler, err := sched.Start(cfg.Schedule.Cron, func() bool {
			return runner.Start(defaults)
		})
		if err != nil {
			log.Error("bad mission schedule", "cron", cfg.Schedule.Cron, "error", err)
			os.Exit(1)
		}
		defer scheduler.Stop()
		fmt.Printf("🗓  Next scheduled mission: %s\n", scheduler.Next().Format("Mon 15:04"))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}

	fmt.Println("👋 Goodbye!")
}
