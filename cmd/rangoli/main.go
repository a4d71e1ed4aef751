package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/rangoli/internal/app"
	"github.com/ayusman/rangoli/internal/pipeline"
	"github.com/ayusman/rangoli/internal/server"
	"github.com/ayusman/rangoli/internal/store"
	"github.com/ayusman/rangoli/internal/tray"
)

func main() {
	fmt.Println("Rangoli - Air Drawing")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".rangoli")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "rangoli.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	settings := st.Settings()
	tunables := pipeline.Tunables{
		PinchDebounceFrames: settings.GetInt("pen.debounce", pipeline.DefaultTunables().PinchDebounceFrames),
		SmoothingAlpha:      settings.GetFloat("smoothing.alpha", pipeline.DefaultTunables().SmoothingAlpha),
	}

	application := app.New(app.Config{
		Store:    st,
		CameraID: settings.GetInt("camera.index", 0),
		ModelDir: findModelDir(dataDir),
		Tunables: tunables,
	})

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	application.SetEnabled(true)

	// Configure and start the server
	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Source:    application,
	})

	addr := ":8080"
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main thread until quit.
	tr := tray.New()
	tr.OnToggle(application.SetEnabled)
	tr.OnClear(application.ClearCanvas)
	tr.OnOpen(func() {
		fmt.Printf("Viewer: http://localhost%s\n", addr)
	})
	tr.OnQuit(application.Stop)
	tr.Run()
}

// findModelDir searches for the trained gesture model in common
// locations. Returns empty string if none found, in which case the
// rule-based classifier is used.
func findModelDir(dataDir string) string {
	candidates := []string{
		"model",
		"tfjs_model",
		filepath.Join(dataDir, "model"),
	}
	for _, p := range candidates {
		if info, err := os.Stat(filepath.Join(p, "model.json")); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(p)
			if err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}

// findWebDir searches for the web directory in common locations.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
