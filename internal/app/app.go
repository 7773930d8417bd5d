package app

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"hydroboard/internal/config"
	"hydroboard/internal/services"
	"hydroboard/internal/state"
	"hydroboard/internal/stub"
	"hydroboard/internal/ui"
)

func Run() {
	base := config.DefaultConfig()
	loaded, loadErr := config.LoadConfig()
	if loadErr == nil {
		base = loaded
	}
	cfg := config.ParseFlags(base)

	// The stub listens on an ephemeral port, so its address must never
	// reach cfg or it would end up persisted in config.json.
	baseURL := cfg.APIBaseURL
	if cfg.Demo {
		address, err := startStub(cfg.DemoDir)
		if err != nil {
			fmt.Println("Hydroboard stub error:", err)
			return
		}
		baseURL = address
	}

	client := services.NewAPIClient(baseURL, cfg.Timeout())
	cache := services.NewSnapshotCache()
	workflow := state.NewWorkflow()

	model := ui.NewModel(workflow, client, client, client, cache, cfg)
	if loadErr != nil {
		model = model.WithStatus("Config warning: using defaults")
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Println("Hydroboard error:", err)
		return
	}
	if err := config.SaveConfig(config.PersistedConfig(cfg, base)); err != nil {
		fmt.Println("Hydroboard config save error:", err)
	}
}

// startStub serves the local stand-in backend on a free loopback port and
// returns its base URL.
func startStub(baseDir string) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	server := stub.NewServer(baseDir)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println("Hydroboard stub stopped:", err)
		}
	}()
	return "http://" + listener.Addr().String(), nil
}
