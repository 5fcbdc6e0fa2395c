package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmedia/modconsole/internal/audit"
	"github.com/campusmedia/modconsole/internal/config"
	"github.com/campusmedia/modconsole/internal/controller"
	"github.com/campusmedia/modconsole/internal/database"
	"github.com/campusmedia/modconsole/internal/modapi"
	"github.com/campusmedia/modconsole/internal/service"
	"github.com/campusmedia/modconsole/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	auditLog := audit.NewLog(db)

	client := modapi.NewClient(cfg.API.BaseURL, cfg.Token())
	svc, err := service.NewCachingService(client)
	if err != nil {
		log.Fatalf("analysis cache: %v", err)
	}

	notices := tui.NewNotices()
	ctrl := controller.New(svc, notices, auditLog)

	p := tea.NewProgram(tui.New(ctx, cfg, ctrl, auditLog, notices), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
