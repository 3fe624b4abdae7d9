package tui

import (
	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/config"
	"github.com/PizzaHomicide/nplay/internal/ui/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Options is passed through to the app model
type Options = models.AppOptions

func Run(cfg *config.Config, cat *catalog.Catalog, opts Options) error {
	p := tea.NewProgram(models.NewAppModel(cfg, cat, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
