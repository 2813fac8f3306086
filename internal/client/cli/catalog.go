package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// Catalog lists the equipment and injuries the backend knows about.
func (a *App) Catalog(ctx context.Context) error {
	equipment, injuries, err := a.authService.Catalog(ctx)
	if err != nil {
		printError(a.out, "Cannot load catalog: %v", err)
		return err
	}

	printField(a.out, "Equipment", catalogNames(equipment))
	printField(a.out, "Injuries", catalogNames(injuries))
	return nil
}

func catalogNames(items []models.CatalogItem) string {
	if len(items) == 0 {
		return "-"
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return strings.Join(names, ", ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
