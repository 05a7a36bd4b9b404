package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
)

// List prints every cached tasting note, one line each, in server order.
func (a *App) List(ctx context.Context) error {
	a.printRecords(a.app.Records.All())
	return nil
}

// Search prints the cached notes matching the given term. No term lists
// everything, same as List.
func (a *App) Search(ctx context.Context, args []string) error {
	a.printRecords(a.app.Filtered(strings.Join(args, " ")))
	return nil
}

func (a *App) printRecords(recs []models.TastingRecord) {
	if len(recs) == 0 {
		printlnFn("No tasting notes")
		return
	}
	for _, rec := range recs {
		line := fmt.Sprintf("%4d  %s", rec.ID, rec.WineName)
		if rec.Vintage != nil {
			line += fmt.Sprintf(" (%d)", *rec.Vintage)
		}
		if rec.Region != "" {
			line += ", " + rec.Region
		}
		if rec.Rating != nil {
			line += fmt.Sprintf("  %.1f/5", *rec.Rating)
		}
		if n := len(rec.Photos); n > 0 {
			line += fmt.Sprintf("  [%d photo(s)]", n)
		}
		printlnFn(line)
	}
}

// Show prints a single cached note in full, photo URLs included.
func (a *App) Show(ctx context.Context, args []string) error {
	id, ok := parseID(args, "Usage: show <id>")
	if !ok {
		return nil
	}

	rec, found := a.app.Records.Get(id)
	if !found {
		printfFn("No tasting note with id %d\n", id)
		return nil
	}

	printfFn("#%d %s\n", rec.ID, rec.WineName)
	printField("Vintage", formatIntField(rec.Vintage))
	printField("Varietal", rec.Varietal)
	printField("Region", rec.Region)
	printField("Producer", rec.Producer)
	printField("Color", string(rec.Color))
	printField("Rating", formatFloatField(rec.Rating))
	printField("Tasting date", rec.TastingDate)
	printField("Price", formatFloatField(rec.Price))
	printField("Appearance", rec.Appearance)
	printField("Aroma", rec.Aroma)
	printField("Taste", rec.Taste)
	printField("Finish", rec.Finish)
	printField("Food pairing", rec.FoodPairing)
	printField("Notes", rec.Notes)
	printField("Drinking with", rec.DrinkingWith)
	printField("Meal type", rec.MealType)
	for _, name := range rec.Photos {
		printfFn("  photo: %s\n", a.client.PhotoURL(name))
	}
	return nil
}

// Refresh reloads the record list from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.app.Records.Refresh(ctx); err != nil {
		printlnFn("Refresh failed:", commandErrText(err))
		return err
	}
	printfFn("%d tasting notes\n", a.app.Records.Len())
	return nil
}

// Delete removes a note after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, ok := parseID(args, "Usage: delete <id>")
	if !ok {
		return nil
	}

	if err := a.app.DeleteRecord(ctx, id); err != nil {
		printlnFn(commandErrText(err))
		return err
	}
	printlnFn("Deleted")
	return nil
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn(usage)
		return 0, false
	}
	return id, true
}

func printField(label, value string) {
	if value == "" {
		return
	}
	printfFn("  %-14s %s\n", label+":", value)
}

func formatIntField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
