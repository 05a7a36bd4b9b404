package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/services"
)

// draftFieldNames lists the editable wire names shown in usage messages.
const draftFieldNames = "wine_name, vintage, varietal, region, producer, color, rating, tasting_date, price, appearance, aroma, taste, finish, food_pairing, notes, drinking_with, meal_type"

// New opens a blank draft.
func (a *App) New(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	a.app.Form.OpenNew()
	printlnFn("New tasting note opened. Use 'set <field> <value>' to fill it in, 'submit' to save.")
	return nil
}

// Edit opens a draft prefilled from a cached note.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, ok := parseID(args, "Usage: edit <id>")
	if !ok {
		return nil
	}

	rec, found := a.app.Records.Get(id)
	if !found {
		printfFn("No tasting note with id %d\n", id)
		return nil
	}

	a.app.Form.OpenEdit(rec)
	printfFn("Editing #%d %s. Use 'set <field> <value>', 'submit' to save.\n", rec.ID, rec.WineName)
	return nil
}

// Set writes one field of the open draft. Called without arguments it prints
// the current draft instead.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printDraft()
		return nil
	}

	field := args[0]
	value := strings.Join(args[1:], " ")

	err := a.app.Form.SetField(field, value)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrUnknownField):
		printlnFn("Unknown field. Fields:", draftFieldNames)
		return err
	default:
		printlnFn(commandErrText(err))
		return err
	}
}

func (a *App) printDraft() {
	draft, ok := a.app.Form.Draft()
	if !ok {
		printlnFn(commandErrText(services.ErrNoDraft))
		return
	}

	if draft.Editing() {
		printfFn("Draft (editing #%d)\n", draft.RecordID)
	} else {
		printlnFn("Draft (new note)")
	}
	printField("wine_name", draft.WineName)
	printField("vintage", draft.Vintage)
	printField("varietal", draft.Varietal)
	printField("region", draft.Region)
	printField("producer", draft.Producer)
	printField("color", draft.Color)
	printField("rating", draft.Rating)
	printField("tasting_date", draft.TastingDate)
	printField("price", draft.Price)
	printField("appearance", draft.Appearance)
	printField("aroma", draft.Aroma)
	printField("taste", draft.Taste)
	printField("finish", draft.Finish)
	printField("food_pairing", draft.FoodPairing)
	printField("notes", draft.Notes)
	printField("drinking_with", draft.DrinkingWith)
	printField("meal_type", draft.MealType)
	for _, name := range draft.Photos {
		printfFn("  photo: %s\n", name)
	}
}

// Submit saves the draft to the server.
func (a *App) Submit(ctx context.Context) error {
	if err := a.app.Form.Submit(ctx); err != nil {
		printlnFn("Save failed:", commandErrText(err))
		return err
	}
	printlnFn("Saved")
	return nil
}

// Cancel discards the draft.
func (a *App) Cancel(ctx context.Context) error {
	if !a.app.Form.Open() {
		printlnFn(commandErrText(services.ErrNoDraft))
		return nil
	}
	a.app.Form.Cancel()
	printlnFn("Draft discarded")
	return nil
}
