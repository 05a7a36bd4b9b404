package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/services"
)

// Upload sends one or more photo files to the note being edited. Files that
// cannot be opened are reported and skipped; the rest still go up, one at a
// time, in the order given.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: upload <file> [file ...]")
		return nil
	}

	files := make([]services.PhotoFile, 0, len(args))
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			printfFn("%s: %s\n", path, err.Error())
			continue
		}
		defer f.Close()
		files = append(files, services.PhotoFile{Name: filepath.Base(path), Data: f})
	}
	if len(files) == 0 {
		return nil
	}

	results, err := a.app.Uploader.UploadMany(ctx, files)
	if err != nil {
		printlnFn(commandErrText(err))
		return err
	}

	for _, res := range results {
		if res.Err != nil {
			printfFn("%s: failed: %s\n", res.Name, commandErrText(res.Err))
			continue
		}
		printfFn("%s: uploaded as %s\n", res.Name, res.Filename)
	}
	return nil
}

// DeletePhoto removes a stored photo from the note being edited.
func (a *App) DeletePhoto(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: delphoto <filename>")
		return nil
	}

	if err := a.app.Uploader.DeletePhoto(ctx, args[0]); err != nil {
		printlnFn(commandErrText(err))
		return err
	}
	printlnFn("Photo deleted")
	return nil
}
