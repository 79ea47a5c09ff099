package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/growlog/internal/client/services"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
)

var errAborted = errors.New("aborted")

// argOrPrompt returns args[i] when present, otherwise asks for it.
func (a *App) argOrPrompt(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		a.printf("Nothing entered\n")
		return "", errAborted
	}
	return v, nil
}

func (a *App) List(ctx context.Context, _ []string) error {
	plants, err := a.plantService.List(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(plants) == 0 {
		a.printf("No plants yet, use 'add' to create one\n")
		return nil
	}
	return renderPlantList(a.out, plants)
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter plant id to show")
	if err != nil {
		return err
	}

	p, err := a.plantService.Get(ctx, id)
	if err != nil {
		return a.report(err)
	}
	return renderPlant(a.out, p)
}

// Add walks the user through the create form. The phase is asked first
// because it decides which date fields are shown and which one is required.
func (a *App) Add(ctx context.Context, _ []string) error {
	names := make([]string, 0, 3)
	for _, p := range lifecycle.Phases() {
		names = append(names, p.String())
	}

	raw, err := getSimpleText(a.reader, fmt.Sprintf("Phase (%s)", strings.Join(names, ", ")), a.out)
	if err != nil {
		return err
	}
	phase, ok := lifecycle.ParsePhase(raw)
	if !ok {
		err := &lifecycle.MissingFieldError{Field: lifecycle.FieldPhase}
		a.printf("Error: %s\n", err.Error())
		return err
	}

	in := lifecycle.Input{Phase: phase.String()}
	for _, f := range lifecycle.FormFields(phase) {
		if f.Kind == lifecycle.KindPhase {
			continue
		}

		prompt := f.Label
		switch {
		case f.Kind == lifecycle.KindDate && f.Required:
			prompt += " (YYYY-MM-DD, required)"
		case f.Kind == lifecycle.KindDate:
			prompt += " (YYYY-MM-DD, optional)"
		case !f.Required:
			prompt += " (optional)"
		}

		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		setInputField(&in, f.Name, v)
	}

	p, err := a.plantService.Create(ctx, in)
	if err != nil {
		var mf *lifecycle.MissingFieldError
		var bad *lifecycle.InvalidDateError
		if errors.As(err, &mf) || errors.As(err, &bad) {
			a.printf("Error: %s\n", err.Error())
			return err
		}
		return a.report(err)
	}

	a.printf("Created plant %s (%s, %d days)\n", p.ID, p.PhaseLabel, p.AgeDays)
	return nil
}

func setInputField(in *lifecycle.Input, name, value string) {
	switch name {
	case lifecycle.FieldName:
		in.Name = value
	case lifecycle.FieldGenetics:
		in.Genetics = value
	case lifecycle.FieldGerminationDate:
		in.GerminationDate = value
	case lifecycle.FieldVegetationDate:
		in.VegetationDate = value
	case lifecycle.FieldFloweringDate:
		in.FloweringDate = value
	}
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter plant id to delete")
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, "Delete plant "+id+"? This cannot be undone", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled\n")
		return nil
	}

	if err := a.plantService.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	a.printf("Plant deleted\n")
	return nil
}

func (a *App) Summary(ctx context.Context, _ []string) error {
	s, err := a.plantService.Summary(ctx)
	if err != nil {
		return a.report(err)
	}
	return renderSummary(a.out, s)
}

// Photo uploads an image file as the plant photo: photo <id> <file>.
func (a *App) Photo(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter plant id")
	if err != nil {
		return err
	}
	path, err := a.argOrPrompt(args, 1, "Enter image file path")
	if err != nil {
		return err
	}

	up, err := a.plantService.UploadPhoto(ctx, id, path)
	if err != nil {
		return a.report(err)
	}
	a.printf("Photo uploaded (%s)\n", up.Key)
	return nil
}

// Download saves the plant photo to a new file: download <id> <file>.
func (a *App) Download(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, 0, "Enter plant id")
	if err != nil {
		return err
	}
	path, err := a.argOrPrompt(args, 1, "Enter destination file path")
	if err != nil {
		return err
	}

	n, err := services.SavePhoto(ctx, a.plantService, id, path)
	if err != nil {
		return a.report(err)
	}
	a.printf("Saved %d bytes to %s\n", n, path)
	return nil
}
