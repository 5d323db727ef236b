package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chazu/mandrel/pkg/bender"
	"github.com/chazu/mandrel/pkg/path"
	"github.com/chazu/mandrel/pkg/preview"
	"github.com/chazu/mandrel/pkg/report"
	"github.com/chazu/mandrel/pkg/script"
	"github.com/chazu/mandrel/pkg/sheet"
	"github.com/chazu/mandrel/pkg/units"
)

// previewMeshCells keeps interactive preview tessellation fast; PDF and
// sheet math are unaffected by it.
const previewMeshCells = 128

// App is the Wails backend. It exposes methods to the frontend via
// bindings.
type App struct {
	ctx     context.Context
	engine  *script.Engine
	benders *bender.Store
}

// EvalErrorData is a JSON-serializable script error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// GenerateResult is the full result of a bend sheet run returned to
// the frontend. On failure Sheet is nil and Errors explains why.
type GenerateResult struct {
	Sheet  *sheet.Sheet    `json:"sheet,omitempty"`
	Errors []EvalErrorData `json:"errors"`
}

// PreviewResult carries the 3D preview mesh, or the errors that
// prevented building one.
type PreviewResult struct {
	Mesh   *preview.Mesh   `json:"mesh,omitempty"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with a script engine and the default bender
// profile store.
func NewApp() *App {
	storePath, err := bender.DefaultPath()
	if err != nil {
		log.Printf("bender store: %v; using working directory", err)
		storePath = "benders.toml"
	}
	return newAppWithStore(bender.NewStore(storePath))
}

func newAppWithStore(store *bender.Store) *App {
	return &App{
		engine:  script.NewEngine(),
		benders: store,
	}
}

// startup is called by Wails on app startup. The context is saved so
// runtime methods (dialogs) can be called later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// evalPath runs the script engine and normalizes its three-way result
// into elements or frontend errors.
func (a *App) evalPath(source string) ([]path.Element, []EvalErrorData) {
	elements, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("script eval fatal error: %v", err)
		return nil, []EvalErrorData{{Message: err.Error()}}
	}
	if len(evalErrs) > 0 {
		out := make([]EvalErrorData, len(evalErrs))
		for i, e := range evalErrs {
			out[i] = EvalErrorData{Line: e.Line, Message: e.Message}
		}
		return nil, out
	}
	return elements, nil
}

// Generate runs the full pipeline: script evaluation, chain ordering,
// bend calculation, and timeline assembly. This is the primary binding
// called by the frontend editor.
func (a *App) Generate(source, unitName, component string, params sheet.Params) GenerateResult {
	result := GenerateResult{Errors: []EvalErrorData{}}

	cfg, err := units.ByName(unitName)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	elements, errs := a.evalPath(source)
	if errs != nil {
		result.Errors = errs
		return result
	}

	s, err := sheet.NewGenerator(cfg).GenerateFromElements(elements, component, params)
	if err != nil {
		log.Printf("generate: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	result.Sheet = s
	return result
}

// Preview builds the 3D tube mesh for the current script. tubeOD is
// the operator-entered OD string, in the script's units.
func (a *App) Preview(source, tubeOD string) PreviewResult {
	result := PreviewResult{Errors: []EvalErrorData{}}

	od, err := parseTubeOD(tubeOD)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	elements, errs := a.evalPath(source)
	if errs != nil {
		result.Errors = errs
		return result
	}

	ordered, err := path.Order(elements)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	solid, err := preview.TubeSolid(ordered, od/2)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	result.Mesh = preview.ToMeshCells(solid, previewMeshCells)
	return result
}

// ExportPDF regenerates the sheet and writes it as a PDF. An empty
// filename opens a save dialog (requires the Wails runtime context).
func (a *App) ExportPDF(source, unitName, component string, params sheet.Params, filename string) error {
	res := a.Generate(source, unitName, component, params)
	if res.Sheet == nil {
		if len(res.Errors) > 0 {
			return fmt.Errorf("cannot export: %s", res.Errors[0].Message)
		}
		return fmt.Errorf("cannot export: no sheet")
	}

	if filename == "" {
		if a.ctx == nil {
			return fmt.Errorf("no filename given")
		}
		name, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
			Title:           "Export bend sheet",
			DefaultFilename: "bend-sheet.pdf",
			Filters: []runtime.FileFilter{
				{DisplayName: "PDF documents", Pattern: "*.pdf"},
			},
		})
		if err != nil {
			return fmt.Errorf("save dialog: %w", err)
		}
		if name == "" {
			return nil // user cancelled
		}
		filename = name
	}

	return writePDFFile(filename, res.Sheet)
}

// writePDFFile renders the sheet to a file on disk.
func writePDFFile(filename string, s *sheet.Sheet) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	if err := report.Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// UnitOptions lists the supported measurement units for the settings
// dialog.
func (a *App) UnitOptions() []units.Config {
	return units.All()
}

// ----------------------------------------------------------------------------
// Bender profile bindings

// Benders returns all stored bender profiles.
func (a *App) Benders() ([]bender.Bender, error) {
	return a.benders.Load()
}

// AddBender stores a new bender profile.
func (a *App) AddBender(b bender.Bender) (bender.Bender, error) {
	return a.benders.Add(b)
}

// UpdateBender replaces a stored bender profile.
func (a *App) UpdateBender(b bender.Bender) (bender.Bender, error) {
	return a.benders.Update(b)
}

// DeleteBender removes a bender and its dies.
func (a *App) DeleteBender(benderID string) error {
	return a.benders.Delete(benderID)
}

// AddDie attaches a die to a bender.
func (a *App) AddDie(benderID string, d bender.Die) (bender.Die, error) {
	return a.benders.AddDie(benderID, d)
}

// DeleteDie removes a die from its bender.
func (a *App) DeleteDie(benderID, dieID string) error {
	return a.benders.DeleteDie(benderID, dieID)
}

// DieParams prefills run parameters from a stored bender/die pair.
func (a *App) DieParams(benderID, dieID string) (sheet.Params, error) {
	b, d, err := a.benders.FindDie(benderID, dieID)
	if err != nil {
		return sheet.Params{}, err
	}
	return sheet.Params{
		TubeOD:     d.TubeOD,
		DieOffset:  d.DieOffset,
		MinGrip:    d.MinGrip,
		MinTail:    d.MinTail,
		BenderName: b.Name,
		DieName:    d.Name,
	}, nil
}

// parseTubeOD converts the operator-entered OD string for preview use.
func parseTubeOD(s string) (float64, error) {
	od, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("tube OD %q is not a number", s)
	}
	return od, nil
}
