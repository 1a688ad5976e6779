package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/bubbles/list"
	"gonum.org/v1/plot"

	"github.com/jdginn/go-ray-optics/interact"
	"github.com/jdginn/go-ray-optics/optics"
	"github.com/jdginn/go-ray-optics/optics/config"
	"github.com/jdginn/go-ray-optics/optics/experiment"
)

var CLI struct {
	Trace    TraceCmd    `cmd:"" help:"Trace a bench and write its diagram, plot and tables"`
	Validate ValidateCmd `cmd:"" help:"Check a bench file without tracing it"`
	Browse   BrowseCmd   `cmd:"" help:"Trace a bench and browse its rays interactively"`
}

type TraceCmd struct {
	Config     string `arg:"" name:"config" help:"bench file to trace" type:"existingfile"`
	OutputDir  string `name:"output-dir" help:"directory to create the run directory in" default:"experiments"`
	NoTables   bool   `name:"no-tables" help:"don't print a state table per ray"`
	NoDiagram  bool   `name:"no-diagram" help:"don't render the ray diagram"`
	SkipFailed bool   `name:"skip-failed" help:"leave rays that stopped early out of the diagram"`
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"bench file to check" type:"existingfile"`
}

type BrowseCmd struct {
	Config string `arg:"" name:"config" help:"bench file to trace" type:"existingfile"`
}

func loadBench(path string) (*config.BenchConfig, error) {
	bench, err := config.LoadFromFile(path, config.LoadOptions{ResolvePaths: true, MergeFiles: true})
	if err != nil {
		return nil, err
	}
	if errs := bench.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid bench %s\n%s", path, config.FormatValidationErrors(errs))
	}
	return bench, nil
}

// traced holds the bundle of whichever family the bench uses
type traced struct {
	bench  *config.BenchConfig
	rays   []optics.Result[optics.Trace]
	angles []optics.Result[optics.AngleTrace]
}

func traceBench(ctx context.Context, bench *config.BenchConfig) (*traced, error) {
	out := &traced{bench: bench}
	switch bench.Family {
	case config.FamilyAngle:
		elements, err := bench.AngleElements()
		if err != nil {
			return nil, err
		}
		out.angles, err = optics.TraceAngleBundle(ctx, bench.BundleSpec(), bench.AngleStart(), bench.AngleParams(), elements, bench.Bundle.Workers)
		if err != nil {
			return nil, fmt.Errorf("tracing bundle: %w", err)
		}
	default:
		elements, err := bench.Elements()
		if err != nil {
			return nil, err
		}
		params, err := bench.Params()
		if err != nil {
			return nil, err
		}
		out.rays, err = optics.TraceBundle(ctx, bench.BundleSpec(), bench.Start(), params, elements, bench.Bundle.Workers)
		if err != nil {
			return nil, fmt.Errorf("tracing bundle: %w", err)
		}
	}
	return out, nil
}

func (t *traced) failures() (failed int) {
	for _, r := range t.rays {
		if !r.Ok() {
			failed++
		}
	}
	for _, r := range t.angles {
		if !r.Ok() {
			failed++
		}
	}
	return failed
}

func (t *traced) diagram(skipFailed bool) (optics.Diagram, error) {
	var d optics.Diagram
	if t.bench.Family == config.FamilyAngle {
		elements, err := t.bench.AngleElements()
		if err != nil {
			return d, err
		}
		d.Planes, d.Prisms = optics.AngleElementPlanes(elements)
		for _, r := range t.angles {
			if r.Ok() || !skipFailed {
				d.AngleRays = append(d.AngleRays, r.Trace)
			}
		}
		return d, nil
	}

	elements, err := t.bench.Elements()
	if err != nil {
		return d, err
	}
	d.Planes, d.Surfaces = optics.ElementPlanes(t.bench.Ray.X, elements)
	for _, r := range t.rays {
		if r.Ok() || !skipFailed {
			d.Rays = append(d.Rays, r.Trace)
		}
	}
	return d, nil
}

func (t *traced) plot(title string, d optics.Diagram) (*plot.Plot, error) {
	if t.bench.Family == config.FamilyAngle {
		return optics.PlotAngleBundle(title, d.AngleRays)
	}
	return optics.PlotBundle(title, d.Rays)
}

func (c TraceCmd) Run() error {
	bench, err := loadBench(c.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := traceBench(ctx, bench)
	if err != nil {
		return err
	}

	dir, err := experiment.CreateExperimentDirectory(c.OutputDir)
	if err != nil {
		return err
	}
	if err := dir.CopyConfigFile(c.Config); err != nil {
		return err
	}
	// The resolved bench, with merged profile and absolute paths, reproduces the run on its own
	if err := config.SaveToFile(bench, dir.GetFilePath("bench.resolved.yaml")); err != nil {
		return err
	}
	fmt.Printf("Run %s in %s\n", dir.ID, dir.Path)

	for _, r := range result.rays {
		printRay(r.Offset, r.Err, optics.Table(r.Trace), c.NoTables)
	}
	for _, r := range result.angles {
		printRay(r.Offset, r.Err, optics.AngleTable(r.Trace), c.NoTables)
	}
	if failed := result.failures(); failed > 0 {
		fmt.Printf("Warning: %d rays stopped before the last element\n", failed)
	}

	width, height, thickness := bench.OutputSize()
	d, err := result.diagram(c.SkipFailed)
	if err != nil {
		return err
	}

	if !c.NoDiagram {
		path := bench.Output.Diagram
		if path == "" {
			path = dir.GetFilePath("diagram.png")
		}
		view := optics.View{Diagram: d, XSize: width, YSize: height, Thickness: thickness}
		if err := optics.SaveImage(path, view.Draw()); err != nil {
			return fmt.Errorf("saving diagram: %w", err)
		}
		fmt.Printf("Diagram written to %s\n", path)
	}

	path := bench.Output.Plot
	if path == "" {
		path = dir.GetFilePath("plot.svg")
	}
	p, err := result.plot(c.Config, d)
	if err != nil {
		return fmt.Errorf("plotting bundle: %w", err)
	}
	if err := optics.SavePlot(p, width/2, height/2, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	fmt.Printf("Plot written to %s\n", path)

	return nil
}

func printRay(offset float64, err error, table string, quiet bool) {
	if err != nil {
		fmt.Printf("Ray %g stopped: %v\n", offset, err)
	}
	if !quiet {
		fmt.Printf("Ray %g\n%s\n", offset, table)
	}
}

func (c ValidateCmd) Run() error {
	bench, err := config.LoadFromFile(c.Config, config.LoadOptions{ResolvePaths: true, MergeFiles: true})
	if err != nil {
		return err
	}
	if errs := bench.Validate(); len(errs) > 0 {
		return fmt.Errorf("%s", config.FormatValidationErrors(errs))
	}
	fmt.Printf("%s: %s bench with %d elements is valid\n", c.Config, bench.Family, len(bench.ElementList))
	return nil
}

func (c BrowseCmd) Run() error {
	bench, err := loadBench(c.Config)
	if err != nil {
		return err
	}
	result, err := traceBench(context.Background(), bench)
	if err != nil {
		return err
	}

	var items []list.Item
	if bench.Family == config.FamilyAngle {
		items = interact.AngleItems(result.angles)
	} else {
		items = interact.TraceItems(result.rays)
	}
	return interact.Browse(c.Config, items)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
