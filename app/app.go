package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/kpaths/config"
	"github.com/AnkushinDaniil/kpaths/entity"
	"github.com/AnkushinDaniil/kpaths/entity/mode"
)

const (
	ZoomFile = "kpath_zoomed.json"
	LoopFile = "kpath.json"
)

type App struct {
	Output string
	Params config.Config
}

func New(params config.Config) *App {
	return &App{
		Output: params.OutputDir,
		Params: params,
	}
}

type dataset struct {
	file     string
	value    any
	total    int
	segments []int
}

func (a *App) Run(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("App finished")
	}()
	log.WithFields(log.Fields{
		"output":     a.Output,
		"mode":       a.Params.Mode,
		"a":          a.Params.A,
		"nk_density": a.Params.NKDensity,
		"seg_len":    a.Params.SegLen,
		"n_points":   a.Params.NPoints,
	}).Debug("App started")

	if err := a.Params.Validate(); err != nil {
		return err
	}
	m, err := mode.UnmarshalText(a.Params.Mode)
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrInvalidInput, err)
	}

	datasets, err := a.build(m)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.Output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, ds := range datasets {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(a.Output, ds.file)
		writeTime := time.Now()
		if err := writeJSON(path, ds.value); err != nil {
			return fmt.Errorf("failed to write %s: %w", ds.file, err)
		}
		log.WithFields(log.Fields{
			"path":     path,
			"points":   ds.total,
			"segments": ds.segments,
			"time":     time.Since(writeTime),
		}).Info("Path saved")
	}
	return nil
}

// build computes every requested dataset before anything is written.
func (a *App) build(m mode.Mode) ([]dataset, error) {
	lattice, err := entity.NewLattice(a.Params.A)
	if err != nil {
		return nil, fmt.Errorf("failed to derive lattice: %w", err)
	}
	log.WithFields(log.Fields{
		"b1": lattice.B1,
		"b2": lattice.B2,
		"K":  lattice.K,
		"M0": lattice.M0,
	}).Debug("Lattice derived")

	datasets := make([]dataset, 0, 2)
	if m.WantZoom() {
		zoom, err := entity.NewZoomPath(lattice, a.Params.SegLen, a.Params.NKDensity)
		if err != nil {
			return nil, fmt.Errorf("failed to build zoomed path: %w", err)
		}
		datasets = append(datasets, dataset{
			file:     ZoomFile,
			value:    zoom,
			total:    zoom.Len(),
			segments: []int{zoom.HorizontalCount, zoom.RadialCount},
		})
	}
	if m.WantLoop() {
		loop, err := entity.NewClosedLoop(lattice, a.Params.NPoints)
		if err != nil {
			return nil, fmt.Errorf("failed to build closed loop: %w", err)
		}
		if err := loop.CheckPartition(); err != nil {
			return nil, fmt.Errorf("closed loop: %w", err)
		}
		counts := make([]int, len(loop.Segments))
		for i, s := range loop.Segments {
			counts[i] = s.End - s.Start
		}
		datasets = append(datasets, dataset{
			file:     LoopFile,
			value:    loop,
			total:    loop.Len(),
			segments: counts,
		})
	}
	return datasets, nil
}
