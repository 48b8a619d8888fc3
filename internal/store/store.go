package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LoadError reports the data file that failed a load cycle.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store loads the read-only data files from a Source. It keeps no state
// between calls; every load returns fresh values.
type Store struct {
	src Source
	log zerolog.Logger
}

func New(src Source, log zerolog.Logger) *Store {
	return &Store{src: src, log: log}
}

func (s *Store) Source() Source { return s.src }

// LoadAll fetches tasks, study and sleep concurrently and waits for all three.
// Any failure fails the whole cycle, but the snapshot still carries every file
// that did load; missing parts are empty records.
func (s *Store) LoadAll(ctx context.Context) (Snapshot, error) {
	log := s.log.With().Str("load_id", uuid.NewString()).Logger()
	start := time.Now()

	var (
		g     errgroup.Group
		tasks TaskBoard
		study DateValueRecord
		sleep DateValueRecord
	)

	g.Go(func() error {
		b, err := s.fetchTasks(ctx, log)
		tasks = b
		return err
	})
	g.Go(func() error {
		r, err := s.fetchRecord(ctx, log, MetricStudy.File())
		study = r
		return err
	})
	g.Go(func() error {
		r, err := s.fetchRecord(ctx, log, MetricSleep.File())
		sleep = r
		return err
	})

	err := g.Wait()
	snap := Snapshot{Tasks: tasks, Study: study, Sleep: sleep}.withDefaults()
	if err != nil {
		log.Error().Err(err).Str("source", s.src.String()).Msg("load data failed")
		return snap, err
	}

	log.Info().
		Str("source", s.src.String()).
		Int("task_days", len(snap.Tasks)).
		Int("study_days", len(snap.Study)).
		Int("sleep_days", len(snap.Sleep)).
		Dur("took", time.Since(start)).
		Msg("data loaded")
	return snap, nil
}

// LoadMetric fetches the record of a single metric.
func (s *Store) LoadMetric(ctx context.Context, m Metric) (DateValueRecord, error) {
	log := s.log.With().Str("load_id", uuid.NewString()).Str("metric", string(m)).Logger()

	r, err := s.fetchRecord(ctx, log, m.File())
	if err != nil {
		log.Error().Err(err).Str("source", s.src.String()).Msg("load metric failed")
		return DateValueRecord{}, err
	}
	log.Info().Int("days", len(r)).Msg("metric loaded")
	return r, nil
}

func (s *Store) fetchTasks(ctx context.Context, log zerolog.Logger) (TaskBoard, error) {
	data, err := s.src.Fetch(ctx, TasksFile)
	if err != nil {
		return nil, &LoadError{File: TasksFile, Err: err}
	}
	b, err := DecodeTaskBoard(data)
	if err != nil {
		return nil, &LoadError{File: TasksFile, Err: err}
	}
	log.Debug().Str("file", TasksFile).Int("bytes", len(data)).Msg("fetched")
	return b, nil
}

func (s *Store) fetchRecord(ctx context.Context, log zerolog.Logger, file string) (DateValueRecord, error) {
	data, err := s.src.Fetch(ctx, file)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}
	r, err := DecodeRecord(data)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}
	log.Debug().Str("file", file).Int("bytes", len(data)).Msg("fetched")
	return r, nil
}
