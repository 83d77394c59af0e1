package automatic

// Data collection for self-play. Series of scripted matches feed the
// balance report and the sqlite result store.

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"expvar"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wordfray/wordfray/gamedata"
)

var (
	// MatchCounter counts finished self-play matches, process wide.
	MatchCounter *expvar.Int
	// IsPlaying counts live self-play workers.
	IsPlaying *expvar.Int
)

func init() {
	MatchCounter = expvar.NewInt("matchCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type job struct {
	seed    int64
	enemyID string
}

// SeriesOptions configures RunSeries. The embedded runner options apply
// to every worker.
type SeriesOptions struct {
	Options

	// Matches is how many matches to play. Ignored when Seeds is set.
	Matches int
	// Workers is the number of concurrent runners; zero means one.
	Workers int
	// Seed fixes the series: match i plays with Seed+i. Zero seeds from
	// entropy.
	Seed int64
	// Seeds gives one explicit seed per match, overriding Seed.
	Seeds []int64
	// LogWriter receives the per-turn CSV log when non-nil.
	LogWriter io.Writer
	// Store saves every result when non-nil.
	Store *Store
}

// RunSeries plays a series of scripted matches across a worker pool and
// aggregates the outcomes. Only one series runs at a time. Cancelling
// the context stops queueing; matches already queued still finish.
func RunSeries(ctx context.Context, opts SeriesOptions) (*Report, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("matches are already being played, please wait till complete")
	}
	if len(opts.Seeds) > 0 {
		opts.Matches = len(opts.Seeds)
	}
	if opts.Matches <= 0 {
		return nil, errors.New("no matches to play")
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	seed := opts.Seed
	if seed == 0 && len(opts.Seeds) == 0 {
		seed = entropySeed()
	}

	enemies, err := gamedata.Load()
	if err != nil {
		return nil, err
	}
	var roster []string
	if opts.EnemyID == "" {
		for _, e := range enemies.All() {
			roster = append(roster, e.ID)
		}
	} else {
		if _, err := enemies.ByID(opts.EnemyID); err != nil {
			return nil, err
		}
		roster = []string{opts.EnemyID}
	}

	log.Debug().Int("matches", opts.Matches).Int("workers", opts.Workers).
		Int64("seed", seed).Msg("starting-series")
	MatchCounter.Set(0)

	var logchan chan string
	writer := errgroup.Group{}
	if opts.LogWriter != nil {
		logchan = make(chan string, 100)
		writer.Go(func() error {
			var werr error
			if _, err := io.WriteString(opts.LogWriter, logHeader); err != nil {
				werr = err
			}
			for msg := range logchan {
				if werr != nil {
					continue // keep draining so workers never block
				}
				if _, err := io.WriteString(opts.LogWriter, msg); err != nil {
					werr = err
				}
			}
			return werr
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, 100)
	results := make(chan Result, 100)

	for i := 0; i < opts.Workers; i++ {
		g.Go(func() error {
			r, err := NewRunner(logchan, opts.Options)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for jb := range jobs {
				res, err := r.PlayMatch(jb.enemyID, jb.seed)
				if err != nil {
					return err
				}
				MatchCounter.Add(1)
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(jobs)
		for i := 0; i < opts.Matches; i++ {
			jb := job{enemyID: roster[i%len(roster)]}
			if len(opts.Seeds) > 0 {
				jb.seed = opts.Seeds[i]
			} else {
				jb.seed = seed + int64(i)
			}
			select {
			case jobs <- jb:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		err := g.Wait()
		close(results)
		if logchan != nil {
			close(logchan)
		}
		done <- err
	}()

	var all []Result
	var storeErr error
	for res := range results {
		all = append(all, res)
		if opts.Store != nil && storeErr == nil {
			storeErr = opts.Store.Save(ctx, res)
		}
	}
	if err := <-done; err != nil {
		return nil, err
	}
	if err := writer.Wait(); err != nil {
		return nil, err
	}
	if storeErr != nil {
		return nil, storeErr
	}

	rep := BuildReport(all)
	log.Info().Int("matches", rep.Matches).Int("playerWins", rep.PlayerWins).
		Msg("series-complete")
	return rep, nil
}

func entropySeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("cannot seed series randomness: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
