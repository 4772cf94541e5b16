package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shipops-server/internal/infra/async"
	"shipops-server/internal/infra/utils"
	"shipops-server/internal/operations/domain"
	"shipops-server/internal/operations/fieldschema"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	_metricKeyCountdownRuns = "countdown_runs"

	// TopicCountdownSnapshots carries the recomputed remaining-days views.
	TopicCountdownSnapshots async.BrokerTopicName = "countdown_snapshots"

	EventCountdownRecomputed = "countdown_recomputed"
)

// CountdownSnapshot is the remaining-days view for one step, published after
// every recomputation sweep.
type CountdownSnapshot struct {
	StepID     domain.ID
	ShipmentID domain.ID
	Entries    []CountdownEntry
}

type CountdownEntry struct {
	Path          string
	RemainingDays int
	FrozenAt      *time.Time
}

func NewCountdownWorker(
	ticker *time.Ticker,
	schedule string,
	stepRepository StepRepository,
	shipmentRepository ShipmentRepository,
	broker async.InternalBroker,
) *CountdownWorker {
	return &CountdownWorker{
		ticker:             ticker,
		schedule:           schedule,
		stepRepository:     stepRepository,
		shipmentRepository: shipmentRepository,
		broker:             broker,
		metricCounters:     make(map[string]metric.Float64Counter),
		cronParser:         cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

var _ async.Worker = (*CountdownWorker)(nil)

// CountdownWorker periodically re-runs the freeze recomputation across every
// active step carrying countdown fields, so stop conditions that became true
// through sibling edits or document arrivals take effect without waiting for
// the next edit on the step itself.
type CountdownWorker struct {
	ticker             *time.Ticker
	schedule           string
	stepRepository     StepRepository
	shipmentRepository ShipmentRepository
	broker             async.InternalBroker
	metricCounters     map[string]metric.Float64Counter
	cronParser         cron.Parser
	lastRun            time.Time
}

func (w *CountdownWorker) Run(ctx context.Context, done func()) {
	slog.Debug("countdown worker started")
	defer done()
	var wg sync.WaitGroup
	w.setupOtelCounters()

	for {
		select {
		case <-ctx.Done():
			slog.Info("countdown worker cancelled")
			wg.Wait()
			return
		case <-w.ticker.C:
			now := time.Now()
			due, err := w.scheduleDue(now)
			if err != nil {
				slog.Error("evaluating countdown schedule",
					slog.String("schedule", w.schedule),
					slog.String("error", err.Error()))
				continue
			}
			if !due {
				continue
			}

			wg.Add(1)
			go w.recomputeAll(context.Background(), now, wg.Done)
		}
	}
}

func (w *CountdownWorker) Shutdown() {
	w.ticker.Stop()
}

func (w *CountdownWorker) setupOtelCounters() {
	meter := otel.Meter("shipops_server")
	countdownRunCounter, _ := meter.Float64Counter(
		fmt.Sprintf("%s.%s", "shipops_server", "countdown_runs"),
		metric.WithDescription("shipops_server countdown recomputation sweeps"),
	)

	w.metricCounters[_metricKeyCountdownRuns] = countdownRunCounter
}

// scheduleDue gates ticks through the configured cron expression: the sweep
// runs when a cron activation falls between the previous run and now.
func (w *CountdownWorker) scheduleDue(now time.Time) (bool, error) {
	if w.schedule == "" {
		w.lastRun = now
		return true, nil
	}

	spec, err := w.cronParser.Parse(w.schedule)
	if err != nil {
		return false, fmt.Errorf("parsing cron schedule: %w", err)
	}

	last := w.lastRun
	if last.IsZero() {
		last = now.Add(-time.Minute)
	}

	next := spec.Next(last)
	if next.After(now) {
		return false, nil
	}

	w.lastRun = now
	return true, nil
}

func (w *CountdownWorker) recomputeAll(ctx context.Context, now time.Time, done func()) {
	defer done()
	slog.Debug("recomputing countdowns", slog.Time("time", now))
	w.metricCounters[_metricKeyCountdownRuns].Add(ctx, 1)

	steps, err := w.stepRepository.FindActiveWithCountdowns(ctx)
	if err != nil {
		slog.Error("finding steps with countdowns", slog.String("error", err.Error()))
		return
	}

	byShipment := make(map[domain.ID][]domain.Step)
	for _, step := range steps {
		byShipment[step.ShipmentID] = append(byShipment[step.ShipmentID], step)
	}

	for shipmentID, shipmentSteps := range byShipment {
		w.recomputeShipment(ctx, shipmentID, shipmentSteps, now)
	}
}

func (w *CountdownWorker) recomputeShipment(ctx context.Context, shipmentID domain.ID, steps []domain.Step, now time.Time) {
	shipment, err := w.shipmentRepository.Get(ctx, shipmentID)
	if err != nil {
		if !errors.Is(err, ErrShipmentNotFound) {
			slog.Error("loading shipment for countdown sweep",
				slog.String("shipment_id", string(shipmentID)),
				slog.String("error", err.Error()))
		}
		return
	}

	trees := siblingTrees(steps)
	lookup := func(stepID string) (map[string]any, bool) {
		tree, ok := trees[stepID]
		return tree, ok
	}

	for _, step := range steps {
		schema := step.EffectiveSchema()
		freeze, dirty := fieldschema.RecomputeFreeze(schema, step.Values.Values, step.Values.Freeze, lookup, now)
		if dirty {
			step.Values.Freeze = freeze
			step.Version++
			step.UpdatedAt = utils.Time{Time: now}
			if err := w.stepRepository.UpdateStep(ctx, step); err != nil {
				slog.Error("persisting recomputed freeze map",
					slog.String("step_id", string(step.ID)),
					slog.String("error", err.Error()))
				continue
			}
		}

		snapshot := buildSnapshot(step, schema, shipment.GlobalValues, now)
		if len(snapshot.Entries) == 0 {
			continue
		}

		if err := w.broker.Publish(ctx, TopicCountdownSnapshots, async.BrokerMessage{
			Event: EventCountdownRecomputed,
			Value: snapshot,
		}); err != nil {
			slog.Warn("publishing countdown snapshot", slog.String("error", err.Error()))
		}
	}
}

func buildSnapshot(step domain.Step, schema fieldschema.Schema, globals map[string]string, now time.Time) CountdownSnapshot {
	snapshot := CountdownSnapshot{StepID: step.ID, ShipmentID: step.ShipmentID}

	for _, countdown := range fieldschema.CountdownFields(schema, step.Values.Values) {
		globalDate, ok := fieldschema.ParseDateValue(globals[countdown.Field.LinkToGlobal])
		if !ok {
			continue
		}

		var frozenAt *time.Time
		if at, frozen := step.Values.Freeze[countdown.Path.Encode()]; frozen {
			frozenAt = &at
		}

		snapshot.Entries = append(snapshot.Entries, CountdownEntry{
			Path:          countdown.Path.Encode(),
			RemainingDays: fieldschema.Remaining(countdown.Field.CountdownDays, globalDate, frozenAt, now),
			FrozenAt:      frozenAt,
		})
	}

	return snapshot
}
