package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"jobtracker/internal/bls"
	"jobtracker/internal/config"
	"jobtracker/internal/domain/occupation"
	"jobtracker/internal/index"
	"jobtracker/internal/infrastructure/cache"
	"jobtracker/internal/onet"
	"jobtracker/internal/repository"
	"jobtracker/internal/transform"

	"github.com/google/uuid"
)

var (
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrUnknownSource     = errors.New("unknown source")
)

const refreshLockKey = "pipeline:lock:refresh"
const refreshLockTTL = 2 * time.Hour

// BLSSource is the slice of the BLS client the pipeline drives.
type BLSSource interface {
	LatestAvailableYear(ctx context.Context) (int, error)
	DownloadBulk(ctx context.Context, areaType string, year int) ([]bls.Record, error)
	FetchSeriesBatched(ctx context.Context, seriesIDs []string, startYear, endYear int) ([]bls.Series, error)
}

// ONetSource is the slice of the O*NET client the pipeline drives.
type ONetSource interface {
	AllOccupations(ctx context.Context) ([]onet.OccupationRef, error)
	OccupationDetails(ctx context.Context, code string) (*onet.OccupationDetails, error)
	DatabaseRelease(ctx context.Context) (string, error)
}

// IndexStore is the slice of the index loader the pipeline writes to.
type IndexStore interface {
	EnsureCollections(ctx context.Context, dropExisting bool) error
	Upsert(ctx context.Context, collection string, docs []any) (index.ImportResult, error)
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)
}

// Engine runs the extract-transform-load sequence: BLS wages and
// employment, O*NET skills, merged by SOC code, loaded into the three
// search collections. Steps run sequentially; the source rate limits
// make parallel fetching pointless.
type Engine struct {
	data    config.DataConfig
	bls     BLSSource
	onet    ONetSource
	index   IndexStore
	runs    repository.SyncRunRepository
	markers repository.SourceMarkerRepository
	cache   *cache.Redis
	hub     Broadcaster
	logger  *log.Logger

	running atomic.Bool
}

func NewEngine(
	data config.DataConfig,
	blsClient BLSSource,
	onetClient ONetSource,
	store IndexStore,
	runs repository.SyncRunRepository,
	markers repository.SourceMarkerRepository,
	redis *cache.Redis,
	hub Broadcaster,
	logger *log.Logger,
) *Engine {
	return &Engine{
		data:    data,
		bls:     blsClient,
		onet:    onetClient,
		index:   store,
		runs:    runs,
		markers: markers,
		cache:   redis,
		hub:     hub,
		logger:  logger,
	}
}

// Running reports whether a refresh is currently in flight in this
// process.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// RunFullRefresh rebuilds all three collections from both sources and
// stamps both source markers with the reference periods it loaded.
func (e *Engine) RunFullRefresh(ctx context.Context, trigger string) (repository.SyncRun, error) {
	unlock, err := e.acquireLock(ctx)
	if err != nil {
		return repository.SyncRun{}, err
	}
	defer unlock()

	run := e.startRun(ctx, trigger, "all")
	e.logf("pipeline=full step=start run=%s trigger=%s", run.ID, trigger)

	err = e.fullRefresh(ctx, &run)
	return e.finishRun(ctx, run, err)
}

// RunSourceRefresh reloads one source while preserving the other
// source's fields on existing occupation documents.
func (e *Engine) RunSourceRefresh(ctx context.Context, source, trigger string) (repository.SyncRun, error) {
	if source != repository.SourceBLS && source != repository.SourceONet {
		return repository.SyncRun{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	unlock, err := e.acquireLock(ctx)
	if err != nil {
		return repository.SyncRun{}, err
	}
	defer unlock()

	run := e.startRun(ctx, trigger, source)
	e.logf("pipeline=partial step=start run=%s source=%s trigger=%s", run.ID, source, trigger)

	switch source {
	case repository.SourceBLS:
		err = e.refreshBLS(ctx, &run)
	case repository.SourceONet:
		err = e.refreshONet(ctx, &run)
	}
	return e.finishRun(ctx, run, err)
}

// SourceStatus is the outcome of one change-detection probe.
type SourceStatus struct {
	Source         string `json:"source"`
	Status         string `json:"status"`
	CurrentPeriod  string `json:"current_period,omitempty"`
	PreviousPeriod string `json:"previous_period,omitempty"`
	Error          string `json:"error,omitempty"`
}

// CheckForUpdates probes both sources for a new reference period and
// records the result on the markers. It never writes to the index: a
// failed probe must leave the loaded data exactly as it was.
func (e *Engine) CheckForUpdates(ctx context.Context) []SourceStatus {
	now := time.Now().UTC()
	out := make([]SourceStatus, 0, 2)

	blsStatus := e.checkSource(ctx, repository.SourceBLS, now, func(ctx context.Context) (string, error) {
		year, err := e.bls.LatestAvailableYear(ctx)
		if err != nil {
			return "", err
		}
		return blsReferencePeriod(year), nil
	})
	out = append(out, blsStatus)

	onetStatus := e.checkSource(ctx, repository.SourceONet, now, func(ctx context.Context) (string, error) {
		return e.onet.DatabaseRelease(ctx)
	})
	out = append(out, onetStatus)

	for _, s := range out {
		e.emit(Event{Type: EventCheckResult, Source: s.Source, Status: s.Status, Message: s.CurrentPeriod})
	}
	return out
}

// RunIfChanged checks both sources and refreshes only what moved. When
// nothing changed the run is recorded as skipped with zero writes.
func (e *Engine) RunIfChanged(ctx context.Context, trigger string) (repository.SyncRun, error) {
	statuses := e.CheckForUpdates(ctx)

	changed := map[string]bool{}
	for _, s := range statuses {
		if s.Status == repository.CheckStatusChanged {
			changed[s.Source] = true
		}
	}

	switch {
	case changed[repository.SourceBLS] && changed[repository.SourceONet]:
		return e.RunFullRefresh(ctx, trigger)
	case changed[repository.SourceBLS]:
		return e.RunSourceRefresh(ctx, repository.SourceBLS, trigger)
	case changed[repository.SourceONet]:
		return e.RunSourceRefresh(ctx, repository.SourceONet, trigger)
	}

	run := e.startRun(ctx, trigger, "all")
	run.Status = repository.RunStatusSkipped
	now := time.Now().UTC()
	run.FinishedAt = &now
	if e.runs != nil {
		if err := e.runs.Finish(ctx, run); err != nil {
			e.logf("pipeline=check step=record status=error err=%v", err)
		}
	}
	e.logf("pipeline=check step=done status=skipped reason=unchanged")
	e.emit(Event{Type: EventRunFinished, RunID: run.ID.String(), Status: run.Status})
	return run, nil
}

func (e *Engine) fullRefresh(ctx context.Context, run *repository.SyncRun) error {
	if err := e.index.EnsureCollections(ctx, false); err != nil {
		return fmt.Errorf("ensure collections: %w", err)
	}

	year, err := e.resolveYear(ctx)
	if err != nil {
		return fmt.Errorf("resolve data year: %w", err)
	}

	national, err := e.fetchNational(ctx, run, year)
	if err != nil {
		return err
	}

	details, err := e.fetchONetDetails(ctx, run)
	if err != nil {
		return err
	}

	release, err := e.onet.DatabaseRelease(ctx)
	if err != nil {
		e.logf("pipeline=full step=onet_release status=error err=%v", err)
	}

	// one timestamp for the whole pull: occupation documents must never
	// be out-stamped by the wage and skill documents derived from them
	now := time.Now().UTC()
	if err := e.loadOccupations(ctx, run, national, details, now); err != nil {
		return err
	}
	if err := e.loadWages(ctx, run, national, year, now); err != nil {
		return err
	}
	if err := e.loadSkills(ctx, run, details, now); err != nil {
		return err
	}

	e.recordMarker(ctx, repository.SourceBLS, blsReferencePeriod(year), now)
	if release != "" {
		e.recordMarker(ctx, repository.SourceONet, release, now)
	}
	return nil
}

// refreshBLS reloads employment and wages. Existing occupation
// documents keep their O*NET-owned fields untouched.
func (e *Engine) refreshBLS(ctx context.Context, run *repository.SyncRun) error {
	if err := e.index.EnsureCollections(ctx, false); err != nil {
		return fmt.Errorf("ensure collections: %w", err)
	}

	year, err := e.resolveYear(ctx)
	if err != nil {
		return fmt.Errorf("resolve data year: %w", err)
	}

	national, err := e.fetchNational(ctx, run, year)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(national))
	for _, rec := range national {
		doc, err := e.existingOccupation(ctx, transform.NormalizeSOC(rec.OccCode))
		if err != nil {
			return err
		}
		if doc == nil {
			merged := transform.Merge(&rec, nil, now)
			doc = &merged
		} else {
			transform.ApplyBLS(doc, rec)
			doc.LastUpdated = now.Unix()
		}
		docs = append(docs, doc)
	}
	if err := e.upsert(ctx, run, index.CollectionOccupations, docs); err != nil {
		return err
	}
	run.OccupationsLoaded = len(docs)

	if err := e.loadWages(ctx, run, national, year, now); err != nil {
		return err
	}

	e.recordMarker(ctx, repository.SourceBLS, blsReferencePeriod(year), now)
	return nil
}

// refreshONet reloads skills and occupation descriptions. Existing
// occupation documents keep their BLS-owned fields untouched.
func (e *Engine) refreshONet(ctx context.Context, run *repository.SyncRun) error {
	if err := e.index.EnsureCollections(ctx, false); err != nil {
		return fmt.Errorf("ensure collections: %w", err)
	}

	details, err := e.fetchONetDetails(ctx, run)
	if err != nil {
		return err
	}

	release, err := e.onet.DatabaseRelease(ctx)
	if err != nil {
		e.logf("pipeline=partial step=onet_release status=error err=%v", err)
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(details))
	for soc, d := range details {
		doc, err := e.existingOccupation(ctx, soc)
		if err != nil {
			return err
		}
		if doc == nil {
			merged := transform.Merge(nil, d, now)
			doc = &merged
		} else {
			transform.ApplyONet(doc, d)
			doc.LastUpdated = now.Unix()
		}
		docs = append(docs, doc)
	}
	if err := e.upsert(ctx, run, index.CollectionOccupations, docs); err != nil {
		return err
	}
	run.OccupationsLoaded = len(docs)

	if err := e.loadSkills(ctx, run, details, now); err != nil {
		return err
	}

	if release != "" {
		e.recordMarker(ctx, repository.SourceONet, release, now)
	}
	return nil
}

func (e *Engine) fetchNational(ctx context.Context, run *repository.SyncRun, year int) ([]bls.Record, error) {
	e.emit(Event{Type: EventStepStarted, RunID: run.ID.String(), Source: repository.SourceBLS, Step: "bls_national"})

	rows, err := e.bls.DownloadBulk(ctx, bls.AreaNational, year)
	if err != nil {
		e.logf("pipeline=refresh step=bls_national status=fallback err=%v", err)
		if rows, err = e.nationalFromSeries(ctx, year); err != nil {
			return nil, fmt.Errorf("download national data: %w", err)
		}
	}

	out := rows[:0]
	for _, r := range rows {
		if r.IsDetailed() {
			out = append(out, r)
		}
	}
	e.logf("pipeline=refresh step=bls_national year=%d rows=%d detailed=%d", year, len(rows), len(out))
	e.emit(Event{Type: EventStepFinished, RunID: run.ID.String(), Source: repository.SourceBLS, Step: "bls_national", Count: len(out)})
	return out, nil
}

// nationalFromSeries rebuilds the national employment and wage figures
// from the BLS timeseries API when the bulk file cannot be downloaded.
// The occupation list comes from the O*NET taxonomy; occupations the
// API returns nothing for are dropped.
func (e *Engine) nationalFromSeries(ctx context.Context, year int) ([]bls.Record, error) {
	refs, err := e.onet.AllOccupations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list occupations for series fallback: %w", err)
	}

	socs := make([]string, 0, len(refs))
	titles := make(map[string]string, len(refs))
	for _, ref := range refs {
		soc := transform.NormalizeSOC(ref.Code)
		if _, ok := titles[soc]; ok {
			continue
		}
		titles[soc] = ref.Title
		socs = append(socs, soc)
	}

	ids := make([]string, 0, len(socs)*3)
	for _, soc := range socs {
		ids = append(ids,
			bls.NationalEmploymentSeries(soc),
			bls.NationalWageSeries(soc, "annual_mean"),
			bls.NationalWageSeries(soc, "annual_median"),
		)
	}

	series, err := e.bls.FetchSeriesBatched(ctx, ids, year, year)
	if err != nil {
		return nil, fmt.Errorf("fetch national series: %w", err)
	}
	wantYear := strconv.Itoa(year)
	values := make(map[string]*float64, len(series))
	for _, s := range series {
		for _, d := range s.Data {
			if d.Year != wantYear {
				continue
			}
			values[s.SeriesID] = bls.SeriesValue(d)
			break
		}
	}

	records := make([]bls.Record, 0, len(socs))
	for _, soc := range socs {
		rec := bls.Record{
			AreaCode:     "0000000",
			AreaTitle:    "U.S.",
			OccCode:      soc,
			OccTitle:     titles[soc],
			Group:        "detailed",
			AnnualMean:   values[bls.NationalWageSeries(soc, "annual_mean")],
			AnnualMedian: values[bls.NationalWageSeries(soc, "annual_median")],
		}
		if v := values[bls.NationalEmploymentSeries(soc)]; v != nil {
			emp := int64(*v)
			rec.TotalEmployment = &emp
		}
		if rec.TotalEmployment == nil && rec.AnnualMean == nil && rec.AnnualMedian == nil {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.New("timeseries fallback returned no national data")
	}
	e.logf("pipeline=refresh step=bls_national source=timeseries occupations=%d", len(records))
	return records, nil
}

// fetchONetDetails pulls the full detail set for every O*NET
// occupation, keyed by normalized SOC code. Individual occupations
// that fail to fetch are skipped and counted, not fatal.
func (e *Engine) fetchONetDetails(ctx context.Context, run *repository.SyncRun) (map[string]*onet.OccupationDetails, error) {
	e.emit(Event{Type: EventStepStarted, RunID: run.ID.String(), Source: repository.SourceONet, Step: "onet_details"})

	refs, err := e.onet.AllOccupations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list occupations: %w", err)
	}

	details := make(map[string]*onet.OccupationDetails, len(refs))
	skipped := 0
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := e.onet.OccupationDetails(ctx, ref.Code)
		if err != nil {
			skipped++
			e.logf("pipeline=refresh step=onet_details code=%s status=skipped err=%v", ref.Code, err)
			continue
		}
		details[transform.NormalizeSOC(ref.Code)] = d
	}
	run.FailedDocuments += skipped

	e.logf("pipeline=refresh step=onet_details fetched=%d skipped=%d", len(details), skipped)
	e.emit(Event{Type: EventStepFinished, RunID: run.ID.String(), Source: repository.SourceONet, Step: "onet_details", Count: len(details)})
	return details, nil
}

func (e *Engine) loadOccupations(ctx context.Context, run *repository.SyncRun, national []bls.Record, details map[string]*onet.OccupationDetails, now time.Time) error {
	e.emit(Event{Type: EventStepStarted, RunID: run.ID.String(), Step: "load_occupations"})

	blsBySOC := make(map[string]bls.Record, len(national))
	for _, r := range national {
		blsBySOC[transform.NormalizeSOC(r.OccCode)] = r
	}

	seen := make(map[string]bool, len(blsBySOC)+len(details))
	docs := make([]any, 0, len(blsBySOC)+len(details))
	for soc, rec := range blsBySOC {
		rec := rec
		doc := transform.Merge(&rec, details[soc], now)
		docs = append(docs, doc)
		seen[soc] = true
	}
	for soc, d := range details {
		if seen[soc] {
			continue
		}
		docs = append(docs, transform.Merge(nil, d, now))
	}

	if err := e.upsert(ctx, run, index.CollectionOccupations, docs); err != nil {
		return err
	}
	run.OccupationsLoaded = len(docs)
	e.emit(Event{Type: EventStepFinished, RunID: run.ID.String(), Step: "load_occupations", Count: len(docs)})
	return nil
}

func (e *Engine) loadWages(ctx context.Context, run *repository.SyncRun, national []bls.Record, year int, now time.Time) error {
	e.emit(Event{Type: EventStepStarted, RunID: run.ID.String(), Step: "load_wages"})

	docs := make([]any, 0, len(national))
	for _, rec := range national {
		docs = append(docs, transform.WageDocument(rec, bls.AreaNational, year, now))
	}

	for _, areaType := range []string{bls.AreaState, bls.AreaMetro} {
		rows, err := e.bls.DownloadBulk(ctx, areaType, year)
		if err != nil {
			return fmt.Errorf("download %s data: %w", areaType, err)
		}
		count := 0
		for _, rec := range rows {
			if !rec.IsDetailed() {
				continue
			}
			docs = append(docs, transform.WageDocument(rec, areaType, year, now))
			count++
		}
		e.logf("pipeline=refresh step=load_wages area=%s rows=%d", areaType, count)
	}

	if err := e.upsert(ctx, run, index.CollectionWagesByLocation, docs); err != nil {
		return err
	}
	run.WagesLoaded = len(docs)
	e.emit(Event{Type: EventStepFinished, RunID: run.ID.String(), Step: "load_wages", Count: len(docs)})
	return nil
}

func (e *Engine) loadSkills(ctx context.Context, run *repository.SyncRun, details map[string]*onet.OccupationDetails, now time.Time) error {
	e.emit(Event{Type: EventStepStarted, RunID: run.ID.String(), Step: "load_skills"})

	aggregates := transform.AggregateSkills(details, now)
	docs := make([]any, 0, len(aggregates))
	for _, a := range aggregates {
		docs = append(docs, a)
	}

	if err := e.upsert(ctx, run, index.CollectionSkills, docs); err != nil {
		return err
	}
	run.SkillsLoaded = len(docs)
	e.emit(Event{Type: EventStepFinished, RunID: run.ID.String(), Step: "load_skills", Count: len(docs)})
	return nil
}

func (e *Engine) upsert(ctx context.Context, run *repository.SyncRun, collection string, docs []any) error {
	res, err := e.index.Upsert(ctx, collection, docs)
	if err != nil {
		return fmt.Errorf("load %s: %w", collection, err)
	}
	run.FailedDocuments += res.Failed
	e.logf("pipeline=refresh step=load collection=%s success=%d failed=%d", collection, res.Success, res.Failed)
	return nil
}

// existingOccupation fetches the current document for a SOC code, or
// nil when the index has none.
func (e *Engine) existingOccupation(ctx context.Context, soc string) (*occupation.Occupation, error) {
	raw, err := e.index.GetDocument(ctx, index.CollectionOccupations, soc)
	if err != nil {
		if errors.Is(err, index.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, err
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc occupation.Occupation
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (e *Engine) checkSource(ctx context.Context, source string, now time.Time, probe func(ctx context.Context) (string, error)) SourceStatus {
	status := SourceStatus{Source: source}

	marker, err := e.getMarker(ctx, source)
	if err != nil {
		status.Status = repository.CheckStatusFailed
		status.Error = err.Error()
		return status
	}
	status.PreviousPeriod = marker.ReferencePeriod

	current, err := probe(ctx)
	if err != nil {
		status.Status = repository.CheckStatusFailed
		status.Error = err.Error()
		e.logf("pipeline=check source=%s status=failed err=%v", source, err)
		e.recordCheck(ctx, source, repository.CheckStatusFailed, now)
		return status
	}
	status.CurrentPeriod = current

	if current != marker.ReferencePeriod {
		status.Status = repository.CheckStatusChanged
	} else {
		status.Status = repository.CheckStatusUnchanged
	}
	e.logf("pipeline=check source=%s status=%s current=%q previous=%q", source, status.Status, current, marker.ReferencePeriod)
	e.recordCheck(ctx, source, status.Status, now)
	return status
}

func (e *Engine) resolveYear(ctx context.Context) (int, error) {
	if e.data.Year > 0 {
		return e.data.Year, nil
	}
	return e.bls.LatestAvailableYear(ctx)
}

func (e *Engine) startRun(ctx context.Context, trigger, source string) repository.SyncRun {
	run := repository.SyncRun{
		ID:          uuid.New(),
		TriggeredBy: trigger,
		Source:      source,
		Status:      repository.RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if e.runs != nil {
		if err := e.runs.Create(ctx, run); err != nil {
			e.logf("pipeline=refresh step=record status=error err=%v", err)
		}
	}
	e.emit(Event{Type: EventRunStarted, RunID: run.ID.String(), Source: source})
	return run
}

func (e *Engine) finishRun(ctx context.Context, run repository.SyncRun, runErr error) (repository.SyncRun, error) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	if runErr != nil {
		run.Status = repository.RunStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = repository.RunStatusSucceeded
	}

	if e.runs != nil {
		if err := e.runs.Finish(ctx, run); err != nil {
			e.logf("pipeline=refresh step=record status=error err=%v", err)
		}
	}

	if runErr == nil {
		if err := e.cache.InvalidateSearchCaches(ctx); err != nil {
			e.logf("pipeline=refresh step=invalidate status=error err=%v", err)
		}
	}

	e.logf("pipeline=refresh step=done run=%s status=%s occupations=%d wages=%d skills=%d failed=%d",
		run.ID, run.Status, run.OccupationsLoaded, run.WagesLoaded, run.SkillsLoaded, run.FailedDocuments)
	e.emit(Event{Type: EventRunFinished, RunID: run.ID.String(), Status: run.Status, Message: run.Error})
	return run, runErr
}

func (e *Engine) recordMarker(ctx context.Context, source, period string, now time.Time) {
	if e.markers == nil {
		return
	}
	if err := e.markers.RecordChange(ctx, source, period, now); err != nil {
		e.logf("pipeline=refresh step=marker source=%s status=error err=%v", source, err)
	}
}

func (e *Engine) recordCheck(ctx context.Context, source, status string, now time.Time) {
	if e.markers == nil {
		return
	}
	if err := e.markers.RecordCheck(ctx, source, status, now); err != nil {
		e.logf("pipeline=check step=marker source=%s status=error err=%v", source, err)
	}
}

func (e *Engine) getMarker(ctx context.Context, source string) (repository.SourceMarker, error) {
	if e.markers == nil {
		return repository.SourceMarker{Source: source}, nil
	}
	marker, err := e.markers.Get(ctx, source)
	if err != nil {
		if errors.Is(err, repository.ErrMarkerNotFound) {
			return repository.SourceMarker{Source: source}, nil
		}
		return repository.SourceMarker{}, err
	}
	return marker, nil
}

// acquireLock guards against concurrent refreshes, in-process through
// an atomic flag and across processes through a Redis SetNX when a
// server is reachable.
func (e *Engine) acquireLock(ctx context.Context) (func(), error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}

	if e.cache.Available() {
		ok, err := e.cache.SetIfNotExists(ctx, refreshLockKey, uuid.NewString(), refreshLockTTL)
		if err == nil && !ok {
			e.running.Store(false)
			return nil, ErrRefreshInProgress
		}
	}

	return func() {
		_ = e.cache.Delete(context.Background(), refreshLockKey)
		e.running.Store(false)
	}, nil
}

func blsReferencePeriod(year int) string {
	return fmt.Sprintf("oews-%d", year)
}

func (e *Engine) logf(format string, args ...any) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Printf(format, args...)
}
