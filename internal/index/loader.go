package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"jobtracker/internal/config"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

var ErrDocumentNotFound = errors.New("document not found")

// Loader manages the Typesense collections and document writes. All
// writes are upserts keyed by the document's natural id.
type Loader struct {
	client    *typesense.Client
	batchSize int
	logger    *log.Logger
}

// ImportResult counts per-document outcomes of one batch import.
type ImportResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// CollectionStats is the document count snapshot for one collection.
type CollectionStats struct {
	Name         string `json:"name"`
	NumDocuments int64  `json:"num_documents"`
	NumFields    int    `json:"num_fields"`
}

func NewLoader(cfg config.TypesenseConfig, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	server := fmt.Sprintf("%s://%s:%s", cfg.Protocol, cfg.Host, cfg.Port)
	client := typesense.NewClient(
		typesense.WithServer(server),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(timeout),
	)

	return &Loader{client: client, batchSize: batchSize, logger: logger}
}

// Health reports whether Typesense answers its health endpoint.
func (l *Loader) Health(ctx context.Context) bool {
	if l == nil || l.client == nil {
		return false
	}
	ok, err := l.client.Health(ctx, 2*time.Second)
	if err != nil {
		l.logger.Printf("[Index] Health check failed err=%v", err)
		return false
	}
	return ok
}

// EnsureCollections creates the occupations, wages and skills
// collections. dropExisting deletes each collection first; that is only
// set by explicit full-refresh runs, never by partial updates.
func (l *Loader) EnsureCollections(ctx context.Context, dropExisting bool) error {
	if l == nil || l.client == nil {
		return errors.New("nil index loader")
	}

	for _, schema := range allSchemas() {
		if dropExisting {
			if _, err := l.client.Collection(schema.Name).Delete(ctx); err != nil && !isNotFound(err) {
				return fmt.Errorf("drop collection %s: %w", schema.Name, err)
			}
		}

		_, err := l.client.Collections().Create(ctx, schema)
		switch {
		case err == nil:
			l.logger.Printf("[Index] Collection created name=%s", schema.Name)
		case isConflict(err):
			// already exists
		default:
			return fmt.Errorf("create collection %s: %w", schema.Name, err)
		}
	}
	return nil
}

// Upsert imports documents into a collection in batches, counting
// per-document successes and failures.
func (l *Loader) Upsert(ctx context.Context, collection string, docs []any) (ImportResult, error) {
	if l == nil || l.client == nil {
		return ImportResult{}, errors.New("nil index loader")
	}
	if len(docs) == 0 {
		return ImportResult{}, nil
	}

	var result ImportResult
	params := &api.ImportDocumentsParams{
		Action:    pointer.String(string(api.Upsert)),
		BatchSize: pointer.Int(l.batchSize),
	}

	for i := 0; i < len(docs); i += l.batchSize {
		end := i + l.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[i:end]

		responses, err := l.client.Collection(collection).Documents().Import(ctx, batch, params)
		if err != nil {
			result.Failed += len(batch)
			l.logger.Printf("[Index] Batch import error collection=%s batch=%d err=%v", collection, i/l.batchSize, err)
			continue
		}
		for _, r := range responses {
			if r.Success {
				result.Success++
			} else {
				result.Failed++
				l.logger.Printf("[Index] Document rejected collection=%s err=%s", collection, r.Error)
			}
		}
	}

	l.logger.Printf("[Index] Upsert finished collection=%s success=%d failed=%d", collection, result.Success, result.Failed)
	return result, nil
}

// GetDocument retrieves one document by id; ErrDocumentNotFound when
// the id is absent.
func (l *Loader) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	if l == nil || l.client == nil {
		return nil, errors.New("nil index loader")
	}
	doc, err := l.client.Collection(collection).Document(id).Retrieve(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes one document by id. Missing ids are not an
// error.
func (l *Loader) DeleteDocument(ctx context.Context, collection, id string) error {
	if l == nil || l.client == nil {
		return errors.New("nil index loader")
	}
	if _, err := l.client.Collection(collection).Document(id).Delete(ctx); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// Stats returns the document count for one collection.
func (l *Loader) Stats(ctx context.Context, collection string) (CollectionStats, error) {
	if l == nil || l.client == nil {
		return CollectionStats{}, errors.New("nil index loader")
	}
	resp, err := l.client.Collection(collection).Retrieve(ctx)
	if err != nil {
		return CollectionStats{}, err
	}

	stats := CollectionStats{Name: resp.Name}
	if resp.NumDocuments != nil {
		stats.NumDocuments = *resp.NumDocuments
	}
	stats.NumFields = len(resp.Fields)
	return stats, nil
}

// AllStats returns stats for every collection the loader manages.
func (l *Loader) AllStats(ctx context.Context) (map[string]CollectionStats, error) {
	out := make(map[string]CollectionStats, 3)
	for _, name := range []string{CollectionOccupations, CollectionWagesByLocation, CollectionSkills} {
		stats, err := l.Stats(ctx, name)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		out[name] = stats
	}
	return out, nil
}

func isNotFound(err error) bool {
	return httpStatus(err) == http.StatusNotFound
}

func isConflict(err error) bool {
	return httpStatus(err) == http.StatusConflict
}

func httpStatus(err error) int {
	var httpErr *typesense.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
