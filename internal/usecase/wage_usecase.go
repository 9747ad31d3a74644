package usecase

import (
	"context"
	"log"

	"jobtracker/internal/domain/wage"
	"jobtracker/internal/index"
)

// WageIndex is the slice of the index the wage reads need.
type WageIndex interface {
	SearchWages(ctx context.Context, q index.WageQuery) (index.Page[wage.ByLocation], error)
}

type WageUsecase interface {
	Search(ctx context.Context, q index.WageQuery) (index.Page[wage.ByLocation], error)
	Summary(ctx context.Context, socCode string) (WageSummary, error)
}

type Wage struct {
	idx   WageIndex
	cache SearchCache
	log   *log.Logger
}

func NewWageUsecase(idx WageIndex, cache SearchCache, logger *log.Logger) *Wage {
	if logger == nil {
		logger = log.Default()
	}
	return &Wage{idx: idx, cache: cache, log: logger}
}

func (u *Wage) Search(ctx context.Context, q index.WageQuery) (index.Page[wage.ByLocation], error) {
	key := WagesSearchCacheKey(q)

	var cached index.Page[wage.ByLocation]
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	page, err := u.idx.SearchWages(ctx, q)
	if err != nil {
		u.log.Printf("usecase=wage op=search status=error err=%v", err)
		return index.Page[wage.ByLocation]{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, page, 0)
	}
	return page, nil
}

// WageSummary is the geographic wage picture for one occupation: the
// national row plus the best-paying states and metro areas.
type WageSummary struct {
	SOCCode   string            `json:"soc_code"`
	National  *wage.ByLocation  `json:"national,omitempty"`
	TopStates []wage.ByLocation `json:"top_states"`
	TopMetros []wage.ByLocation `json:"top_metros"`
}

const summaryTopCount = 5

func (u *Wage) Summary(ctx context.Context, socCode string) (WageSummary, error) {
	soc, err := validSOC(socCode)
	if err != nil {
		return WageSummary{}, err
	}

	key := WageSummaryCacheKey(soc)
	var cached WageSummary
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	summary := WageSummary{SOCCode: soc}

	national, err := u.topByMedian(ctx, soc, wage.AreaTypeNational, 1)
	if err != nil {
		return WageSummary{}, err
	}
	if len(national) > 0 {
		summary.National = &national[0]
	}

	if summary.TopStates, err = u.topByMedian(ctx, soc, wage.AreaTypeState, summaryTopCount); err != nil {
		return WageSummary{}, err
	}
	if summary.TopMetros, err = u.topByMedian(ctx, soc, wage.AreaTypeMetro, summaryTopCount); err != nil {
		return WageSummary{}, err
	}

	if summary.National == nil && len(summary.TopStates) == 0 && len(summary.TopMetros) == 0 {
		return WageSummary{}, ErrNotFound
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, summary, 0)
	}
	return summary, nil
}

func (u *Wage) topByMedian(ctx context.Context, soc, areaType string, limit int) ([]wage.ByLocation, error) {
	page, err := u.idx.SearchWages(ctx, index.WageQuery{
		SOCCode:  soc,
		AreaType: areaType,
		SortBy:   "annual_median_wage:desc",
		PerPage:  limit,
		Page:     1,
	})
	if err != nil {
		u.log.Printf("usecase=wage op=summary soc=%s area=%s status=error err=%v", soc, areaType, err)
		return nil, ErrInternal
	}
	return page.Hits, nil
}
