package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"jobtracker/internal/domain/skill"
	"jobtracker/internal/index"
)

// SkillIndex is the slice of the index the skill reads need.
type SkillIndex interface {
	SearchSkills(ctx context.Context, q index.SkillQuery) (index.Page[skill.Aggregate], error)
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)
}

type SkillUsecase interface {
	Search(ctx context.Context, q index.SkillQuery) (index.Page[skill.Aggregate], error)
	GetByID(ctx context.Context, id string) (skill.Aggregate, error)
}

type Skill struct {
	idx   SkillIndex
	cache SearchCache
	log   *log.Logger
}

func NewSkillUsecase(idx SkillIndex, cache SearchCache, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{idx: idx, cache: cache, log: logger}
}

func (u *Skill) Search(ctx context.Context, q index.SkillQuery) (index.Page[skill.Aggregate], error) {
	key := SkillsSearchCacheKey(q)

	var cached index.Page[skill.Aggregate]
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	page, err := u.idx.SearchSkills(ctx, q)
	if err != nil {
		u.log.Printf("usecase=skill op=search status=error err=%v", err)
		return index.Page[skill.Aggregate]{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, page, 0)
	}
	return page, nil
}

// GetByID looks up one aggregated element by its O*NET element id,
// e.g. "2.A.1.a".
func (u *Skill) GetByID(ctx context.Context, id string) (skill.Aggregate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skill.Aggregate{}, ErrInvalidInput
	}

	raw, err := u.idx.GetDocument(ctx, index.CollectionSkills, id)
	if err != nil {
		if errors.Is(err, index.ErrDocumentNotFound) {
			return skill.Aggregate{}, ErrNotFound
		}
		u.log.Printf("usecase=skill op=get id=%s status=error err=%v", id, err)
		return skill.Aggregate{}, ErrInternal
	}

	var agg skill.Aggregate
	b, err := json.Marshal(raw)
	if err != nil {
		return skill.Aggregate{}, ErrInternal
	}
	if err := json.Unmarshal(b, &agg); err != nil {
		return skill.Aggregate{}, ErrInternal
	}
	return agg, nil
}
