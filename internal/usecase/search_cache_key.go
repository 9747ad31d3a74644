package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"jobtracker/internal/index"
)

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func hashKey(prefix string, in any) string {
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

func OccupationsSearchCacheKey(q index.OccupationQuery) string {
	q.Query = normalizeSearchValue(q.Query)
	q.EducationLevel = normalizeSearchValue(q.EducationLevel)
	q.Technology = normalizeSearchValue(q.Technology)
	q.SkillName = normalizeSearchValue(q.SkillName)
	return hashKey("occupations:search:", q)
}

func OccupationDetailCacheKey(socCode string) string {
	return "occupations:detail:" + normalizeSearchValue(socCode)
}

func OccupationsCompareCacheKey(codes []string) string {
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		normalized = append(normalized, normalizeSearchValue(c))
	}
	return hashKey("occupations:compare:", normalized)
}

func WagesSearchCacheKey(q index.WageQuery) string {
	q.Query = normalizeSearchValue(q.Query)
	q.SOCCode = normalizeSearchValue(q.SOCCode)
	q.AreaType = normalizeSearchValue(q.AreaType)
	q.StateCode = normalizeSearchValue(q.StateCode)
	return hashKey("wages:search:", q)
}

func WageSummaryCacheKey(socCode string) string {
	return "wages:summary:" + normalizeSearchValue(socCode)
}

func SkillsSearchCacheKey(q index.SkillQuery) string {
	q.Query = normalizeSearchValue(q.Query)
	q.SkillType = normalizeSearchValue(q.SkillType)
	q.Category = normalizeSearchValue(q.Category)
	return hashKey("skills:search:", q)
}
