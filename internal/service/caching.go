package service

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/campusmedia/modconsole/internal/modapi"
)

const analysisCacheSize = 256

// CachingService wraps a moderation service and memoizes successful Analyze
// calls by content. Analysis of identical content is deterministic
// server-side, and moderators frequently re-analyze the same excerpt while
// deciding, so the cache saves a round trip. All other operations pass
// through untouched.
type CachingService struct {
	modapi.Service
	analyses *lru.Cache[string, modapi.AnalysisResult]
}

func NewCachingService(inner modapi.Service) (*CachingService, error) {
	cache, err := lru.New[string, modapi.AnalysisResult](analysisCacheSize)
	if err != nil {
		return nil, err
	}
	return &CachingService{Service: inner, analyses: cache}, nil
}

func (s *CachingService) Analyze(ctx context.Context, content string) (*modapi.AnalysisResult, error) {
	if res, ok := s.analyses.Get(content); ok {
		out := res
		return &out, nil
	}
	res, err := s.Service.Analyze(ctx, content)
	if err != nil {
		return nil, err
	}
	if res != nil {
		s.analyses.Add(content, *res)
	}
	return res, nil
}
