package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tateti/internal/entity"
)

const (
	matchKeyPrefix = "match:"
	recentKey      = "matches"

	// only the newest results are kept in the recent list
	recentLimit = 100
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	CreateOrUpdate(ctx context.Context, match *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	DeleteByID(ctx context.Context, id string) error
	Recent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

func (that *dbMatch) CreateOrUpdate(ctx context.Context, match *entity.MatchResult) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+match.ID, matchJSON, 0)
		pipe.LRem(ctx, recentKey, 0, match.ID)
		pipe.LPush(ctx, recentKey, match.ID)
		pipe.LTrim(ctx, recentKey, 0, recentLimit-1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.MatchResult{}, ErrMatchNotFound
	}

	if err != nil {
		return &entity.MatchResult{}, fmt.Errorf("failed to get match by ID: %w", err)
	}

	var existingMatch entity.MatchResult
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return &entity.MatchResult{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, matchKeyPrefix+id)
		pipe.LRem(ctx, recentKey, 0, id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete match by ID: %w", err)
	}

	if deleted.Val() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

// Recent returns up to limit results, newest first. IDs whose record has
// gone missing are skipped.
func (that *dbMatch) Recent(ctx context.Context, limit int) ([]*entity.MatchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	matches := make([]*entity.MatchResult, 0, len(ids))
	for _, id := range ids {
		match, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrMatchNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, nil
}
