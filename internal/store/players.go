package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scoutline/player-catalog-server/internal/domain"
)

// PlayerPage is one page of catalog results together with the total number
// of records matching the filter, taken from a single consistent query.
type PlayerPage struct {
	Players    []domain.Player
	Page       int
	PageSize   int
	TotalCount int64
}

// MergeResult aggregates the outcome of a bulk merge: how many documents
// were newly created and how many existing ones changed.
type MergeResult struct {
	Inserted int64
	Modified int64
}

// PlayerStore is the storage capability consumed by the query and
// synchronization engines.
//
//go:generate mockgen -destination=mocks/mock_players.go -package=mocks -source=players.go PlayerStore
type PlayerStore interface {
	// GetPlayers returns one page of players matching the filter plus the
	// total matching count, derived from one aggregation so the two can
	// never disagree. Results follow the collection's natural order.
	GetPlayers(ctx context.Context, filter *domain.Filter, pagination *domain.Pagination) (*PlayerPage, error)

	// PutPlayers upserts the given players keyed by id as a single batch.
	// Unless overwrite is set, documents flagged TO_UPDATE are left
	// untouched. Every written document comes out with status UPDATED.
	PutPlayers(ctx context.Context, players []domain.Player, overwrite bool) (*MergeResult, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

// mongoPlayerStore implements PlayerStore on top of a players collection.
type mongoPlayerStore struct {
	conn *Connection
}

// NewPlayerStore creates a PlayerStore backed by the given connection.
func NewPlayerStore(conn *Connection) PlayerStore {
	return &mongoPlayerStore{conn: conn}
}

// facetPage mirrors the shape produced by the $facet stage.
type facetPage struct {
	Metadata []facetMetadata `bson:"metadata"`
	Players  []domain.Player `bson:"players"`
}

type facetMetadata struct {
	TotalCount int64 `bson:"totalCount"`
}

func (s *mongoPlayerStore) GetPlayers(
	ctx context.Context, filter *domain.Filter, pagination *domain.Pagination,
) (*PlayerPage, error) {
	page := domain.Pagination{}
	if pagination != nil {
		page = *pagination
	}

	pipeline := buildPipeline(buildMatch(filter), page)

	cursor, err := s.conn.Players.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var results []facetPage
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}

	return pageFromFacet(results, page), nil
}

func (s *mongoPlayerStore) PutPlayers(
	ctx context.Context, players []domain.Player, overwrite bool,
) (*MergeResult, error) {
	if len(players) == 0 {
		return &MergeResult{}, nil
	}

	result, err := s.conn.Players.BulkWrite(ctx, buildWriteModels(players, overwrite),
		options.BulkWrite().SetOrdered(false))
	if err != nil {
		return nil, fmt.Errorf("failed to merge players: %w", err)
	}

	return &MergeResult{
		Inserted: result.UpsertedCount,
		Modified: result.ModifiedCount,
	}, nil
}

func (s *mongoPlayerStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// buildMatch compiles the filter into an ordered list of predicate clauses
// combined with logical AND. The trust status clause is always present so
// that flagged documents stay invisible unless explicitly requested.
func buildMatch(filter *domain.Filter) bson.D {
	match := bson.D{
		{Key: "updateStatus", Value: filter.UpdateStatus()},
	}

	if position, ok := filter.Position(); ok {
		match = append(match, bson.E{Key: "position", Value: position})
	}
	if isActive, ok := filter.IsActive(); ok {
		match = append(match, bson.E{Key: "isActive", Value: isActive})
	}
	if clubID, ok := filter.ClubID(); ok {
		match = append(match, bson.E{Key: "clubId", Value: clubID})
	}
	if years, ok := filter.BirthYears(); ok {
		bounds := bson.D{}
		if lower, ok := years.LowerDate(); ok {
			bounds = append(bounds, bson.E{Key: "$gte", Value: lower})
		}
		if upper, ok := years.UpperDate(); ok {
			bounds = append(bounds, bson.E{Key: "$lte", Value: upper})
		}
		if len(bounds) > 0 {
			match = append(match, bson.E{Key: "dateOfBirth", Value: bounds})
		}
	}

	return match
}

// buildPipeline assembles the single count-and-page aggregation: the $facet
// stage computes the total matching count and the requested slice from one
// consistent view, so they can never disagree under concurrent writes.
func buildPipeline(match bson.D, pagination domain.Pagination) mongo.Pipeline {
	pageStages := bson.A{
		bson.D{{Key: "$skip", Value: pagination.Skip()}},
	}
	if !pagination.Unlimited() {
		pageStages = append(pageStages, bson.D{
			{Key: "$limit", Value: int64(pagination.PageSize(domain.DefaultPageSize))},
		})
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$facet", Value: bson.D{
			{Key: "metadata", Value: bson.A{
				bson.D{{Key: "$count", Value: "totalCount"}},
			}},
			{Key: "players", Value: pageStages},
		}}},
	}
}

// buildWriteModels turns the player batch into per-id upserts. In
// non-overwrite mode the write filter additionally requires that the
// existing document is not flagged TO_UPDATE, so manually flagged records
// survive the merge; new documents always insert since nothing matches
// their id either way.
func buildWriteModels(players []domain.Player, overwrite bool) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(players))
	for _, player := range players {
		player.UpdateStatus = domain.UpdateStatusUpdated

		writeFilter := bson.D{{Key: "id", Value: player.ID}}
		if !overwrite {
			writeFilter = append(writeFilter, bson.E{
				Key:   "updateStatus",
				Value: bson.D{{Key: "$ne", Value: domain.UpdateStatusToUpdate}},
			})
		}

		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(writeFilter).
			SetUpdate(bson.D{{Key: "$set", Value: player}}).
			SetUpsert(true))
	}
	return models
}

// pageFromFacet converts the aggregation output into a PlayerPage. An
// empty facet document (empty collection) yields an empty page with a zero
// count rather than an error.
func pageFromFacet(results []facetPage, pagination domain.Pagination) *PlayerPage {
	page := &PlayerPage{
		Players:  []domain.Player{},
		Page:     pagination.Page(),
		PageSize: pagination.PageSize(domain.DefaultPageSize),
	}

	if len(results) == 0 {
		return page
	}

	facet := results[0]
	if facet.Players != nil {
		page.Players = facet.Players
	}
	if len(facet.Metadata) > 0 {
		page.TotalCount = facet.Metadata[0].TotalCount
	}

	return page
}
