package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
	"github.com/trendscope/star-trends/internal/storage"
)

const (
	analysisCollection     = "analysis"
	repositoriesCollection = "repositories"

	connectTimeout = 10 * time.Second
)

// mongoStorage implements the Storage interface for MongoDB
type mongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoStorage creates a new MongoDB storage instance
func NewMongoStorage(uri, database string, logger *zap.Logger) (storage.Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to connect to mongodb", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.NewStoreUnavailableError("mongodb is unreachable", err)
	}

	return &mongoStorage{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}, nil
}

// FetchLatestBatch returns every analysis document carrying the most
// recent analysis date. Documents that fail to decode are skipped and
// counted rather than failing the whole batch.
func (s *mongoStorage) FetchLatestBatch(ctx context.Context) (*domain.AnalysisBatch, error) {
	coll := s.db.Collection(analysisCollection)

	// Resolve the most recent analysis date, then pull every document
	// carrying exactly that date.
	opts := options.FindOne().SetSort(bson.D{{Key: "analysis_date", Value: -1}})
	var latest struct {
		AnalysisDate time.Time `bson:"analysis_date"`
	}
	err := coll.FindOne(ctx, bson.D{}, opts).Decode(&latest)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFoundError("analysis batch")
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to query latest analysis date", err)
	}

	cursor, err := coll.Find(ctx, bson.D{{Key: "analysis_date", Value: latest.AnalysisDate}})
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to query analysis batch", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.RepositoryAnalysis
	skipped := 0
	for cursor.Next(ctx) {
		var r domain.RepositoryAnalysis
		if err := cursor.Decode(&r); err != nil {
			skipped++
			continue
		}
		records = append(records, &r)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to read analysis documents", err)
	}
	if skipped > 0 {
		s.logger.Warn("skipped malformed analysis documents",
			zap.Int("count", skipped),
			zap.Time("analysis_date", latest.AnalysisDate))
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError("analysis batch")
	}

	return domain.NewAnalysisBatch(records), nil
}

// FetchCategoryIndex returns the category assignment for every known
// repository, projected down to the two fields the index needs.
func (s *mongoStorage) FetchCategoryIndex(ctx context.Context) (domain.CategoryIndex, error) {
	coll := s.db.Collection(repositoriesCollection)

	opts := options.Find().SetProjection(bson.D{
		{Key: "full_name", Value: 1},
		{Key: "category", Value: 1},
	})
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to query repository categories", err)
	}
	defer cursor.Close(ctx)

	var assignments []domain.RepositoryCategory
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to read repository documents", err)
	}

	return domain.BuildCategoryIndex(assignments), nil
}

// Ping checks the MongoDB connection
func (s *mongoStorage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return apperrors.NewStoreUnavailableError("mongodb is unreachable", err)
	}
	return nil
}

// Close disconnects from MongoDB
func (s *mongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
