package store

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/salesdash/salesdash/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding product transactions
const CollectionName = "producttransactions"

// MongoTransactionStore is the MongoDB implementation of TransactionStore
type MongoTransactionStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoTransactionStore creates a store on database dbName of client
func NewMongoTransactionStore(client *mongo.Client, dbName string) *MongoTransactionStore {
	return &MongoTransactionStore{
		client: client,
		coll:   client.Database(dbName).Collection(CollectionName),
	}
}

var _ TransactionStore = (*MongoTransactionStore)(nil)

// EnsureIndexes creates the indexes used by the month and price filters
func (s *MongoTransactionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "saleMonth", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return errors.Wrap(err, "create indexes")
}

func searchFilter(text string) bson.M {
	if text == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	or := bson.A{
		bson.M{"title": re},
		bson.M{"description": re},
	}
	if price, ok := domain.SearchPrice(text); ok {
		or = append(or, bson.M{"price": price})
	}
	return bson.M{"$or": or}
}

func soldInMonth(month time.Month) bson.M {
	return bson.M{"saleMonth": int(month), "dateOfSale": bson.M{"$ne": nil}}
}

func (s *MongoTransactionStore) Search(ctx context.Context, q domain.ListQuery) ([]domain.ProductTransaction, int64, error) {
	filter := searchFilter(q.SearchText)
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count transactions")
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.PerPage > 0 {
		opts = opts.SetSkip(int64(q.Offset())).SetLimit(int64(q.PerPage))
	}
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "query transactions")
	}
	rows := make([]domain.ProductTransaction, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, errors.Wrap(err, "decode transactions")
	}
	return rows, total, nil
}

func (s *MongoTransactionStore) MonthlyStatistics(ctx context.Context, month time.Month) (domain.Statistics, error) {
	sold := bson.M{"$ne": bson.A{bson.M{"$ifNull": bson.A{"$dateOfSale", nil}}, nil}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"saleMonth": int(month)},
			bson.M{"dateOfSale": nil},
		}}}},
		{{Key: "$group", Value: bson.M{
			"_id":               nil,
			"totalSaleAmount":   bson.M{"$sum": bson.M{"$cond": bson.A{sold, "$price", 0}}},
			"totalSoldItems":    bson.M{"$sum": bson.M{"$cond": bson.A{sold, 1, 0}}},
			"totalNotSoldItems": bson.M{"$sum": bson.M{"$cond": bson.A{sold, 0, 1}}},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.Statistics{}, errors.Wrap(err, "aggregate statistics")
	}
	var out []domain.Statistics
	if err := cur.All(ctx, &out); err != nil {
		return domain.Statistics{}, errors.Wrap(err, "decode statistics")
	}
	if len(out) == 0 {
		return domain.Statistics{}, nil
	}
	return out[0], nil
}

func (s *MongoTransactionStore) PriceHistogram(ctx context.Context, month time.Month, ranges []domain.PriceRange) (domain.BarChart, error) {
	chart := make(domain.BarChart, len(ranges))
	for _, r := range ranges {
		price := bson.M{"$gte": r.Min}
		if !r.Unbounded() {
			price["$lte"] = r.Max
		}
		filter := soldInMonth(month)
		filter["price"] = price
		n, err := s.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, errors.Wrapf(err, "count price range %s", r.Label)
		}
		chart[r.Label] = n
	}
	return chart, nil
}

func (s *MongoTransactionStore) CategoryBreakdown(ctx context.Context, month time.Month) ([]domain.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: soldInMonth(month)}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate categories")
	}
	out := make([]domain.CategoryCount, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	return out, nil
}

// ReplaceAll is not atomic on MongoDB: standalone servers have no multi-document transactions.
func (s *MongoTransactionStore) ReplaceAll(ctx context.Context, txs []domain.ProductTransaction) (int, error) {
	records := prepare(txs)
	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, errors.Wrap(err, "clear transactions")
	}
	if len(records) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return 0, errors.Wrap(err, "insert transactions")
	}
	return len(records), nil
}

func (s *MongoTransactionStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
