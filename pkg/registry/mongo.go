package registry

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// MongoSource reads collections from a MongoDB database, one collection per
// kind plus the relationship collection.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoSource connects to uri and verifies the connection.
func NewMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo connect: %v", ErrNetwork, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: mongo ping: %v", ErrNetwork, err)
	}
	return &MongoSource{client: client, db: client.Database(database)}, nil
}

// NewMongoSourceFromDatabase wraps an existing database handle. Close does
// not disconnect a client it did not create.
func NewMongoSourceFromDatabase(db *mongo.Database) *MongoSource {
	return &MongoSource{db: db}
}

// Name returns "mongo".
func (s *MongoSource) Name() string { return "mongo" }

// Close disconnects the client created by [NewMongoSource].
func (s *MongoSource) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Nodes reads the collection for kind.
func (s *MongoSource) Nodes(ctx context.Context, kind ontology.Kind, limit int) ([]ontology.Node, error) {
	recs, err := s.records(ctx, Collection(kind), limit)
	if err != nil {
		return nil, err
	}
	return decodeNodes(kind, recs), nil
}

// Relationships reads the relationship collection.
func (s *MongoSource) Relationships(ctx context.Context, limit int) ([]ontology.Edge, error) {
	recs, err := s.records(ctx, Relationships, limit)
	if err != nil {
		return nil, err
	}
	return decodeEdges(recs), nil
}

func (s *MongoSource) records(ctx context.Context, collection string, limit int) ([]Record, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %v", ErrNetwork, collection, err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNetwork, collection, err)
	}

	recs := make([]Record, 0, len(docs))
	for _, doc := range docs {
		recs = append(recs, fromBSON(doc))
	}
	return recs, nil
}

// fromBSON converts driver types into the plain values records carry.
// The document _id is dropped; codes identify records.
func fromBSON(doc bson.M) Record {
	rec := make(Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		switch t := v.(type) {
		case primitive.DateTime:
			rec[k] = t.Time().UTC()
		case primitive.ObjectID:
			rec[k] = t.Hex()
		case bson.M:
			rec[k] = fromBSON(t)
		default:
			rec[k] = v
		}
	}
	return rec
}
