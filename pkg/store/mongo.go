package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/graph"
)

const (
	mongoDatabase   = "revset"
	mongoCollection = "graphs"
)

// MongoStore persists graphs in a MongoDB collection, one document per
// graph keyed by name. It backs the server deployment.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// graphDoc is the stored document shape. The graph keeps its own bson tags,
// so the document mirrors the JSON interchange format.
type graphDoc struct {
	Name      string      `bson:"_id"`
	Graph     graph.Graph `bson:"graph"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB at uri and verifies the connection
// with a short ping so misconfiguration fails at startup.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Put stores a graph under name, replacing any previous version.
func (s *MongoStore) Put(ctx context.Context, name string, g graph.Graph) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	doc := graphDoc{Name: name, Graph: g, UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store graph %q", name)
	}
	return nil
}

// Get retrieves a graph by name.
func (s *MongoStore) Get(ctx context.Context, name string) (graph.Graph, error) {
	var doc graphDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return graph.Graph{}, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeStorage, err, "load graph %q", name)
	}
	return doc.Graph, nil
}

// List returns the stored graph names in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list graphs")
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode graph name")
		}
		names = append(names, doc.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list graphs")
	}
	return names, nil
}

// Delete removes a graph.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete graph %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
