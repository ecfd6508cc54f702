package mongo

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection stores documents as bson.M after a real BSON round trip so
// struct tags (omitempty, _id) behave as they would against a server.
type fakeCollection struct {
	mu        sync.Mutex
	docs      []bson.M
	indexes   []mongo.IndexModel
	findErr   error
	insertErr error
	deleteErr error
}

func (c *fakeCollection) FindOne(_ context.Context, filter any, _ ...*options.FindOneOptions) singleResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findErr != nil {
		return fakeSingleResult{err: c.findErr}
	}
	for _, doc := range c.docs {
		if matches(doc, filter.(bson.M)) {
			raw, err := bson.Marshal(doc)
			return fakeSingleResult{raw: raw, err: err}
		}
	}
	return fakeSingleResult{err: mongo.ErrNoDocuments}
}

func (c *fakeCollection) InsertOne(_ context.Context, document any, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	raw, err := bson.Marshal(document)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	c.docs = append(c.docs, doc)
	return &mongo.InsertOneResult{InsertedID: doc["_id"]}, nil
}

func (c *fakeCollection) DeleteOne(_ context.Context, filter any, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteErr != nil {
		return nil, c.deleteErr
	}
	for i, doc := range c.docs {
		if matches(doc, filter.(bson.M)) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{DeletedCount: 0}, nil
}

func (c *fakeCollection) Indexes() indexView {
	return fakeIndexView{c: c}
}

func (c *fakeCollection) only() bson.M {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.docs) != 1 {
		return nil
	}
	return c.docs[0]
}

type fakeIndexView struct {
	c *fakeCollection
}

func (v fakeIndexView) CreateOne(_ context.Context, model mongo.IndexModel, _ ...*options.CreateIndexesOptions) (string, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	v.c.indexes = append(v.c.indexes, model)
	if model.Options != nil && model.Options.Name != nil {
		return *model.Options.Name, nil
	}
	return "", nil
}

type fakeSingleResult struct {
	raw []byte
	err error
}

func (r fakeSingleResult) Decode(val any) error {
	if r.err != nil {
		return r.err
	}
	return bson.Unmarshal(r.raw, val)
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		if doc[k] != v {
			return false
		}
	}
	return true
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error collection: nocturnal.users index: username_unique"}},
	}
}
