package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/mock/gomock"

	"github.com/cpunk/mongostd/v1/record"
)

type testItem struct {
	ItemID     string  `bson:"item_id"`
	Price      float64 `bson:"price"`
	CurrencyID string  `bson:"currency_id,omitempty"`
}

func (i testItem) Serialize() (record.Document, error) { return record.Marshal(i) }

func (testItem) FieldSchema() record.Schema {
	return record.Schema{
		{Name: "item_id", Kind: record.KindString, Required: true},
		{Name: "price", Kind: record.KindFloat, Required: true},
		{Name: "currency_id", Kind: record.KindString},
	}
}

func newMockFacade(mt *mtest.T) *Mongo {
	m, err := NewMongoFromClient(mt.Client, Config{Database: mt.DB.Name()})
	require.NoError(mt, err)
	return m
}

func itemsNS(mt *mtest.T) string {
	return mt.DB.Name() + ".items"
}

func itemDoc(id, itemID string, price float64) bson.D {
	oid, _ := primitive.ObjectIDFromHex(id)
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "item_id", Value: itemID},
		{Key: "price", Value: price},
	}
}

func TestSave(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ok, err := m.Save(context.Background(), "items", testItem{ItemID: "145123213", Price: 100.4})
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)

		docs, err := started.Command.LookupErr("documents")
		require.NoError(mt, err)
		values, err := docs.Array().Values()
		require.NoError(mt, err)
		require.Len(mt, values, 1)

		_, err = values[0].Document().LookupErr("currency_id")
		assert.Error(mt, err, "defaulted field is omitted")
	})

	mt.Run("rejected write is a false result", func(mt *mtest.T) {
		ctrl := gomock.NewController(mt)
		log := NewMockLogger(ctrl)
		log.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
		log.EXPECT().Warn("MongoDB rejected write", gomock.Any(), gomock.Any()).Times(1)

		m := newMockFacade(mt).WithLogger(log)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		ok, err := m.Save(context.Background(), "items", testItem{ItemID: "1", Price: 1})
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("write concern error is returned", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "writeConcernError", Value: bson.D{
				{Key: "code", Value: 64},
				{Key: "errmsg", Value: "waiting for replication timed out"},
			}},
		))

		ok, err := m.Save(context.Background(), "items", testItem{ItemID: "1", Price: 1})
		require.Error(mt, err)
		assert.False(mt, ok)

		var we mongo.WriteException
		require.ErrorAs(mt, err, &we)
		require.NotNil(mt, we.WriteConcernError)
		assert.Equal(mt, 64, we.WriteConcernError.Code)
	})

	mt.Run("schema violation never reaches the server", func(mt *mtest.T) {
		m := newMockFacade(mt)

		ok, err := m.Save(context.Background(), "items", testItem{Price: 1})
		assert.ErrorIs(mt, err, record.ErrSchemaViolation)
		assert.False(mt, ok)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("command error is returned", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
			Name:    "Unauthorized",
		}))

		ok, err := m.Save(context.Background(), "items", testItem{ItemID: "1", Price: 1})
		assert.Error(mt, err)
		assert.False(mt, ok)
	})
}

func TestSaveMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts batch", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		ok, err := m.SaveMany(context.Background(), "items", []record.Record{
			testItem{ItemID: "1", Price: 1},
			testItem{ItemID: "2", Price: 2},
		})
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		assert.Len(mt, docs, 2)
	})

	mt.Run("empty batch", func(mt *mtest.T) {
		m := newMockFacade(mt)

		ok, err := m.SaveMany(context.Background(), "items", nil)
		assert.ErrorIs(mt, err, ErrEmptyBatch)
		assert.False(mt, ok)
	})

	mt.Run("invalid record aborts the batch", func(mt *mtest.T) {
		m := newMockFacade(mt)

		ok, err := m.SaveMany(context.Background(), "items", []record.Record{
			testItem{ItemID: "1", Price: 1},
			testItem{Price: 2},
		})
		assert.ErrorIs(mt, err, record.ErrSchemaViolation)
		assert.ErrorContains(mt, err, "record 1")
		assert.False(mt, ok)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("rejected batch is a false result", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		ok, err := SaveAll(context.Background(), m, "items", []testItem{
			{ItemID: "1", Price: 1},
			{ItemID: "1", Price: 1},
		})
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}

func TestFindBy(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns documents", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS(mt), mtest.FirstBatch,
			itemDoc("65a000000000000000000001", "145123213", 100.4),
		))

		docs, err := m.FindBy(context.Background(), "items", "item_id", "145123213")
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, "145123213", docs[0]["item_id"])
		assert.NotNil(mt, docs[0].ID())

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		sort, err := started.Command.LookupErr("sort")
		require.NoError(mt, err)
		assert.Equal(mt, int32(1), sort.Document().Lookup("_id").Int32())
	})

	mt.Run("no match is an empty slice", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS(mt), mtest.FirstBatch))

		docs, err := m.FindBy(context.Background(), "items", "item_id", "missing")
		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)
	})

	mt.Run("typed", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS(mt), mtest.FirstBatch,
			itemDoc("65a000000000000000000001", "145123213", 100.4),
		))

		items, err := FindByAs[testItem](context.Background(), m, "items", "item_id", "145123213")
		require.NoError(mt, err)
		assert.Equal(mt, []testItem{{ItemID: "145123213", Price: 100.4}}, items)
	})

	mt.Run("typed decode mismatch fails the call", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS(mt), mtest.FirstBatch,
			itemDoc("65a000000000000000000001", "1", 1),
			bson.D{{Key: "item_id", Value: "2"}},
		))

		items, err := FindByAs[testItem](context.Background(), m, "items", "price", 1)
		assert.ErrorIs(mt, err, record.ErrDecode)
		assert.ErrorContains(mt, err, "document 1")
		assert.Nil(mt, items)
	})

	mt.Run("getMore failure is returned unchanged", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(42, itemsNS(mt), mtest.FirstBatch,
				itemDoc("65a000000000000000000001", "1", 1),
			),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    89,
				Message: "network timeout",
				Name:    "NetworkTimeout",
			}),
			mtest.CreateSuccessResponse(),
		)

		docs, err := m.FindBy(context.Background(), "items", "price", 1)
		require.Error(mt, err)
		assert.Nil(mt, docs)

		var ce mongo.CommandError
		require.ErrorAs(mt, err, &ce)
		assert.Equal(mt, int32(89), ce.Code)
		assert.Equal(mt, ce.Error(), err.Error())
	})

	mt.Run("invalid field", func(mt *mtest.T) {
		m := newMockFacade(mt)

		_, err := m.FindBy(context.Background(), "items", "", "x")
		assert.ErrorIs(mt, err, ErrInvalidFilter)
	})
}

func TestFilter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matches every pair", func(mt *mtest.T) {
		m := newMockFacade(mt)
		doc := append(itemDoc("65a000000000000000000001", "145123213", 100.4), bson.E{Key: "currency_id", Value: "USD"})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS(mt), mtest.FirstBatch, doc))

		items, err := FilterAs[testItem](context.Background(), m, "items", map[string]any{
			"item_id":     "145123213",
			"currency_id": "USD",
		})
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, "USD", items[0].CurrencyID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(mt, "USD", filter.Lookup("currency_id").StringValue())
		assert.Equal(mt, "145123213", filter.Lookup("item_id").StringValue())
	})
}

func TestILike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("builds or of regexes", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".people", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Marcos"}},
		))

		docs, err := m.ILike(context.Background(), "people", []string{"name", "last_name"}, "mar")
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, "Marcos", docs[0]["name"])

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		or, err := started.Command.Lookup("filter").Document().LookupErr("$or")
		require.NoError(mt, err)
		clauses, err := or.Array().Values()
		require.NoError(mt, err)
		assert.Len(mt, clauses, 2)
	})

	mt.Run("no fields", func(mt *mtest.T) {
		m := newMockFacade(mt)

		_, err := m.ILike(context.Background(), "people", nil, "mar")
		assert.ErrorIs(mt, err, ErrInvalidFilter)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("replaces first match", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		ok, err := m.Update(context.Background(), "items", "item_id", "1", testItem{ItemID: "1", Price: 140})
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		updates, err := started.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, updates, 1)
		multi, err := updates[0].Document().LookupErr("multi")
		if err == nil {
			assert.False(mt, multi.Boolean())
		}
	})

	mt.Run("no match", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		ok, err := m.Update(context.Background(), "items", "item_id", "missing", testItem{ItemID: "1", Price: 1})
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("invalid replacement", func(mt *mtest.T) {
		m := newMockFacade(mt)

		ok, err := m.Update(context.Background(), "items", "item_id", "1", testItem{Price: 1})
		assert.ErrorIs(mt, err, record.ErrSchemaViolation)
		assert.False(mt, ok)
	})
}

func TestDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deletes", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		ok, err := m.Delete(context.Background(), "items", "item_id", "1")
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		deletes, err := started.Command.Lookup("deletes").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, deletes, 1)
		assert.Equal(mt, int32(1), deletes[0].Document().Lookup("limit").Int32())
	})

	mt.Run("no match", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		ok, err := m.Delete(context.Background(), "items", "item_id", "missing")
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}

func TestDeleteAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		ok, err := m.DeleteAll(context.Background(), "never_written")
		require.NoError(mt, err)
		assert.True(mt, ok)
	})
}

func TestCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("counts", func(mt *mtest.T) {
		m := newMockFacade(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, itemsNS(mt), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(3)}},
		))

		n, err := m.Count(context.Background(), "items", map[string]any{"currency_id": "USD"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestNewMongoFromClient(t *testing.T) {
	_, err := NewMongoFromClient(nil, Config{Database: "example"})
	assert.ErrorIs(t, err, ErrNotConnected)

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("shutdown keeps borrowed client", func(mt *mtest.T) {
		m := newMockFacade(mt)
		require.NoError(mt, m.GracefulShutdown(context.Background()))

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, m.Ping(context.Background()))
	})
}
