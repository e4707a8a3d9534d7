package mongodb

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/infra/persistence/model"
	"DotWars/modules/kit/errx"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "world"

type WorldRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewWorldRepository(db *mongo.Database) *WorldRepository {
	return &WorldRepository{
		coll: db.Collection(defaultCollectionName),
		now:  time.Now,
	}
}

func (r *WorldRepository) LoadWorld(ctx context.Context, id entity.WorldID) (*entity.World, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithCause(errors.New("mongodb world collection is nil"))
	}

	var doc model.WorldDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, gd.ErrWorldNotFound.WithData("world_id", int(id))
	}
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("world_id", int(id))
	}
	s, err := model.WorldDocToSnapshot(doc)
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err).WithData("world_id", int(id))
	}
	return entity.RestoreWorld(s), nil
}

// Save 整文档覆盖写；只接受 version 不低于库中版本的快照。
func (r *WorldRepository) Save(ctx context.Context, s *entity.WorldPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithCause(errors.New("mongodb world collection is nil"))
	}

	doc := model.WorldSnapshotToDoc(s, r.now())
	filter := bson.M{
		"_id": doc.WorldID,
		"$or": bson.A{
			bson.M{"version": bson.M{"$lte": doc.Version}},
			bson.M{"version": bson.M{"$exists": false}},
		},
	}
	_, err := r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// 库里已有更新版本，旧快照直接丢弃
		return nil
	}
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("world_id", doc.WorldID)
	}
	return nil
}
