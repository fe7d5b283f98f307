package audits

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName, collection string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(collection),
	}
}

func (repo *AuditMongoRepository) InsertAudit(ctx context.Context, audit *models.ToggleAudit) error {
	_, err := repo.Collection.InsertOne(ctx, audit)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err, repo.Collection.Name())
	}
	return nil
}

func (repo *AuditMongoRepository) FindRecentByPractitionerID(ctx context.Context, practitionerID string, limit int) ([]models.ToggleAudit, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := repo.Collection.Find(ctx, bson.M{"practitioner_id": practitionerID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err, repo.Collection.Name())
	}
	defer cursor.Close(ctx)

	audits := make([]models.ToggleAudit, 0, limit)
	err = cursor.All(ctx, &audits)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err, repo.Collection.Name())
	}
	return audits, nil
}
