package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/bodegas-api/internal/application/dto"
	"github.com/jhoicas/bodegas-api/internal/domain/entity"
)

// MongoSink inserta cada evento en la colección de auditoría (por defecto AuditLogDB.auditLogs).
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSink conecta con MongoDB y verifica la conexión.
func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoSink{client: client, collection: client.Database(database).Collection(collection)}, nil
}

func (s *MongoSink) Name() string { return "mongo" }

func (s *MongoSink) Write(ctx context.Context, e entity.AuditEvent) error {
	if _, err := s.collection.InsertOne(ctx, toDocument(e)); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// toDocument arma el documento con el orden de campos del payload.
func toDocument(e entity.AuditEvent) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "eventId", Value: e.ID},
		{Key: "timestamp", Value: primitive.NewDateTimeFromTime(e.Timestamp)},
		{Key: "empId", Value: e.ActorID},
		{Key: "actionType", Value: e.ActionType},
		{Key: "endpoint", Value: e.Endpoint},
		{Key: "data", Value: toBSON(e.Payload)},
	}
}

// toBSON convierte los valores del payload a tipos nativos de BSON: objetos anidados como bson.D,
// listas como bson.A y decimales como Decimal128.
func toBSON(v any) any {
	switch x := v.(type) {
	case entity.AuditPayload:
		d := make(bson.D, 0, len(x))
		for _, f := range x {
			d = append(d, bson.E{Key: f.Key, Value: toBSON(f.Value)})
		}
		return d
	case []any:
		a := make(bson.A, 0, len(x))
		for _, item := range x {
			a = append(a, toBSON(item))
		}
		return a
	case decimal.Decimal:
		return decimal128(x)
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		return decimal128(*x)
	case dto.Date:
		return x.Format(dto.DateLayout)
	case time.Time:
		return primitive.NewDateTimeFromTime(x)
	default:
		return v
	}
}

func decimal128(d decimal.Decimal) any {
	dec, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return d.String()
	}
	return dec
}
