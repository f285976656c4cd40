// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

const auditLogCollection = "audit_logs"

// auditLogDocument is the BSON shape of one audit entry. The log id doubles
// as the document _id so lookups by log id hit the primary index.
type auditLogDocument struct {
	LogID      string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Action     string    `bson:"action"`
	EntityType string    `bson:"entity_type"`
	EntityID   string    `bson:"entity_id,omitempty"`
	Method     string    `bson:"method"`
	Path       string    `bson:"path"`
	StatusCode int       `bson:"status_code"`
	IPAddress  string    `bson:"ip_address"`
	UserAgent  string    `bson:"user_agent"`
	OldValue   any       `bson:"old_value,omitempty"`
	NewValue   any       `bson:"new_value,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d *auditLogDocument) toEntity() *entity.AuditLogEntry {
	return &entity.AuditLogEntry{
		LogID:      d.LogID,
		UserID:     d.UserID,
		Action:     d.Action,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Method:     d.Method,
		Path:       d.Path,
		StatusCode: d.StatusCode,
		IPAddress:  d.IPAddress,
		UserAgent:  d.UserAgent,
		OldValue:   d.OldValue,
		NewValue:   d.NewValue,
		CreatedAt:  d.CreatedAt,
	}
}

func auditLogDocumentFromEntity(entry *entity.AuditLogEntry) *auditLogDocument {
	return &auditLogDocument{
		LogID:      entry.LogID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Method:     entry.Method,
		Path:       entry.Path,
		StatusCode: entry.StatusCode,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		CreatedAt:  entry.CreatedAt,
	}
}

// auditLogRepository implements adapter.AuditLogRepository on MongoDB.
type auditLogRepository struct {
	col *mongo.Collection
}

// NewAuditLogRepository creates an audit log repository backed by the given
// Mongo database.
func NewAuditLogRepository(db *mongo.Database) adapter.AuditLogRepository {
	return &auditLogRepository{col: db.Collection(auditLogCollection)}
}

// EnsureAuditLogIndexes creates the secondary indexes the audit queries rely
// on. Called once at startup, after the Mongo connection is established.
func EnsureAuditLogIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := db.Collection(auditLogCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert appends a new log entry.
func (r *auditLogRepository) Insert(ctx context.Context, entry *entity.AuditLogEntry) error {
	_, err := r.col.InsertOne(ctx, auditLogDocumentFromEntity(entry))
	return err
}

// FindByFilter retrieves entries matching the filter, newest first.
func (r *auditLogRepository) FindByFilter(ctx context.Context, filter adapter.AuditLogFilter, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	if filter.EntityType != "" {
		query["entity_type"] = filter.EntityType
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		createdAt := bson.M{}
		if filter.StartDate != nil {
			createdAt["$gte"] = filter.StartDate.UTC()
		}
		if filter.EndDate != nil {
			createdAt["$lte"] = filter.EndDate.UTC()
		}
		query["created_at"] = createdAt
	}
	return r.findPage(ctx, query, pagination)
}

// FindByLogID retrieves a single entry by its log id.
func (r *auditLogRepository) FindByLogID(ctx context.Context, logID string) (*entity.AuditLogEntry, error) {
	var doc auditLogDocument
	err := r.col.FindOne(ctx, bson.M{"_id": logID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerror.ErrAuditLogNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// FindByEntity retrieves the entries recorded against one entity, newest
// first, optionally restricted to one actor's entries.
func (r *auditLogRepository) FindByEntity(ctx context.Context, entityType, entityID, userID string, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	query := bson.M{"entity_type": entityType, "entity_id": entityID}
	if userID != "" {
		query["user_id"] = userID
	}
	return r.findPage(ctx, query, pagination)
}

// Delete removes a single entry by its log id.
func (r *auditLogRepository) Delete(ctx context.Context, logID string) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": logID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerror.ErrAuditLogNotFound
	}
	return nil
}

func (r *auditLogRepository) findPage(ctx context.Context, query bson.M, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(pagination.Offset())).
		SetLimit(int64(pagination.Limit))

	cursor, err := r.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []auditLogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]*entity.AuditLogEntry, len(docs))
	for i := range docs {
		entries[i] = docs[i].toEntity()
	}

	return &adapter.AuditLogListResult{
		Entries:    entries,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: adapter.TotalPages(total, pagination.Limit),
	}, nil
}

// unavailableAuditLogRepository stands in when the document store is not
// connected. Reads and deletes fail fast; inserts are dropped so that the
// operations being audited keep working.
type unavailableAuditLogRepository struct{}

// NewUnavailableAuditLogRepository returns an AuditLogRepository used when no
// Mongo connection could be established at startup.
func NewUnavailableAuditLogRepository() adapter.AuditLogRepository {
	return unavailableAuditLogRepository{}
}

func (unavailableAuditLogRepository) Insert(ctx context.Context, entry *entity.AuditLogEntry) error {
	return nil
}

func (unavailableAuditLogRepository) FindByFilter(ctx context.Context, filter adapter.AuditLogFilter, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	return nil, domainerror.ErrAuditStoreUnavailable
}

func (unavailableAuditLogRepository) FindByLogID(ctx context.Context, logID string) (*entity.AuditLogEntry, error) {
	return nil, domainerror.ErrAuditStoreUnavailable
}

func (unavailableAuditLogRepository) FindByEntity(ctx context.Context, entityType, entityID, userID string, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	return nil, domainerror.ErrAuditStoreUnavailable
}

func (unavailableAuditLogRepository) Delete(ctx context.Context, logID string) error {
	return domainerror.ErrAuditStoreUnavailable
}
