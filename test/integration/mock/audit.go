package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// AuditStore is an in-memory stand-in for the MongoDB audit repository.
type AuditStore struct {
	mu      sync.Mutex
	entries []*entity.AuditLogEntry
}

// NewAuditStore creates an empty in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Insert appends a new log entry.
func (s *AuditStore) Insert(ctx context.Context, entry *entity.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// FindByFilter retrieves entries matching the filter, newest first.
func (s *AuditStore) FindByFilter(ctx context.Context, filter adapter.AuditLogFilter, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*entity.AuditLogEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.StartDate != nil && entry.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && entry.CreatedAt.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, entry)
	}

	return s.paginate(matched, pagination), nil
}

// FindByLogID retrieves a single entry by its log id.
func (s *AuditStore) FindByLogID(ctx context.Context, logID string) (*entity.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.LogID == logID {
			return entry, nil
		}
	}
	return nil, domainerror.ErrAuditLogNotFound
}

// FindByEntity retrieves the entries recorded against one entity, newest
// first, optionally restricted to one actor's entries.
func (s *AuditStore) FindByEntity(ctx context.Context, entityType, entityID, userID string, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*entity.AuditLogEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.EntityType != entityType || entry.EntityID != entityID {
			continue
		}
		if userID != "" && entry.UserID != userID {
			continue
		}
		matched = append(matched, entry)
	}
	return s.paginate(matched, pagination), nil
}

// Delete removes a single entry by its log id.
func (s *AuditStore) Delete(ctx context.Context, logID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.entries {
		if entry.LogID == logID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrAuditLogNotFound
}

// Clear removes all entries.
func (s *AuditStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Count returns the number of stored entries.
func (s *AuditStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Latest returns the most recently inserted entry, or nil when empty.
func (s *AuditStore) Latest() *entity.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

func (s *AuditStore) paginate(matched []*entity.AuditLogEntry, pagination adapter.Pagination) *adapter.AuditLogListResult {
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	p := pagination.Normalized()
	total := int64(len(matched))

	start := p.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return &adapter.AuditLogListResult{
		Entries:    matched[start:end],
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: adapter.TotalPages(total, p.Limit),
	}
}
