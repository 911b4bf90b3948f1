package service

import (
	"context"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AuditService records booking lifecycle actions. Failures are logged and
// swallowed; the audit trail never blocks a booking operation.
type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{})
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) {
	s.write(ctx, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.write(ctx, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) write(ctx context.Context, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		Action:   action,
		Metadata: metadata,
	}
	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
