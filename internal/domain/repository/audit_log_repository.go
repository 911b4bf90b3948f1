package repository

import (
	"context"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context) ([]entity.AuditLog, error)
}
