package contract

import (
	"context"

	"notestack-be/internal/entity"
	"notestack-be/internal/repository/specification"
)

type ShareReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.ShareReceipt) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareReceipt, error)
}
