package implementation

import (
	"context"

	"notestack-be/internal/entity"
	"notestack-be/internal/mapper"
	"notestack-be/internal/model"
	"notestack-be/internal/repository/contract"
	"notestack-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ShareReceiptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareReceiptMapper
}

func NewShareReceiptRepository(db *gorm.DB) contract.ShareReceiptRepository {
	return &ShareReceiptRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareReceiptMapper(),
	}
}

func (r *ShareReceiptRepositoryImpl) Create(ctx context.Context, receipt *entity.ShareReceipt) error {
	m := r.mapper.ToModel(receipt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*receipt = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareReceiptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareReceipt, error) {
	var models []*model.ShareReceipt
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
