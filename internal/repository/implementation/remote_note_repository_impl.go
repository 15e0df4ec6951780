package implementation

import (
	"context"
	"errors"

	"swipenotes/internal/entity"
	"swipenotes/internal/mapper"
	"swipenotes/internal/model"
	"swipenotes/internal/repository/contract"
	"swipenotes/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RemoteNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewRemoteNoteRepository(db *gorm.DB) contract.RemoteNoteRepository {
	return &RemoteNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *RemoteNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RemoteNoteRepositoryImpl) Upsert(ctx context.Context, note *entity.Note, userId string) error {
	m := r.mapper.ToModel(note, userId)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *RemoteNoteRepositoryImpl) FindByIDAndUser(ctx context.Context, id, userId string) (*entity.Note, error) {
	var m model.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RemoteNoteRepositoryImpl) ListByUser(ctx context.Context, userId string) ([]*entity.Note, error) {
	return r.FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderByCreatedAtDesc{},
	)
}

func (r *RemoteNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RemoteNoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RemoteNoteRepositoryImpl) DeleteAllByUserIdUnscoped(ctx context.Context, userId string) error {
	return r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userId).Delete(&model.Note{}).Error
}
