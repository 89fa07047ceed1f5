package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormAttributes[M any] struct {
	db *gorm.DB
}

func (r *gormAttributes[M]) List(ctx context.Context, ownerID uint) ([]M, error) {
	list := []M{}
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", ownerID).
		Order("name DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list: %w", translate(err))
	}

	return list, nil
}

func (r *gormAttributes[M]) Find(ctx context.Context, ownerID uint, id uint) (*M, error) {
	var m M
	if err := r.db.WithContext(ctx).
		First(&m, "id = ? AND account_id = ?", id, ownerID).Error; err != nil {
		return nil, fmt.Errorf("find %d: %w", id, translate(err))
	}

	return &m, nil
}

func (r *gormAttributes[M]) Create(ctx context.Context, m *M) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("create: %w", translate(err))
	}

	return nil
}

func (r *gormAttributes[M]) Save(ctx context.Context, m *M) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return fmt.Errorf("save: %w", translate(err))
	}

	return nil
}

func (r *gormAttributes[M]) Delete(ctx context.Context, ownerID uint, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(M), "id = ? AND account_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("delete %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *gormAttributes[M]) Resolve(ctx context.Context, ownerID uint, ids []uint) ([]M, error) {
	return resolveIDs[M](r.db.WithContext(ctx), ownerID, ids)
}

// resolveIDs 按 ID 批量读取 ownerID 的记录，只要有一个不存在或者属于别人就失败
func resolveIDs[M any](db *gorm.DB, ownerID uint, ids []uint) ([]M, error) {
	list := []M{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return list, nil
	}

	if err := db.
		Where("account_id = ? AND id IN ?", ownerID, ids).
		Order("id ASC").
		Find(&list).Error; err != nil {
		// 查询失败
		return nil, fmt.Errorf("resolve ids: %w", translate(err))
	} else if len(list) != len(ids) {
		// 数量对不上：有不存在的，或者是别人的
		return nil, fmt.Errorf("resolve ids: %w", ErrUnknownIDs)
	}

	return list, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	var res []uint
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
