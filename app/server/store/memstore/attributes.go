package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"
)

type attribute interface {
	models.Tag | models.Ingredient
}

type attributes[M attribute, PM interface {
	*M
	models.Attribute
}] struct {
	s    *Store
	rows map[uint]M
}

func owner(m any) uint {
	switch v := m.(type) {
	case *models.Tag:
		return v.AccountID
	case *models.Ingredient:
		return v.AccountID
	default:
		return 0
	}
}

func stamp(m any, id uint) {
	now := time.Now()
	switch v := m.(type) {
	case *models.Tag:
		v.ID, v.CreatedAt, v.UpdatedAt = id, now, now
	case *models.Ingredient:
		v.ID, v.CreatedAt, v.UpdatedAt = id, now, now
	}
}

func (a *attributes[M, PM]) List(_ context.Context, ownerID uint) ([]M, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	list := []M{}
	for _, m := range a.rows {
		if owner(&m) == ownerID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return PM(&list[i]).Label() > PM(&list[j]).Label()
	})
	return list, nil
}

func (a *attributes[M, PM]) Find(_ context.Context, ownerID uint, id uint) (*M, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	m, ok := a.rows[id]
	if !ok || owner(&m) != ownerID {
		return nil, notFound("attribute", id)
	}
	return &m, nil
}

func (a *attributes[M, PM]) Create(_ context.Context, m *M) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	stamp(m, a.s.id())
	a.rows[PM(m).Identity()] = *m
	return nil
}

func (a *attributes[M, PM]) Save(_ context.Context, m *M) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	id := PM(m).Identity()
	if _, ok := a.rows[id]; !ok {
		return notFound("attribute", id)
	}
	a.rows[id] = *m
	return nil
}

func (a *attributes[M, PM]) Delete(_ context.Context, ownerID uint, id uint) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	m, ok := a.rows[id]
	if !ok || owner(&m) != ownerID {
		return notFound("attribute", id)
	}
	delete(a.rows, id)
	a.s.unlinkLocked(id)
	return nil
}

func (a *attributes[M, PM]) Resolve(_ context.Context, ownerID uint, ids []uint) ([]M, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	list := []M{}
	seen := make(map[uint]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		m, ok := a.rows[id]
		if !ok || owner(&m) != ownerID {
			return nil, fmt.Errorf("resolve ids: %w", store.ErrUnknownIDs)
		}
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return PM(&list[i]).Identity() < PM(&list[j]).Identity()
	})
	return list, nil
}

func (a *attributes[M, PM]) pickLocked(ids []uint) []M {
	var list []M
	for _, id := range ids {
		if m, ok := a.rows[id]; ok {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return PM(&list[i]).Identity() < PM(&list[j]).Identity()
	})
	return list
}

func (a *attributes[M, PM]) deleteOwnedLocked(ownerID uint) {
	for id, m := range a.rows {
		if owner(&m) == ownerID {
			delete(a.rows, id)
		}
	}
}
