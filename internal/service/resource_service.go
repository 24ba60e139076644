package service

import (
	"context"
	"errors"
	"io"
	"time"

	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository"
)

// ResourceService 七类资源共用的增删改查流程
type ResourceService[T any, P interface {
	*T
	model.Document
}] struct {
	store    repository.Store[T]
	notifier *ChangeNotifier
	resource string
	label    string
	conflict string
	now      func() time.Time
}

func NewResourceService[T any, P interface {
	*T
	model.Document
}](store repository.Store[T], notifier *ChangeNotifier, resource, label, conflict string) *ResourceService[T, P] {
	return &ResourceService[T, P]{
		store:    store,
		notifier: notifier,
		resource: resource,
		label:    label,
		conflict: conflict,
		now:      time.Now,
	}
}

func (s *ResourceService[T, P]) Label() string {
	return s.label
}

// Create 解码、规范化、校验后写入，id 与时间戳由服务端生成
func (s *ResourceService[T, P]) Create(ctx context.Context, body io.Reader) (*T, error) {
	doc := new(T)
	if err := pkg.DecodeJSON(body, doc); err != nil {
		return nil, err
	}
	p := P(doc)
	p.SetID(model.NewID())
	p.SetCreatedAt(time.Time{})
	p.Normalize()
	if err := pkg.Validate(p); err != nil {
		return nil, err
	}
	p.Stamp(s.now())

	if err := s.store.Create(ctx, doc); err != nil {
		return nil, s.translate(err)
	}
	s.notifier.Notify(ctx, s.resource, ActionCreated, p.GetID(), doc)
	return doc, nil
}

func (s *ResourceService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return doc, nil
}

// Update 部分更新：把请求体合并到已存储的文档上，再整体校验并替换
func (s *ResourceService[T, P]) Update(ctx context.Context, id string, body io.Reader) (*T, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	p := P(doc)
	createdAt := p.GetCreatedAt()

	if err := pkg.DecodeJSON(body, doc); err != nil {
		return nil, err
	}
	p.SetID(id)
	p.SetCreatedAt(createdAt)
	p.Normalize()
	if err := pkg.Validate(p); err != nil {
		return nil, err
	}
	p.Stamp(s.now())

	if err := s.store.Replace(ctx, id, doc); err != nil {
		return nil, s.translate(err)
	}
	s.notifier.Notify(ctx, s.resource, ActionUpdated, id, doc)
	return doc, nil
}

func (s *ResourceService[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	s.notifier.Notify(ctx, s.resource, ActionDeleted, id, nil)
	return nil
}

func (s *ResourceService[T, P]) Find(ctx context.Context, q repository.Query) ([]T, error) {
	return s.store.Find(ctx, q)
}

func (s *ResourceService[T, P]) Count(ctx context.Context, q repository.Query) (int64, error) {
	return s.store.Count(ctx, q)
}

func (s *ResourceService[T, P]) translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return pkg.NotFound(s.label + " not found")
	case errors.Is(err, repository.ErrDuplicateKey):
		return pkg.Conflict(s.conflict)
	default:
		return err
	}
}
