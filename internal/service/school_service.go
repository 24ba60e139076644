package service

import (
	"context"

	"Community_Portal/internal/model"
	"Community_Portal/internal/repository"
)

type SchoolFilter struct {
	Type     string
	District string
}

type SchoolService struct {
	*ResourceService[model.School, *model.School]
}

func NewSchoolService(store repository.Store[model.School], notifier *ChangeNotifier) *SchoolService {
	return &SchoolService{
		ResourceService: NewResourceService[model.School, *model.School](store, notifier,
			"schools", "School", "School name or email already exists"),
	}
}

// List 按类型、学区过滤，按名称排序
func (s *SchoolService) List(ctx context.Context, f SchoolFilter) ([]model.School, error) {
	q := repository.Query{Equals: map[string]any{}, Sort: repository.Sort("name")}
	if f.Type != "" {
		q.Equals["type"] = f.Type
	}
	if f.District != "" {
		q.Equals["district"] = f.District
	}
	return s.Find(ctx, q)
}
