package service

import (
	"context"

	"Community_Portal/internal/model"
	"Community_Portal/internal/repository"
)

type FAQFilter struct {
	Category string
	Search   string
}

type FAQService struct {
	*ResourceService[model.FAQ, *model.FAQ]
}

func NewFAQService(store repository.Store[model.FAQ], notifier *ChangeNotifier) *FAQService {
	return &FAQService{
		ResourceService: NewResourceService[model.FAQ, *model.FAQ](store, notifier,
			"faqs", "FAQ", "This question already exists"),
	}
}

func (s *FAQService) List(ctx context.Context, f FAQFilter) ([]model.FAQ, error) {
	q := repository.Query{
		Equals:       map[string]any{},
		Search:       f.Search,
		SearchFields: []string{"question", "answer"},
		Sort:         repository.Sort("-createdAt"),
	}
	if f.Category != "" {
		q.Equals["category"] = f.Category
	}
	return s.Find(ctx, q)
}
