package service

import (
	"context"

	"Community_Portal/internal/model"
	"Community_Portal/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultNewsPage  = 1
	DefaultNewsLimit = 10
	MaxNewsLimit     = 100
)

type NewsFilter struct {
	Type   string
	Search string
	Page   int
	Limit  int
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

type NewsPage struct {
	Items      []model.News `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

type NewsService struct {
	*ResourceService[model.News, *model.News]
}

func NewNewsService(store repository.Store[model.News], notifier *ChangeNotifier) *NewsService {
	return &NewsService{
		ResourceService: NewResourceService[model.News, *model.News](store, notifier,
			"news", "News item", "News title already exists"),
	}
}

// List 分页查询，计数与取数并发执行
func (s *NewsService) List(ctx context.Context, f NewsFilter) (*NewsPage, error) {
	if f.Page < 1 {
		f.Page = DefaultNewsPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultNewsLimit
	}
	if f.Limit > MaxNewsLimit {
		f.Limit = MaxNewsLimit
	}

	q := repository.Query{
		Equals:       map[string]any{},
		Search:       f.Search,
		SearchFields: []string{"title", "description"},
		Sort:         repository.Sort("-date"),
		Skip:         (f.Page - 1) * f.Limit,
		Limit:        f.Limit,
	}
	if f.Type != "" {
		q.Equals["type"] = f.Type
	}

	var (
		items []model.News
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return &NewsPage{
		Items: items,
		Pagination: Pagination{
			CurrentPage:  f.Page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: f.Limit,
			HasNext:      f.Page < totalPages,
			HasPrev:      f.Page > 1,
		},
	}, nil
}
