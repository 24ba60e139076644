package service

import (
	"context"

	"Community_Portal/internal/model"
	"Community_Portal/internal/repository"
)

type HOAService struct {
	*ResourceService[model.HOAMember, *model.HOAMember]
}

func NewHOAService(store repository.Store[model.HOAMember], notifier *ChangeNotifier) *HOAService {
	return &HOAService{
		ResourceService: NewResourceService[model.HOAMember, *model.HOAMember](store, notifier,
			"hoa", "HOA member", "HOA member already exists"),
	}
}

func (s *HOAService) List(ctx context.Context) ([]model.HOAMember, error) {
	return s.Find(ctx, repository.Query{Sort: repository.Sort("createdAt")})
}

type LinkService struct {
	*ResourceService[model.Link, *model.Link]
}

func NewLinkService(store repository.Store[model.Link], notifier *ChangeNotifier) *LinkService {
	return &LinkService{
		ResourceService: NewResourceService[model.Link, *model.Link](store, notifier,
			"links", "Link", "This link (id or title) already exists"),
	}
}

func (s *LinkService) List(ctx context.Context) ([]model.Link, error) {
	return s.Find(ctx, repository.Query{Sort: repository.Sort("createdAt")})
}

type IssueService struct {
	*ResourceService[model.Issue, *model.Issue]
}

func NewIssueService(store repository.Store[model.Issue], notifier *ChangeNotifier) *IssueService {
	return &IssueService{
		ResourceService: NewResourceService[model.Issue, *model.Issue](store, notifier,
			"issues", "Issue", "Issue with this Title already exists"),
	}
}

// List 最新提交的问题在前
func (s *IssueService) List(ctx context.Context) ([]model.Issue, error) {
	return s.Find(ctx, repository.Query{Sort: repository.Sort("-createdAt")})
}
