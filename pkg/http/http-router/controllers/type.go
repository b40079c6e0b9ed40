package controllers

import (
	"context"

	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"
	"github.com/lintang-b-s/transit-access-link/pkg/http/usecases"
)

type AccessLinkService interface {
	Generate(ctx context.Context, params usecases.GenerateParams) ([]datastructure.AccessLink, error)
	GetLink(id string) (datastructure.AccessLink, error)
	ListLinks() ([]datastructure.AccessLink, error)
}
