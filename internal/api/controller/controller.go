package controller

import (
	"github.com/ougirez/silverboard/internal/service/dashboard"
	"github.com/ougirez/silverboard/internal/service/ingest"
)

type Controller struct {
	service *dashboard.Service
	ingest  *ingest.Service
}

func NewController(service *dashboard.Service, ingestService *ingest.Service) *Controller {
	return &Controller{service: service, ingest: ingestService}
}
