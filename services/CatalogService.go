package services

import (
	"homeBakery/entities"
	"homeBakery/repository"
)

type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) CatalogService {
	return CatalogService{catalog: catalog}
}

func (cas *CatalogService) GetItems() []entities.CatalogItem {
	return cas.catalog.GetItems()
}

func (cas *CatalogService) GetDeliveryOptions() []entities.DeliveryOption {
	return cas.catalog.GetDeliveryOptions()
}

func (cas *CatalogService) GetReviews() []entities.Review {
	return cas.catalog.GetReviews()
}
