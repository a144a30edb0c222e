package repository

import "agrisahayak/entities"

type MarketRepository interface {
	Create(p *entities.MarketPrice) error
	Recent(crop string, days int) ([]entities.MarketPrice, error)
}
