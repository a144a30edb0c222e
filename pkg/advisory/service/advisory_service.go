package service

import "agrisahayak/entities"

type AdvisoryService interface {
	UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error)
	Search(query string, k int) ([]entities.AdvisoryChunk, error)
	DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error)
	// Articles resolves a search down to de-duplicated source references,
	// the shape the cycle manager attaches to disease reports.
	Articles(query string, k int) ([]entities.ArticleRef, error)
}
