package repository

import "agrisahayak/entities"

type AdvisoryRepository interface {
	CreateDoc(d *entities.AdvisoryDoc) error
	BulkInsertChunks(cs []entities.AdvisoryChunk) error
	AllChunks() ([]entities.AdvisoryChunk, error)
	ListDocs() ([]entities.AdvisoryDoc, error)
	DocsByIDs(ids []uint) (map[uint]entities.AdvisoryDoc, error)
}
