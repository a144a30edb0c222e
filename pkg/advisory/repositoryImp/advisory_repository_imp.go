package repositoryImp

import (
	"agrisahayak/entities"
	"agrisahayak/pkg/advisory/repository"
	"gorm.io/gorm"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdvisoryRepository { return &repo{db} }

func (r *repo) CreateDoc(d *entities.AdvisoryDoc) error { return r.db.Create(d).Error }

func (r *repo) BulkInsertChunks(cs []entities.AdvisoryChunk) error { return r.db.Create(&cs).Error }

func (r *repo) AllChunks() ([]entities.AdvisoryChunk, error) {
	var cs []entities.AdvisoryChunk
	return cs, r.db.Find(&cs).Error
}

func (r *repo) ListDocs() ([]entities.AdvisoryDoc, error) {
	var ds []entities.AdvisoryDoc
	return ds, r.db.Order("doc_id DESC").Find(&ds).Error
}

func (r *repo) DocsByIDs(ids []uint) (map[uint]entities.AdvisoryDoc, error) {
	if len(ids) == 0 {
		return map[uint]entities.AdvisoryDoc{}, nil
	}
	var ds []entities.AdvisoryDoc
	if err := r.db.Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.AdvisoryDoc, len(ds))
	for i := range ds {
		m[ds[i].DocID] = ds[i]
	}
	return m, nil
}
