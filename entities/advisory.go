package entities

import "time"

type AdvisoryDoc struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Title     string    `json:"title"`
	SourceURL string    `json:"source_url"`
	Tags      string    `json:"tags"` // comma-separated crop/disease keywords
	CreatedAt time.Time `json:"created_at"`
}

type AdvisoryChunk struct {
	ChunkID   uint      `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint      `gorm:"index" json:"doc_id"`
	Ord       int       `json:"ord"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"-"`
}

type ArticleRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
