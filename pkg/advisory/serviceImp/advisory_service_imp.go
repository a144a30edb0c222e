package serviceImp

import (
	"sort"
	"strings"

	"agrisahayak/entities"
	"agrisahayak/pkg/advisory/repository"
	"agrisahayak/pkg/advisory/service"
)

type Svc struct{ r repository.AdvisoryRepository }

func New(r repository.AdvisoryRepository) service.AdvisoryService { return &Svc{r: r} }

func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error) {
	d := &entities.AdvisoryDoc{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, 1000)
	if len(chs) == 0 {
		return d, 0, nil
	}
	rows := make([]entities.AdvisoryChunk, len(chs))
	for i := range chs {
		rows[i] = entities.AdvisoryChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// Search scores chunks by keyword overlap with the query terms. Small
// corpus, so a full scan is fine.
func (s *Svc) Search(query string, k int) ([]entities.AdvisoryChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}
	terms := strings.Fields(strings.ToLower(q))

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		ch entities.AdvisoryChunk
		sc int
	}
	var list []scored
	for _, ch := range chunks {
		low := strings.ToLower(ch.Text)
		sc := 0
		for _, t := range terms {
			if strings.Contains(low, t) {
				sc++
			}
		}
		if sc > 0 {
			list = append(list, scored{ch: ch, sc: sc})
		}
	}
	if len(list) == 0 {
		return nil, nil
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].sc > list[j].sc })

	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.AdvisoryChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error) {
	return s.r.DocsByIDs(ids)
}

func (s *Svc) Articles(query string, k int) ([]entities.ArticleRef, error) {
	chunks, err := s.Search(query, k*3)
	if err != nil {
		return nil, err
	}
	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(chunks))
	for _, ch := range chunks {
		if _, ok := seen[ch.DocID]; !ok {
			seen[ch.DocID] = struct{}{}
			ids = append(ids, ch.DocID)
		}
	}
	meta, err := s.r.DocsByIDs(ids)
	if err != nil {
		return nil, err
	}
	refs := make([]entities.ArticleRef, 0, k)
	for _, id := range ids {
		if d, ok := meta[id]; ok {
			refs = append(refs, entities.ArticleRef{Title: d.Title, URL: d.SourceURL})
			if len(refs) == k {
				break
			}
		}
	}
	return refs, nil
}
