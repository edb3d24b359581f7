package model

import "fmt"

// Article represents a PubMed abstract returned by a literature search.
// Articles are transient, produced per query, never persisted.
type Article struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"` // Truncated to 500 runes on fetch
	Authors  string `json:"authors"`  // "Lastname AB, ..." with "et al." past three
	Journal  string `json:"journal"`
	Year     string `json:"year"`
	PMID     string `json:"pmid"`
	URL      string `json:"url"` // https://pubmed.ncbi.nlm.nih.gov/<pmid>/
}

// Citation renders the article as a one-line source citation
func (a Article) Citation() string {
	return fmt.Sprintf("%s. %s (%s). PMID: %s. %s", a.Authors, a.Title, a.Year, a.PMID, a.URL)
}
