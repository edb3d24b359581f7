package pubmed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/adetolu/medfact/internal/model"
)

const (
	maxAbstractRunes = 500
	maxNamedAuthors  = 3
)

// PubMed efetch XML shape, reduced to the fields we surface
type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title    string `xml:"ArticleTitle"`
			Abstract struct {
				Text []string `xml:"AbstractText"`
			} `xml:"Abstract"`
			AuthorList struct {
				Authors []author `xml:"Author"`
			} `xml:"AuthorList"`
			Journal struct {
				Title        string `xml:"Title"`
				JournalIssue struct {
					PubDate struct {
						Year        string `xml:"Year"`
						MedlineDate string `xml:"MedlineDate"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
}

type author struct {
	LastName string `xml:"LastName"`
	Initials string `xml:"Initials"`
}

// parseArticleSet converts an efetch XML document into Articles
func parseArticleSet(data []byte) ([]model.Article, error) {
	var set articleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("unmarshal article set: %w", err)
	}

	articles := make([]model.Article, 0, len(set.Articles))
	for _, a := range set.Articles {
		citation := a.MedlineCitation
		pmid := strings.TrimSpace(citation.PMID)
		if pmid == "" {
			continue
		}

		title := strings.TrimSpace(citation.Article.Title)
		if title == "" {
			title = "No title"
		}

		journal := strings.TrimSpace(citation.Article.Journal.Title)
		if journal == "" {
			journal = "Unknown Journal"
		}

		articles = append(articles, model.Article{
			Title:    title,
			Abstract: truncateAbstract(citation.Article.Abstract.Text),
			Authors:  formatAuthors(citation.Article.AuthorList.Authors),
			Journal:  journal,
			Year:     publicationYear(citation.Article.Journal.JournalIssue.PubDate.Year, citation.Article.Journal.JournalIssue.PubDate.MedlineDate),
			PMID:     pmid,
			URL:      fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
		})
	}

	return articles, nil
}

// truncateAbstract joins structured abstract sections and bounds the length
func truncateAbstract(sections []string) string {
	joined := strings.TrimSpace(strings.Join(sections, " "))
	runes := []rune(joined)
	if len(runes) > maxAbstractRunes {
		return string(runes[:maxAbstractRunes]) + "..."
	}
	return joined
}

// formatAuthors renders up to three "Lastname Initials" names, then "et al."
func formatAuthors(authors []author) string {
	var names []string
	for _, a := range authors {
		if a.LastName == "" {
			continue
		}
		if len(names) == maxNamedAuthors {
			break
		}
		name := a.LastName
		if a.Initials != "" {
			name += " " + a.Initials
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return "Unknown authors"
	}

	formatted := strings.Join(names, ", ")
	if len(authors) > maxNamedAuthors {
		formatted += ", et al."
	}
	return formatted
}

// publicationYear prefers the structured year, falling back to MedlineDate
func publicationYear(year, medlineDate string) string {
	if y := strings.TrimSpace(year); y != "" {
		return y
	}
	// MedlineDate looks like "2019 Nov-Dec"; take the leading year
	if fields := strings.Fields(medlineDate); len(fields) > 0 {
		return fields[0]
	}
	return "N/A"
}
