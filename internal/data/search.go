package data

type SearchState struct {
	Query          string             `json:"query"`
	Results        []SearchResultItem `json:"results"`
	Page           int                `json:"page"`
	ResultsPerPage int                `json:"resultsPerPage"`
}

func (s SearchState) NumberOfPages() int {
	if s.ResultsPerPage <= 0 {
		return 0
	}
	return (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
}
