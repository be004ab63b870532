package roster

const defaultItemsPerPage = 10

// Pagination selects a page of spots or employees by offset and limit.
// The polling UI steps back a page when a requested page comes back
// empty, so Previous must never go below page zero.
type Pagination struct {
	PageNumber           int `json:"pageNumber"`
	NumberOfItemsPerPage int `json:"numberOfItemsPerPage"`
}

func NewPagination(pageNumber, numberOfItemsPerPage int) Pagination {
	if pageNumber < 0 {
		pageNumber = 0
	}
	if numberOfItemsPerPage <= 0 {
		numberOfItemsPerPage = defaultItemsPerPage
	}
	return Pagination{
		PageNumber:           pageNumber,
		NumberOfItemsPerPage: numberOfItemsPerPage,
	}
}

func (p Pagination) OnFirstPage() bool {
	return p.PageNumber == 0
}

func (p Pagination) Previous() Pagination {
	if p.OnFirstPage() {
		return p
	}
	return Pagination{
		PageNumber:           p.PageNumber - 1,
		NumberOfItemsPerPage: p.NumberOfItemsPerPage,
	}
}

func (p Pagination) Offset() int {
	return p.PageNumber * p.NumberOfItemsPerPage
}

func (p Pagination) Limit() int {
	return p.NumberOfItemsPerPage
}
