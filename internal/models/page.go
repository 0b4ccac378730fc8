package models

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page - offset-пагинация: страница N пропускает (N-1)*Limit записей.
type Page struct {
	Limit int
	Page  int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
