package searchbar

import "companybar/internal/domain"

// SelectedMsg is emitted once per confirmed selection
type SelectedMsg struct {
	Company domain.Company
}

// logoColorMsg carries a resolved badge colour
type logoColorMsg struct {
	id    int
	key   domain.CompanyID
	color string
	err   error
}

// helpPagerMsg contains the result of the help pager
type helpPagerMsg struct {
	err error
}
