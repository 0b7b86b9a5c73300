package model

type Cashier struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c Cashier) FullName() string {
	return c.FirstName + " " + c.LastName
}
