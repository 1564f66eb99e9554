package domain

type Parking struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
