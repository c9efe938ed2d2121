package domain

// Eatery is the full record as loaded from a blob.
type Eatery struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Categories  []string `json:"category"`
	OpenTime    string   `json:"open_time"`
	CloseTime   string   `json:"close_time"`
	Rating      float64  `json:"rating"`
	Photo       string   `json:"photo"`
	Address     string   `json:"address"`
	PhoneNumber string   `json:"phone_number"`
	Reviews     []string `json:"reviews"`
}

// EateryBasic is the listing/search shape: an Eatery without reviews.
// Keep it a separate type so new Eatery fields don't leak into listings.
type EateryBasic struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Categories  []string `json:"category"`
	OpenTime    string   `json:"open_time"`
	CloseTime   string   `json:"close_time"`
	Rating      float64  `json:"rating"`
	Photo       string   `json:"photo"`
	Address     string   `json:"address"`
	PhoneNumber string   `json:"phone_number"`
}

// Basic projects e onto EateryBasic.
func (e Eatery) Basic() EateryBasic {
	return EateryBasic{
		ID:          e.ID,
		Name:        e.Name,
		Categories:  cloneStrings(e.Categories),
		OpenTime:    e.OpenTime,
		CloseTime:   e.CloseTime,
		Rating:      e.Rating,
		Photo:       e.Photo,
		Address:     e.Address,
		PhoneNumber: e.PhoneNumber,
	}
}

func (e Eatery) clone() Eatery {
	e.Categories = cloneStrings(e.Categories)
	e.Reviews = cloneStrings(e.Reviews)
	return e
}

// cloneStrings keeps empty-but-present slices non-nil so they encode as [].
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
