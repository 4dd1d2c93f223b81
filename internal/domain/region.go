package domain

type Region struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	CurrencyCode CurrencyCode `json:"currency_code" db:"currency_code"`
	Countries    []string     `json:"countries" db:"-"`
}

type SalesChannel struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type StoreCurrency struct {
	CurrencyCode CurrencyCode `json:"currency_code" db:"currency_code"`
	IsDefault    bool         `json:"is_default" db:"is_default"`
}

type StockLocation struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	City        string `json:"city" db:"city"`
	CountryCode string `json:"country_code" db:"country_code"`
}

type InventoryLevel struct {
	VariantID       string `json:"variant_id" db:"variant_id"`
	LocationID      string `json:"location_id" db:"location_id"`
	StockedQuantity int    `json:"stocked_quantity" db:"stocked_quantity"`
}
