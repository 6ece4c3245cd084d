// internal/domain/models.go
package domain

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	TelegramID   int64  `json:"-"`
}

// Transaction is a single income or expense row. Amount is signed. Date is
// an ISO-8601 string; date and owner are immutable after creation.
type Transaction struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	UserID      int64   `json:"-"`
}

// CategorySummary is derived on demand, never stored.
type CategorySummary struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Categories is the fixed set accepted for transactions.
var Categories = []string{"Food", "Transport", "Entertainment", "Other"}

func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
