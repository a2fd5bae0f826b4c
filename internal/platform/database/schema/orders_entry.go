package schema

// RefOrderEntryTable represents the 'orders.entry' table
type RefOrderEntryTable struct {
	Table      string
	ID         string
	UserID     string
	Items      string
	TotalCents string
	CreatedAt  string
}

// RefOrderEntry is the schema definition for orders.entry
var RefOrderEntry = RefOrderEntryTable{
	Table:      "orders.entry",
	ID:         "id",
	UserID:     "userid",
	Items:      "items",
	TotalCents: "totalcents",
	CreatedAt:  "createdat",
}

func (t RefOrderEntryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Items, t.TotalCents, t.CreatedAt}
}
