package domain

import "time"

// ProductTransaction is one product sale listing. A record is sold iff
// DateOfSale is set; Sold is kept only for compatibility with the seed data.
type ProductTransaction struct {
	ID          int64      `gorm:"primaryKey;autoIncrement:false" json:"id,string" bson:"_id"`
	Title       string     `gorm:"size:512" json:"title" bson:"title"`
	Description string     `gorm:"type:text" json:"description" bson:"description"`
	Price       float64    `gorm:"index" json:"price" bson:"price"`
	Category    string     `gorm:"size:128;index" json:"category" bson:"category"`
	Image       string     `gorm:"size:1024" json:"image" bson:"image"`
	Sold        string     `gorm:"size:16" json:"sold" bson:"sold"`
	DateOfSale  *time.Time `json:"dateOfSale" bson:"dateOfSale"`
	SaleMonth   int        `gorm:"index;default:0" json:"-" bson:"saleMonth"` // 1-12, 0 when unsold
}

// TableName Specify table name
func (ProductTransaction) TableName() string {
	return "product_transaction"
}

// IsSold reports whether the record carries a sale date.
func (t *ProductTransaction) IsSold() bool {
	return t.DateOfSale != nil && !t.DateOfSale.IsZero()
}

// Normalize keeps SaleMonth consistent with DateOfSale. Stores call it before every write.
func (t *ProductTransaction) Normalize() {
	if !t.IsSold() {
		t.DateOfSale = nil
		t.SaleMonth = 0
		return
	}
	t.SaleMonth = int(t.DateOfSale.Month())
}
