package domain

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	ProductTypeBoutique = "boutique"
	ProductTypeMobile   = "mobile"
)

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(err, "marshal string list")
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported string list column type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, l), "scan string list")
}

// Product is a storefront catalog item. Prices are pointers so that a missing
// price is distinguishable from an explicit zero.
type Product struct {
	ID                 int64      `gorm:"primaryKey" json:"id,string"`
	ProductName        string     `gorm:"uniqueIndex;size:100" json:"productName"`
	ShortDescription   string     `gorm:"size:200" json:"shortDescription"`
	LongDescription    string     `gorm:"type:text" json:"longDescription"`
	OriginalPrice      *float64   `json:"originalPrice,omitempty"`
	SalesPrice         *float64   `json:"salesPrice,omitempty"`
	StockQuantity      int        `gorm:"default:0" json:"stockQuantity"`
	Category           string     `gorm:"size:100" json:"category"`
	CoverImage         string     `gorm:"size:1024" json:"coverImage"`
	AdditionalImages   StringList `gorm:"type:text" json:"additionalImages"`
	Colors             StringList `gorm:"type:text" json:"colors"`
	IsNew              bool       `gorm:"default:false" json:"isNew"`
	IsBestseller       bool       `gorm:"default:false" json:"isBestseller"`
	ProductType        string     `gorm:"size:32;index" json:"productType"` // boutique | mobile
	IsActive           bool       `json:"isActive"`
	DiscountPercentage int        `gorm:"-" json:"discountPercentage"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}

// Discount returns the derived discount percentage. It is never stored: zero
// unless both prices are present and the original exceeds the sale price.
func (p *Product) Discount() int {
	if p.OriginalPrice == nil || p.SalesPrice == nil {
		return 0
	}
	original, sale := *p.OriginalPrice, *p.SalesPrice
	if original <= 0 || original <= sale {
		return 0
	}
	return int(math.Round((original - sale) / original * 100))
}

// AfterFind populates the derived discount on every read.
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.DiscountPercentage = p.Discount()
	return nil
}
