package models

// CategoryKind is one of the fixed service families a salon can offer.
type CategoryKind string

const (
	CategoryHair  CategoryKind = "hair"
	CategorySkin  CategoryKind = "skin"
	CategoryNails CategoryKind = "nails"
)

var CategoryKinds = []CategoryKind{CategoryHair, CategorySkin, CategoryNails}

// ServiceCategory is global reference data, shared by all salons.
type ServiceCategory struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Kind        CategoryKind `gorm:"type:varchar(20);uniqueIndex;not null" json:"kind"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
}

func DefaultCategories() []ServiceCategory {
	return []ServiceCategory{
		{Kind: CategoryHair, Description: "Cuts and hair treatments", Icon: "bi-scissors"},
		{Kind: CategorySkin, Description: "Make-up, facials and waxing", Icon: "bi-brush"},
		{Kind: CategoryNails, Description: "Manicure and pedicure", Icon: "bi-palette"},
	}
}
