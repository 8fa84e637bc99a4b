package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// CategoryPathSeparator joins a parent and child name in a category path.
const CategoryPathSeparator = " > "

// Category groups transactions. Categories form a tree through ParentID;
// budgets never roll child spend up into a parent.
type Category struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string       `gorm:"not null" json:"name"`
	Type     CategoryType `gorm:"not null" json:"type"`
	ParentID *string      `gorm:"type:uuid" json:"parent_id,omitempty"`

	Parent *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}

// Path returns "Parent > Child" when the parent is loaded, else the name.
func (c *Category) Path() string {
	if c.Parent == nil {
		return c.Name
	}
	return c.Parent.Name + CategoryPathSeparator + c.Name
}
