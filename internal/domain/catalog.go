package domain

// Category groups products on the menu.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// EntityRef is the compact {id, name} embedding used by several payloads.
type EntityRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// Product is a sellable menu item.
type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Price       float64    `json:"price"`
	IsActive    bool       `json:"isActive"`
	CategoryID  *int64     `json:"categoryId,omitempty"`
	Category    *EntityRef `json:"category,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
}

// ModifierGroup bundles selectable product options.
type ModifierGroup struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Required  bool             `json:"required"`
	MinSelect int              `json:"minSelect"`
	MaxSelect int              `json:"maxSelect"`
	Multi     bool             `json:"multi"`
	IsActive  bool             `json:"isActive"`
	CreatedAt string           `json:"createdAt,omitempty"`
	UpdatedAt string           `json:"updatedAt,omitempty"`
	Options   []ModifierOption `json:"options,omitempty"`
}

// ModifierOption is one choice inside a modifier group.
type ModifierOption struct {
	ID         int64   `json:"id"`
	GroupID    int64   `json:"groupId"`
	Name       string  `json:"name"`
	PriceDelta float64 `json:"priceDelta"`
	IsActive   bool    `json:"isActive"`
	CreatedAt  string  `json:"createdAt,omitempty"`
	UpdatedAt  string  `json:"updatedAt,omitempty"`
}

// ProductModifierGroup links a product to a modifier group.
type ProductModifierGroup struct {
	ProductID int64      `json:"productId"`
	GroupID   int64      `json:"groupId"`
	SortOrder int        `json:"sortOrder"`
	Group     *EntityRef `json:"group,omitempty"`
}
