package models

// PriceNode holds the raw price attributes of a TOTALPRICES or PRICE element.
// Empty strings mean the attribute was absent.
type PriceNode struct {
	Table           string
	Order           string
	Budget          string
	TotalComponents string
}

// AmbientNode is one AMBIENT element, with its categories in document order.
type AmbientNode struct {
	Description string
	Prices      PriceNode
	Categories  []CategoryNode
}

// CategoryNode is one CATEGORY element inside an ambient.
type CategoryNode struct {
	Description string
	Prices      PriceNode
	Items       []ItemNode
}

// ItemNode is one ITEM element inside a category.
type ItemNode struct {
	Description   string
	Reference     string
	Unit          string
	Quantity      string
	Width         string
	Height        string
	Depth         string
	TextDimension string
	Price         PriceNode
}

// Item attribute names, in the order they are flattened.
const (
	AttrDescription     = "DESCRIPTION"
	AttrReference       = "REFERENCE"
	AttrUnit            = "UNIT"
	AttrQuantity        = "QUANTITY"
	AttrWidth           = "WIDTH"
	AttrHeight          = "HEIGHT"
	AttrDepth           = "DEPTH"
	AttrTextDimension   = "TEXTDIMENSION"
	AttrTotalComponents = "TOTALCOMPONENTS"
	AttrTable           = "TABLE"
	AttrOrder           = "ORDER"
	AttrBudget          = "BUDGET"
)

// ItemAttributes lists the ITEM attributes that are flattened.
var ItemAttributes = []string{
	AttrDescription,
	AttrReference,
	AttrUnit,
	AttrQuantity,
	AttrWidth,
	AttrHeight,
	AttrDepth,
	AttrTextDimension,
}

// Attr returns the value of one of ItemAttributes.
func (n ItemNode) Attr(name string) string {
	switch name {
	case AttrDescription:
		return n.Description
	case AttrReference:
		return n.Reference
	case AttrUnit:
		return n.Unit
	case AttrQuantity:
		return n.Quantity
	case AttrWidth:
		return n.Width
	case AttrHeight:
		return n.Height
	case AttrDepth:
		return n.Depth
	case AttrTextDimension:
		return n.TextDimension
	}
	return ""
}

// SetAttr is the inverse of Attr; it also accepts TOTALCOMPONENTS and TABLE,
// which land on the item price. Unknown names are ignored.
func (n *ItemNode) SetAttr(name, value string) {
	switch name {
	case AttrDescription:
		n.Description = value
	case AttrReference:
		n.Reference = value
	case AttrUnit:
		n.Unit = value
	case AttrQuantity:
		n.Quantity = value
	case AttrWidth:
		n.Width = value
	case AttrHeight:
		n.Height = value
	case AttrDepth:
		n.Depth = value
	case AttrTextDimension:
		n.TextDimension = value
	case AttrTotalComponents:
		n.Price.TotalComponents = value
	case AttrTable:
		n.Price.Table = value
	}
}
