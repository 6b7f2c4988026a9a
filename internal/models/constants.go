package models

// Import defaults
const (
	DefaultUnit                = "UN"
	DefaultCategory            = "Categoria Principal"
	GenericItemPrefix          = "Móveis de "
	DimensionSeparator         = "x"
	DefaultQuantity    float64 = 1
)

// Margin kinds
const (
	EntityBudget   = "orcamento"
	MarginTax      = "imposto"
	MarginDiscount = "desconto"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
