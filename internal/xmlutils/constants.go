// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// Traditional contains the XPath expressions used for generic
// ambiente/categoria/item documents. Field paths are relative to the
// element selected by the matching list path.
type Traditional struct {
	Ambiente struct {
		List           string
		Name           string
		TotalPedido    string
		TotalOrcamento string
	}

	Categoria struct {
		List           string
		Name           string
		TotalPedido    string
		TotalOrcamento string
	}

	Item struct {
		List        string
		Description string
		Reference   string
		Quantity    string
		Unit        string
		Width       string
		Height      string
		Depth       string
		Value       string
	}

	// SubItem lists every element path whose matches become sub-items.
	SubItem struct {
		Lists []string
	}

	Margin struct {
		Tax         string
		Discount    string
		Description string
		Value       string
	}
}

// DefaultTraditionalXPaths returns a Traditional struct with the default XPath expressions
func DefaultTraditionalXPaths() Traditional {
	x := Traditional{}

	x.Ambiente.List = "//ambiente"
	x.Ambiente.Name = "nome"
	x.Ambiente.TotalPedido = "totalPedido"
	x.Ambiente.TotalOrcamento = "totalOrcamento"

	x.Categoria.List = "//categoria"
	x.Categoria.Name = "nome"
	x.Categoria.TotalPedido = "totalPedido"
	x.Categoria.TotalOrcamento = "totalOrcamento"

	x.Item.List = "//item"
	x.Item.Description = "descricao"
	x.Item.Reference = "referencia"
	x.Item.Quantity = "quantidade"
	x.Item.Unit = "unidade"
	x.Item.Width = "largura"
	x.Item.Height = "altura"
	x.Item.Depth = "profundidade"
	x.Item.Value = "valor"

	x.SubItem.Lists = []string{"//componente", "//subitem"}

	x.Margin.Tax = "//imposto"
	x.Margin.Discount = "//desconto"
	x.Margin.Description = "descricao"
	x.Margin.Value = "valor"

	return x
}
