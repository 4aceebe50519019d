// Package reports wires the shared engines into the concrete marketplace
// reports: per-extract column schemas, the turnover sheets and the
// profitability sheet. Handlers stay thin; everything here is testable
// without HTTP or a database.
package reports

import "SellerPulse/internal/tabular"

// Column names of the supported marketplace extracts. Upload forms carry the
// raw marketplace headers; the reader hands them over verbatim and these
// schemas declare what each report requires.
const (
	ColArticle   = "supplier_article"
	ColSize      = "size"
	ColWarehouse = "warehouse"
	ColQuantity  = "quantity"
	ColPrice     = "total_price"
	ColEvent     = "event_type"

	// ledger extracts
	ColItemName = "item_name"
	ColLocation = "location"
	ColNote     = "note"

	// sales/realization extract
	ColSoldUnits    = "sold_units"
	ColGrossSales   = "gross_sales"
	ColReturnsValue = "returns_value"
	ColRemittance   = "remittance"
	ColReturnsRemit = "returns_remittance"
	ColLogistics    = "logistics"
)

// OrdersSchema covers the per-order-line extract. One row is one order line;
// order counts come from row counts, not a quantity column.
var OrdersSchema = tabular.Schema{
	Required:    []string{ColArticle, ColSize},
	Numeric:     []string{ColPrice},
	Categorical: []string{ColArticle, ColSize, ColWarehouse, ColEvent},
	KeyColumn:   ColArticle,
}

// StockSchema covers the warehouse on-hand extract.
var StockSchema = tabular.Schema{
	Required:    []string{ColArticle, ColSize, ColQuantity},
	Numeric:     []string{ColQuantity},
	Categorical: []string{ColArticle, ColSize, ColWarehouse},
	KeyColumn:   ColArticle,
}

// MovementSchema covers receipt/sale/shipment movement extracts feeding the
// stock ledger. Descriptive columns are optional; quantity sign convention is
// decided by the upload field the file arrives under.
var MovementSchema = tabular.Schema{
	Required:    []string{ColArticle, ColSize, ColQuantity},
	Numeric:     []string{ColQuantity},
	Categorical: []string{ColArticle, ColSize},
	KeyColumn:   ColArticle,
}

// SalesSchema covers the weekly realization (financial) extract.
var SalesSchema = tabular.Schema{
	Required: []string{ColArticle, ColSoldUnits, ColGrossSales, ColRemittance},
	Numeric: []string{
		ColSoldUnits, ColGrossSales, ColReturnsValue,
		ColRemittance, ColReturnsRemit, ColLogistics,
	},
	Categorical: []string{ColArticle, ColSize},
	KeyColumn:   ColArticle,
}
