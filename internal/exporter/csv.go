package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/promob-import/internal/fileutils"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"

	"github.com/gocarina/gocsv"
)

// ItemRow is one line of the items CSV, carrying the names of its category
// and environment.
type ItemRow struct {
	Ambiente     string  `csv:"Ambiente"`
	Categoria    string  `csv:"Categoria"`
	Descricao    string  `csv:"Descricao"`
	Referencia   string  `csv:"Referencia"`
	Quantidade   float64 `csv:"Quantidade"`
	Unidade      string  `csv:"Unidade"`
	Largura      float64 `csv:"Largura"`
	Altura       float64 `csv:"Altura"`
	Profundidade float64 `csv:"Profundidade"`
	Dimensoes    string  `csv:"Dimensoes"`
	ValorTotal   string  `csv:"ValorTotal"`
}

// ItemRows flattens the items of doc. Parents that cannot be resolved leave
// the name empty.
func ItemRows(doc *models.BudgetDocument) []ItemRow {
	rows := make([]ItemRow, 0, len(doc.Itens))
	for _, it := range doc.Itens {
		row := ItemRow{
			Descricao:    it.Descricao,
			Referencia:   it.Referencia,
			Quantidade:   it.Quantidade,
			Unidade:      it.Unidade,
			Largura:      it.Largura,
			Altura:       it.Altura,
			Profundidade: it.Profundidade,
			Dimensoes:    it.Dimensoes,
			ValorTotal:   it.ValorTotal.StringFixed(2),
		}
		if it.CategoriaIndex >= 0 && it.CategoriaIndex < len(doc.Categorias) {
			cat := doc.Categorias[it.CategoriaIndex]
			row.Categoria = cat.Descricao
			if cat.AmbienteIndex >= 0 && cat.AmbienteIndex < len(doc.Ambientes) {
				row.Ambiente = doc.Ambientes[cat.AmbienteIndex].Descricao
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteItemsCSV writes the items of doc to w using the configured delimiter.
func (e *Exporter) WriteItemsCSV(w io.Writer, doc *models.BudgetDocument) error {
	if doc == nil {
		return fmt.Errorf("cannot write nil document to CSV")
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter

	if err := gocsv.MarshalCSV(ItemRows(doc), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteItemsCSVFile writes the items CSV to path, creating its directory.
func (e *Exporter) WriteItemsCSVFile(path string, doc *models.BudgetDocument) error {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := e.WriteItemsCSV(file, doc); err != nil {
		return err
	}
	e.logger.Info("Wrote items CSV",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(doc.Itens)),
		logging.F(logging.FieldDelimiter, string(e.delimiter)))
	return nil
}
