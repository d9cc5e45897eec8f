package sheet

import (
	"fmt"
	"io"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Write renders cards into a single worksheet named SheetName with a bold header row. Amounts are written as
// numbers, order times as text in loc (UTC when nil).
func Write(w io.Writer, cards []domain.MemberCard, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "sheet: naming worksheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "sheet: creating header style")
	}

	for i, c := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err = f.SetCellValue(SheetName, cell, c.header); err != nil {
			return errors.Wrapf(err, "sheet: writing header %s", cell)
		}
		if err = f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return errors.Wrapf(err, "sheet: styling header %s", cell)
		}
		if err = f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return errors.Wrapf(err, "sheet: sizing column %s", col)
		}
	}

	for i, card := range cards {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = cellValue(card, c.field, loc)
		}
		if err = f.SetSheetRow(SheetName, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return errors.Wrapf(err, "sheet: writing row %d", i+2)
		}
	}

	if _, err = f.WriteTo(w); err != nil {
		return errors.Wrap(err, "sheet: writing workbook")
	}
	return nil
}

func cellValue(card domain.MemberCard, f field, loc *time.Location) any {
	switch f {
	case fieldBatchNumber:
		return card.BatchNumber
	case fieldMerchant:
		return card.Merchant
	case fieldSupplier:
		return card.Supplier
	case fieldProductName:
		return card.ProductName
	case fieldFaceValue:
		return card.FaceValue.InexactFloat64()
	case fieldPrice:
		return card.Price.InexactFloat64()
	case fieldImportPrice:
		return card.ImportPrice.InexactFloat64()
	case fieldCardNumber:
		return card.CardNumber
	case fieldCardPassword:
		return card.CardPassword
	case fieldOrderTime:
		return card.OrderTime.In(loc).Format(timeLayout)
	case fieldStatus:
		return string(card.Status)
	default:
		return nil
	}
}
