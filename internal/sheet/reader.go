package sheet

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// oleMagic opens every OLE2 compound file, the container of .xls workbooks.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

var orderTimeLayouts = []string{
	timeLayout,
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
}

// Reader parses the first worksheet of a workbook into card inputs.
type Reader struct {
	// Location is the zone of order times written without an offset. nil means UTC.
	Location *time.Location
	// Now supplies the order time for rows that have none. nil means time.Now.
	Now func() time.Time
}

// Read maps columns by their header title and ignores unknown columns. Rows whose mapped cells are all
// blank are skipped. Unparsable amounts become zero, a missing status becomes the default status.
func (r Reader) Read(src io.Reader) ([]domain.CardInput, error) {
	buffered := bufio.NewReader(src)
	magic, _ := buffered.Peek(len(oleMagic))

	f, err := excelize.OpenReader(buffered)
	if err != nil {
		// xlsx is a zip package; an OLE2 container that excelize cannot decrypt is a BIFF workbook.
		if bytes.Equal(magic, oleMagic) {
			return nil, ErrLegacyFormat
		}
		return nil, errors.Wrap(err, "sheet: opening workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "sheet: reading rows of `%s`", sheets[0])
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	index := headerIndex(rows[0])
	cards := make([]domain.CardInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		values := make(map[field]string, len(index))
		blank := true
		for pos, fl := range index {
			if pos < len(row) {
				v := strings.TrimSpace(row[pos])
				values[fl] = v
				if v != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}
		cards = append(cards, r.card(values))
	}

	if len(cards) == 0 {
		return nil, ErrEmpty
	}
	return cards, nil
}

func (r Reader) card(values map[field]string) domain.CardInput {
	card := domain.CardInput{
		BatchNumber:  values[fieldBatchNumber],
		Merchant:     values[fieldMerchant],
		Supplier:     values[fieldSupplier],
		ProductName:  values[fieldProductName],
		FaceValue:    parseAmount(values[fieldFaceValue]),
		Price:        parseAmount(values[fieldPrice]),
		ImportPrice:  parseAmount(values[fieldImportPrice]),
		CardNumber:   values[fieldCardNumber],
		CardPassword: values[fieldCardPassword],
		Status:       domain.CardStatusType(values[fieldStatus]),
	}
	if card.Status == "" {
		card.Status = domain.DefaultCardStatus
	}

	orderTime, ok := r.parseTime(values[fieldOrderTime])
	if !ok {
		orderTime = r.now()
	}
	card.OrderTime = orderTime
	return card
}

func (r Reader) parseTime(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	loc := r.location()
	for _, layout := range orderTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, true
		}
	}

	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	// serial dates carry a wall clock without a zone.
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
}

func (r Reader) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r Reader) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func headerIndex(header []string) map[int]field {
	byTitle := make(map[string]field, len(columns))
	for _, c := range columns {
		byTitle[c.header] = c.field
	}

	index := make(map[int]field, len(columns))
	for pos, title := range header {
		if f, ok := byTitle[strings.TrimSpace(title)]; ok {
			index[pos] = f
		}
	}
	return index
}

func parseAmount(v string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}
