// Package sheet converts member cards to and from xlsx workbooks.
package sheet

import "errors"

// SheetName is the worksheet written by Write.
const SheetName = "会员卡数据"

const timeLayout = "2006-01-02 15:04:05"

// ErrEmpty is returned by Read when the workbook holds no data rows.
var ErrEmpty = errors.New("sheet: workbook has no data rows")

// ErrLegacyFormat is returned by Read for Excel 97-2003 (BIFF) workbooks, which only open as xlsx.
var ErrLegacyFormat = errors.New("sheet: legacy xls workbook")

type field int

const (
	fieldBatchNumber field = iota
	fieldMerchant
	fieldSupplier
	fieldProductName
	fieldFaceValue
	fieldPrice
	fieldImportPrice
	fieldCardNumber
	fieldCardPassword
	fieldOrderTime
	fieldStatus
)

type column struct {
	header string
	field  field
	width  float64
}

// columns is the workbook layout, in export order.
var columns = []column{
	{header: "批次号", field: fieldBatchNumber, width: 16},
	{header: "商户名称", field: fieldMerchant, width: 20},
	{header: "供应商名称", field: fieldSupplier, width: 20},
	{header: "商品名称", field: fieldProductName, width: 24},
	{header: "面值", field: fieldFaceValue, width: 10},
	{header: "售价", field: fieldPrice, width: 10},
	{header: "进价", field: fieldImportPrice, width: 10},
	{header: "卡号", field: fieldCardNumber, width: 24},
	{header: "卡密", field: fieldCardPassword, width: 20},
	{header: "订单时间", field: fieldOrderTime, width: 20},
	{header: "状态", field: fieldStatus, width: 10},
}

// Headers returns the column titles in export order.
func Headers() []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = c.header
	}
	return h
}
