package constants

// FieldType labels the role a recognized text line plays on a receipt.
type FieldType string

// Stable values (stored as-is in audit rows and exported JSON).
const (
	FieldMerchantName   FieldType = "MERCHANT_NAME"
	FieldDate           FieldType = "DATE"
	FieldTotalAmount    FieldType = "TOTAL_AMOUNT"
	FieldTaxAmount      FieldType = "TAX_AMOUNT"
	FieldSubtotalAmount FieldType = "SUBTOTAL_AMOUNT"
	FieldPaymentMethod  FieldType = "PAYMENT_METHOD"
	FieldReceiptNumber  FieldType = "RECEIPT_NUMBER"
	FieldItem           FieldType = "ITEM"
	FieldUnknown        FieldType = "UNKNOWN"
)

var allFieldTypes = []FieldType{
	FieldMerchantName,
	FieldDate,
	FieldTotalAmount,
	FieldTaxAmount,
	FieldSubtotalAmount,
	FieldPaymentMethod,
	FieldReceiptNumber,
	FieldItem,
	FieldUnknown,
}

func FieldTypesAsStringSlice() []string {
	result := make([]string, len(allFieldTypes))
	for i, ft := range allFieldTypes {
		result[i] = string(ft)
	}
	return result
}
