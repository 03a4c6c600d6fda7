package domain

// InvoiceType is the statutory GSTR-1 classification of an invoice.
type InvoiceType string

const (
	InvoiceTypeB2B  InvoiceType = "B2B"
	InvoiceTypeB2CS InvoiceType = "B2CS"
	InvoiceTypeB2CL InvoiceType = "B2CL"
)

// PaymentStatus is derived from amount paid against grand total.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentMode records how a payment was received.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeCard         PaymentMode = "card"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeCheque       PaymentMode = "cheque"
)

// ValidPaymentModes lists the accepted payment modes.
var ValidPaymentModes = map[PaymentMode]bool{
	PaymentModeCash:         true,
	PaymentModeUPI:          true,
	PaymentModeCard:         true,
	PaymentModeBankTransfer: true,
	PaymentModeCheque:       true,
}

// InvoiceTemplate names the presentation template stored with an invoice.
type InvoiceTemplate string

const (
	TemplateClassic InvoiceTemplate = "classic"
	TemplateModern  InvoiceTemplate = "modern"
	TemplateMinimal InvoiceTemplate = "minimal"
)

// ValidTemplates lists the templates a business may pick as default.
var ValidTemplates = map[InvoiceTemplate]bool{
	TemplateClassic: true,
	TemplateModern:  true,
	TemplateMinimal: true,
}
