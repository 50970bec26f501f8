package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateEngine renders documents to HTML.
type TemplateEngine struct {
	bill      *template.Template
	priceList *template.Template
}

func NewTemplateEngine() (*TemplateEngine, error) {
	funcs := template.FuncMap{
		"money":    FormatMoney,
		"rupees":   formatRupees,
		"date":     func(t time.Time) string { return t.Format("02/01/2006") },
		"shopName": shopName,
		"settled":  func(balance decimal.Decimal) bool { return !balance.IsPositive() },
	}

	bill, err := template.New("bill.html").Funcs(funcs).ParseFS(templateFS, "templates/bill.html")
	if err != nil {
		return nil, fmt.Errorf("parsing bill template: %w", err)
	}

	priceList, err := template.New("pricelist.html").Funcs(funcs).ParseFS(templateFS, "templates/pricelist.html")
	if err != nil {
		return nil, fmt.Errorf("parsing price list template: %w", err)
	}

	return &TemplateEngine{bill: bill, priceList: priceList}, nil
}

func (e *TemplateEngine) Bill(doc Document) (string, error) {
	if doc.Shop == nil {
		defaults := settings.Defaults()
		doc.Shop = &defaults
	}

	var buf bytes.Buffer
	if err := e.bill.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering bill %s: %w", doc.Bill.BillNumber, err)
	}

	return buf.String(), nil
}

func (e *TemplateEngine) PriceList(list PriceList) (string, error) {
	var buf bytes.Buffer
	if err := e.priceList.Execute(&buf, list); err != nil {
		return "", fmt.Errorf("rendering price list: %w", err)
	}

	return buf.String(), nil
}

// FormatMoney prints an amount with two decimals and grouped thousands.
func FormatMoney(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return message.NewPrinter(language.English).Sprintf("%.2f", f)
}

func formatRupees(price int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", price)
}

func shopName(name string) string {
	if name == "" {
		return DefaultShopName
	}

	return name
}
