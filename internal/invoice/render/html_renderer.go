// Package render produces the shareable HTML invoice page.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/enotehq/enote/internal/invoice/domain"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="ru">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Накладная {{.Invoice.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px 16px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 720px;
      margin: 0 auto;
      padding: 40px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header { margin-bottom: 32px; }
    .header h1 { margin: 0 0 4px; font-size: 22px; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 4px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value { font-size: 14px; line-height: 1.5; }
    .meta-grid { display: flex; justify-content: space-between; margin-bottom: 32px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 8px 0;
      font-weight: 600;
    }
    td {
      padding: 12px 0;
      border-bottom: 1px solid #e3e8ee;
      font-size: 14px;
    }
    .td-right { text-align: right; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 240px;
      padding: 4px 0;
      font-size: 14px;
    }
    .total-label { color: #697386; }
    .total-final { font-weight: 700; font-size: 16px; border-top: 1px solid #e3e8ee; margin-top: 8px; padding-top: 8px; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <h1>Накладная</h1>
      <div class="value">{{.Invoice.InvoiceNumber}}</div>
    </div>

    <div class="meta-grid">
      <div>
        <div class="label">Покупатель</div>
        <div class="value"><strong>{{.Invoice.ClientName}}</strong></div>
      </div>
      <div>
        <div class="label">Продавец</div>
        <div class="value">{{.Invoice.SellerName}}</div>
      </div>
      <div>
        <div class="label">Дата</div>
        <div class="value">{{formatDate .Invoice.CreatedAt}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Наименование</th>
          <th class="td-right">Кол-во</th>
          <th class="td-right">Цена</th>
          <th class="td-right">Сумма</th>
        </tr>
      </thead>
      <tbody>
        {{range .Invoice.Items}}
        <tr>
          <td>{{.Name}}</td>
          <td class="td-right">{{formatQuantity .Qty}}</td>
          <td class="td-right">{{formatMoney .Price}}</td>
          <td class="td-right" style="font-weight: 500;">{{formatMoney .Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Оплачено</span>
        <span>{{formatMoney .Invoice.PaidAmount}}</span>
      </div>
      <div class="total-row">
        <span class="total-label">Долг</span>
        <span>{{formatMoney .Debt}}</span>
      </div>
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">Итого</span>
        <span>{{formatMoney .Invoice.Amount}}</span>
      </div>
    </div>
  </div>
</body>
</html>
`

// Renderer renders an invoice for the public page.
type Renderer interface {
	RenderHTML(invoice *domain.Invoice) (string, error)
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatQuantity": formatQuantity,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(invoice *domain.Invoice) (string, error) {
	data := struct {
		Invoice *domain.Invoice
		Debt    float64
	}{
		Invoice: invoice,
		Debt:    invoice.Debt(),
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}
