package render

import (
	"context"
	"fmt"

	"invoice-desk/internal/invoice"
	"invoice-desk/internal/logger"
	"invoice-desk/internal/words"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"
)

const dateLayout = "02 Jan 2006"

var (
	labelStyle = props.Text{Style: fontstyle.Bold, Size: 9}
	bodyStyle  = props.Text{Size: 9}
	rightBody  = props.Text{Size: 9, Align: align.Right}
	rightLabel = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
)

// PDFRenderer lays an invoice out as an A4 document. Item rows flow onto new
// pages as needed; the header repeats on every page.
type PDFRenderer struct {
	companyName string
}

func NewPDFRenderer(companyName string) *PDFRenderer {
	return &PDFRenderer{companyName: companyName}
}

func (p *PDFRenderer) Render(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "render"),
		zap.String("invoice_number", inv.Number),
	)

	amountWords, err := words.Rupees(inv.Total)
	if err != nil {
		return nil, fmt.Errorf("total in words: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(p.header(inv)...); err != nil {
		return nil, fmt.Errorf("register header: %w", err)
	}

	m.AddRows(billTo(inv)...)
	m.AddRows(itemRows(inv.Items)...)
	m.AddRows(summary(inv, amountWords)...)

	doc, err := m.Generate()
	if err != nil {
		log.Error("pdf generation failed", zap.Error(err))
		return nil, err
	}

	content := doc.GetBytes()
	log.Debug("invoice rendered", zap.Int("bytes", len(content)))
	return content, nil
}

func (p *PDFRenderer) header(inv *invoice.Invoice) []core.Row {
	return []core.Row{
		row.New(12).Add(
			text.NewCol(8, p.companyName, props.Text{Size: 16, Style: fontstyle.Bold}),
			text.NewCol(4, "INVOICE", props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right}),
		),
		row.New(6).Add(
			col.New(8),
			text.NewCol(4, "Invoice No: "+inv.Number, rightBody),
		),
		row.New(8).Add(
			col.New(8),
			text.NewCol(4, "Date: "+inv.InvoiceDate.Format(dateLayout), rightBody),
		),
	}
}

func billTo(inv *invoice.Invoice) []core.Row {
	b := inv.BillTo
	return []core.Row{
		row.New(28).Add(
			col.New(6).Add(
				text.New("Bill to", labelStyle),
				text.New(b.Name, props.Text{Size: 9, Top: 5}),
				text.New(b.Address, props.Text{Size: 9, Top: 9}),
				text.New(b.Email, props.Text{Size: 9, Top: 17}),
				text.New(b.Phone, props.Text{Size: 9, Top: 21}),
			),
			col.New(6),
		),
	}
}

func itemRows(items []invoice.Item) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(1, "#", labelStyle),
			text.NewCol(5, "Description", labelStyle),
			text.NewCol(2, "Qty", rightLabel),
			text.NewCol(2, "Rate", rightLabel),
			text.NewCol(2, "Amount", rightLabel),
		),
	}

	for i, item := range items {
		rows = append(rows, row.New(7).Add(
			text.NewCol(1, fmt.Sprint(i+1), bodyStyle),
			text.NewCol(5, item.Description, bodyStyle),
			text.NewCol(2, fmt.Sprint(item.Quantity), rightBody),
			text.NewCol(2, FormatINR(item.Rate), rightBody),
			text.NewCol(2, FormatINR(item.Amount), rightBody),
		))
	}

	return rows
}

func summary(inv *invoice.Invoice, amountWords string) []core.Row {
	rows := []core.Row{
		row.New(4),
		totalRow("Subtotal", FormatINR(inv.Subtotal), bodyStyle, rightBody),
	}

	if !inv.DiscountAmount.IsZero() {
		label := fmt.Sprintf("Discount (%s%%)", inv.DiscountPercent.String())
		rows = append(rows, totalRow(label, "- "+FormatINR(inv.DiscountAmount), bodyStyle, rightBody))
	}

	rows = append(rows,
		totalRow("Total", FormatINR(inv.Total), labelStyle, rightLabel),
		row.New(12).Add(
			text.NewCol(12, "Amount in words: "+amountWords, props.Text{Size: 9, Style: fontstyle.Italic, Top: 4}),
		),
	)

	if inv.Notes != "" {
		rows = append(rows,
			row.New(6).Add(text.NewCol(12, "Notes", labelStyle)),
			row.New(12).Add(text.NewCol(12, inv.Notes, bodyStyle)),
		)
	}

	return rows
}

func totalRow(label, value string, labelProps, valueProps props.Text) core.Row {
	return row.New(7).Add(
		col.New(6),
		text.NewCol(3, label, labelProps),
		text.NewCol(3, value, valueProps),
	)
}
