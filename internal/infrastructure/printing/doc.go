// Package printing renders order quotations to PDF. An html/template
// produces an A4 document and a headless Chrome instance driven by
// chromedp prints it.
//
//	renderer, _ := printing.NewChromedpRenderer(cfg.Printing, logger)
//	defer renderer.Close()
//	printer := printing.NewQuotationPrinter(renderer)
//	pdf, err := printer.Print(ctx, data)
package printing
