/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/base64"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/skip2/go-qrcode"

	"github.com/humaidq/labwise/wizard"
)

const qrCodeSize = 160

// PriorityTab is one filter tab above the supplement list.
type PriorityTab struct {
	Priority wizard.Priority
	Label    string
	Count    int
	Active   bool
}

// SupplementView is one catalog entry as rendered on the page.
type SupplementView struct {
	wizard.Supplement
	PriorityLabel string
	PriceLabel    string
	BuyPath       string
	QRCode        htmltemplate.URL
}

func formatYen(amount int) string {
	return "¥" + humanize.Comma(int64(amount))
}

func purchaseQRCode(target string) (htmltemplate.URL, error) {
	png, err := qrcode.Encode(target, qrcode.Medium, qrCodeSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	return htmltemplate.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil //nolint:gosec // PNG encoded above.
}

func priorityTabs(catalog *wizard.Catalog, active wizard.Priority) []PriorityTab {
	counts := catalog.Counts()
	tabs := make([]PriorityTab, 0, len(wizard.Priorities)+1)

	for _, p := range append([]wizard.Priority{wizard.PriorityAll}, wizard.Priorities...) {
		tabs = append(tabs, PriorityTab{
			Priority: p,
			Label:    p.Label(),
			Count:    counts.Of(p),
			Active:   p == active,
		})
	}

	return tabs
}

// Supplements renders the catalog filtered by the priority query parameter.
func Supplements(c flamego.Context, s session.Session, t template.Template, data template.Data, ctl *wizard.Controller, catalog *wizard.Catalog) {
	priority, err := wizard.ParsePriority(c.Query("priority"))
	if err != nil {
		logger.Warn("Unknown supplement priority", "priority", c.Query("priority"))
		SetErrorFlash(s, "Unknown priority filter")
		c.Redirect(StepPath(wizard.StepSupplements), http.StatusSeeOther)

		return
	}

	setStepData(data, ctl.Snapshot())

	entries := catalog.Filter(priority)
	views := make([]SupplementView, 0, len(entries))

	for _, entry := range entries {
		view := SupplementView{
			Supplement:    entry,
			PriorityLabel: entry.Priority.Label(),
			PriceLabel:    formatYen(entry.Price),
			BuyPath:       "/supplements/" + entry.ID + "/buy",
		}

		if view.QRCode, err = purchaseQRCode(entry.PurchaseURL); err != nil {
			logger.Error("Error generating QR code", "supplement_id", entry.ID, "error", err)
		}

		views = append(views, view)
	}

	data["Tabs"] = priorityTabs(catalog, priority)
	data["Priority"] = priority
	data["Supplements"] = views
	data["MonthlyCost"] = formatYen(catalog.MonthlyCost())

	t.HTML(http.StatusOK, "supplements")
}

// BuySupplement logs the click and sends the browser to the shop.
func BuySupplement(c flamego.Context, s session.Session, ctl *wizard.Controller, catalog *wizard.Catalog) {
	entry, err := catalog.ByID(c.Param("id"))
	if err != nil {
		if !errors.Is(err, wizard.ErrSupplementNotFound) {
			logger.Error("Error looking up supplement", "error", err)
		}

		c.ResponseWriter().WriteHeader(http.StatusNotFound)

		return
	}

	fields := []interface{}{
		"event", "purchase_click",
		"supplement_id", entry.ID,
		"priority", entry.Priority,
		"price", entry.Price,
		"step", ctl.Step(),
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Info("purchase click", fields...)

	c.Redirect(entry.PurchaseURL, http.StatusSeeOther)
}
