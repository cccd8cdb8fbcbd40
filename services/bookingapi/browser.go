package bookingapi

import (
	"context"
	"fmt"
	"time"

	"meetbook/models"
	"meetbook/utils"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// BrowserBackend drives the public booking page headlessly. It is the
// fallback commit path when the transactional API is unavailable; the logical
// contract is identical.
type BrowserBackend struct {
	PageURL string
	Timeout time.Duration
}

func NewBrowserBackend(pageURL string) *BrowserBackend {
	return &BrowserBackend{PageURL: pageURL, Timeout: 90 * time.Second}
}

func (b *BrowserBackend) Name() string { return "browser" }

// Commit walks the booking form: open page for the date, pick the slot by its
// displayed label, fill the contact fields, submit, wait for the confirmation
// banner.
func (b *BrowserBackend) Commit(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	launchURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, newBackendError("launch", err.Error(), true)
	}

	browser := rod.New().ControlURL(launchURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, newBackendError("connect", err.Error(), true)
	}
	defer browser.Close()

	pageURL := fmt.Sprintf("%s?date=%s", b.PageURL, req.Date)
	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, newBackendError("navigate", err.Error(), true)
	}
	page = page.Timeout(b.Timeout)
	if err := page.WaitLoad(); err != nil {
		return nil, newBackendError("pageLoad", err.Error(), true)
	}

	// Slot buttons render their display label verbatim.
	slotEl, err := page.ElementR("button, div[role=button]", req.Slot.Label)
	if err != nil {
		return nil, newBackendError("slotNotFound",
			fmt.Sprintf("slot %q not present on booking page", req.Slot.Label), false)
	}
	if err := slotEl.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, newBackendError("slotClick", err.Error(), true)
	}

	fields := map[string]string{
		`input[name="name"], input[aria-label*="Name"]`:   req.Contact.Name,
		`input[name="email"], input[aria-label*="Email"]`: req.Contact.Email,
		`input[name="phone"], input[aria-label*="Phone"]`: req.Contact.Phone,
	}
	for selector, value := range fields {
		el, err := page.Element(selector)
		if err != nil {
			return nil, newBackendError("formField", fmt.Sprintf("missing field %s", selector), false)
		}
		if err := el.Input(value); err != nil {
			return nil, newBackendError("formInput", err.Error(), true)
		}
	}
	if req.Notes != "" {
		if notesEl, err := page.Element(`textarea[name="notes"], textarea`); err == nil {
			if err := notesEl.Input(req.Notes); err != nil {
				logger.Warn("Failed to enter booking notes", zap.Error(err))
			}
		}
	}

	submit, err := page.ElementR("button", `(?i)book`)
	if err != nil {
		return nil, newBackendError("submitNotFound", "booking submit button not found", false)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, newBackendError("submitClick", err.Error(), true)
	}

	if _, err := page.ElementR("div, h1, h2", `(?i)(confirmed|thank you)`); err != nil {
		return nil, newBackendError("noConfirmation", "no confirmation banner after submit", true)
	}

	logger.Info("Booking committed via browser fallback",
		zap.String("date", req.Date), zap.String("slot", req.Slot.Label))
	return &models.BookingResult{Success: true, Backend: b.Name()}, nil
}
