package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"meetbook/models"
	"meetbook/services/slots"
	"meetbook/utils"

	"go.uber.org/zap"
)

// APIBackend is the direct transactional client for the scheduling service.
// It implements both the slot listing capability consumed by the catalog and
// the commit capability consumed by the executor.
type APIBackend struct {
	BaseURL   string
	ServiceID string
	StaffIDs  []string
	Timezone  string
	Client    *http.Client
}

func NewAPIBackend(baseURL, serviceID string, staffIDs []string, timezone string) *APIBackend {
	return &APIBackend{
		BaseURL:   baseURL,
		ServiceID: serviceID,
		StaffIDs:  staffIDs,
		Timezone:  timezone,
		Client:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (b *APIBackend) Name() string { return "api" }

type dateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type availabilityRequest struct {
	ServiceID     string       `json:"serviceId"`
	StaffIDs      []string     `json:"staffIds"`
	StartDateTime dateTimeZone `json:"startDateTime"`
	EndDateTime   dateTimeZone `json:"endDateTime"`
}

type availabilityResponse struct {
	StaffAvailabilityResponse []struct {
		StaffID           string `json:"staffId"`
		AvailabilityItems []struct {
			Status        string       `json:"status"`
			StartDateTime dateTimeZone `json:"startDateTime"`
		} `json:"availabilityItems"`
	} `json:"staffAvailabilityResponse"`
}

const statusAvailable = "BOOKINGSAVAILABILITYSTATUS_AVAILABLE"

// ListSlots fetches staff availability for one date and normalizes it into
// ordered slot descriptors.
func (b *APIBackend) ListSlots(ctx context.Context, date string) ([]models.Slot, error) {
	logger := utils.GetLogger()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &slots.CatalogError{Code: "badDate", Message: fmt.Sprintf("invalid date format: %s", date)}
	}

	payload := availabilityRequest{
		ServiceID:     b.ServiceID,
		StaffIDs:      b.StaffIDs,
		StartDateTime: dateTimeZone{DateTime: date + "T00:00:00", TimeZone: b.Timezone},
		EndDateTime:   dateTimeZone{DateTime: date + "T23:59:59", TimeZone: b.Timezone},
	}

	var parsed availabilityResponse
	if err := b.post(ctx, "/GetStaffAvailability", payload, &parsed); err != nil {
		logger.Error("Availability request failed", zap.String("date", date), zap.Error(err))
		return nil, &slots.CatalogError{Code: "backendUnavailable", Message: err.Error(), Transient: true}
	}

	var available []models.Slot
	for _, staff := range parsed.StaffAvailabilityResponse {
		for _, item := range staff.AvailabilityItems {
			if item.Status != statusAvailable {
				continue
			}
			start, err := time.Parse("2006-01-02T15:04:05", item.StartDateTime.DateTime)
			if err != nil {
				logger.Warn("Skipping slot with unparseable start time",
					zap.String("start", item.StartDateTime.DateTime), zap.Error(err))
				continue
			}
			// The backend answers with a window around the requested day;
			// keep only the day that was asked for.
			if start.Format("2006-01-02") != date {
				continue
			}
			available = append(available, models.Slot{
				StartTime:  item.StartDateTime.DateTime,
				Label:      start.Format("3:04 PM"),
				BackendRef: staff.StaffID,
			})
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].StartTime < available[j].StartTime })

	logger.Info("Fetched available slots", zap.String("date", date), zap.Int("count", len(available)))
	return available, nil
}

type appointmentRequest struct {
	Appointment appointment            `json:"appointment"`
	Preferences map[string]interface{} `json:"preferences"`
}

type appointment struct {
	StartTime        dateTimeZone `json:"startTime"`
	EndTime          dateTimeZone `json:"endTime"`
	ServiceID        string       `json:"serviceId"`
	StaffMemberIDs   []string     `json:"staffMemberIds"`
	Customers        []customer   `json:"customers"`
	IsLocationOnline bool         `json:"isLocationOnline"`
	CustomerTimeZone string       `json:"customerTimeZone"`
}

type customer struct {
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
	TimeZone     string `json:"timeZone"`
}

// Commit books the slot. Meetings default to 30 minutes.
func (b *APIBackend) Commit(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	start, err := time.Parse("2006-01-02T15:04:05", req.Slot.StartTime)
	if err != nil {
		return nil, newBackendError("badSlot", fmt.Sprintf("invalid slot start time: %s", req.Slot.StartTime), false)
	}
	end := start.Add(30 * time.Minute)

	staffIDs := b.StaffIDs
	if req.Slot.BackendRef != "" {
		staffIDs = []string{req.Slot.BackendRef}
	}

	payload := appointmentRequest{
		Appointment: appointment{
			StartTime:      dateTimeZone{DateTime: start.Format("2006-01-02T15:04:05"), TimeZone: b.Timezone},
			EndTime:        dateTimeZone{DateTime: end.Format("2006-01-02T15:04:05"), TimeZone: b.Timezone},
			ServiceID:      b.ServiceID,
			StaffMemberIDs: staffIDs,
			Customers: []customer{{
				Name:         req.Contact.Name,
				EmailAddress: req.Contact.Email,
				Phone:        req.Contact.Phone,
				Notes:        req.Notes,
				TimeZone:     b.Timezone,
			}},
			IsLocationOnline: true,
			CustomerTimeZone: b.Timezone,
		},
		Preferences: map[string]interface{}{"staffCandidates": b.StaffIDs},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := b.post(ctx, "/appointments", payload, &created); err != nil {
		logger.Error("Booking commit failed", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	logger.Info("Booking committed via API",
		zap.String("date", req.Date), zap.String("slot", req.Slot.Label), zap.String("bookingId", created.ID))
	return &models.BookingResult{Success: true, BookingID: created.ID, Backend: b.Name()}, nil
}

func (b *APIBackend) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return newBackendError("encode", err.Error(), false)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return newBackendError("request", err.Error(), false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.Client.Do(httpReq)
	if err != nil {
		return newBackendError("transport", err.Error(), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		transient := resp.StatusCode >= 500 || resp.StatusCode == http.StatusConflict
		return newBackendError("status", fmt.Sprintf("API returned status %d", resp.StatusCode), transient)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newBackendError("decode", err.Error(), false)
		}
	}
	return nil
}
