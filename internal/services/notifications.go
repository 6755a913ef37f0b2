package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// NotificationService texts patients when an appointment's status changes.
// Without an API key it only logs.
type NotificationService struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

func NewNotificationService(apiKey string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		apiKey:   apiKey,
		endpoint: textbeltURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func statusMessage(patient *models.Patient, appt models.Appointment) string {
	return fmt.Sprintf("Hi %s, your %s appointment on %s at %s is now %s.",
		patient.FirstName, appt.ReasonFor, appt.Date, appt.TimeSlot, appt.Status)
}

// AppointmentStatusChanged sends the SMS in the background so the request
// returns without waiting for the provider.
func (s *NotificationService) AppointmentStatusChanged(_ context.Context, patient *models.Patient, appt models.Appointment) {
	if patient.ContactNumber == "" {
		s.logger.Debug().Int64("patient_id", patient.ID).Msg("SMS not sent: patient has no phone number")
		return
	}
	if s.apiKey == "" {
		s.logger.Debug().Int64("patient_id", patient.ID).Str("status", appt.Status).Msg("SMS disabled, skipping status notification")
		return
	}
	msg := statusMessage(patient, appt)
	go func() {
		if err := s.send(context.Background(), patient.ContactNumber, msg); err != nil {
			s.logger.Warn().Err(err).Int64("patient_id", patient.ID).Msg("status SMS failed")
			return
		}
		s.logger.Info().Int64("patient_id", patient.ID).Str("status", appt.Status).Msg("status SMS sent")
	}()
}

func (s *NotificationService) send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("textbelt response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}
