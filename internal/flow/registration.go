// Package flow holds the form controllers: student registration with email
// OTP, collaboration applications and matric number verification. They own
// form state and transitions only; rendering and delivery of notices are left
// to the caller.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/muaishaq001/nacos-hub/internal/clients/hubapi"
	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/pkg/utils"
	"go.uber.org/zap"
)

var (
	ErrBusy           = errors.New("a request for this form is still in progress")
	ErrWrongState     = errors.New("action not available in the current step")
	ErrInvalidOtp     = errors.New("otp must be exactly 6 digits")
	ErrMissingDetails = errors.New("student details missing, registration restarted")
)

const OtpLength = 6

type State string

const (
	StateDetails  State = "details"
	StateOtpEntry State = "otp"
)

type Event string

const (
	EventDetailsAccepted Event = "details_accepted"
	EventDetailsRejected Event = "details_rejected"
	EventOtpAccepted     Event = "otp_accepted"
	EventOtpRejected     Event = "otp_rejected"
	EventBack            Event = "back"
	EventRestart         Event = "restart"
)

// Transition is the registration state machine. Unknown pairs keep the
// current state; an unknown state falls back to Details.
func Transition(s State, e Event) State {
	switch s {
	case StateDetails:
		if e == EventDetailsAccepted {
			return StateOtpEntry
		}
		return StateDetails
	case StateOtpEntry:
		switch e {
		case EventOtpAccepted, EventBack, EventRestart:
			return StateDetails
		}
		return StateOtpEntry
	}
	return StateDetails
}

type StudentRegistrar interface {
	Register(ctx context.Context, data dto.StudentRegistration) hubapi.ApiResult[dto.RegisterResult]
	Verify(ctx context.Context, data dto.OtpVerification) hubapi.ApiResult[dto.VerifiedStudent]
	ResendOtp(ctx context.Context, email string) hubapi.ApiResult[json.RawMessage]
}

var registrationMessages = helper.Messages{
	"name.required":               "Name must be at least 2 characters",
	"name.min":                    "Name must be at least 2 characters",
	"name.max":                    "Name cannot exceed 100 characters",
	"registrationNumber.required": "Registration number is required",
	"email.required":              "Please enter a valid email address",
	"email.email":                 "Please enter a valid email address",
	"department.required":         "Please select a department",
	"department.oneof":            "Please select a department",
}

// Snapshot is a copy of the registration form as the UI should show it.
type Snapshot struct {
	State   State                    `json:"step"`
	Email   string                   `json:"email,omitempty"`
	Details *dto.StudentRegistration `json:"details,omitempty"`
	Busy    bool                     `json:"busy"`
}

// Registration drives the two step sign up: details, then OTP entry. One
// request may be outstanding at a time.
type Registration struct {
	api      StudentRegistrar
	notify   Notifier
	validate *helper.Validator
	logger   *zap.Logger

	mu      sync.Mutex
	busy    bool
	state   State
	details *dto.StudentRegistration
}

func NewRegistration(api StudentRegistrar, notify Notifier, v *helper.Validator, logger *zap.Logger) *Registration {
	if logger == nil {
		logger = zap.NewNop()
	}
	if v == nil {
		v = helper.NewValidator()
	}
	return &Registration{
		api:      api,
		notify:   notify,
		validate: v,
		logger:   logger,
		state:    StateDetails,
	}
}

func (r *Registration) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{State: r.state, Busy: r.busy}
	if r.details != nil {
		d := *r.details
		s.Details = &d
		s.Email = d.Email
	}
	return s
}

// begin marks a request outstanding if the form is in want. Caller holds mu.
func (r *Registration) begin(want State) error {
	if r.busy {
		return ErrBusy
	}
	if r.state != want {
		return ErrWrongState
	}
	r.busy = true
	return nil
}

func (r *Registration) apply(e Event) {
	r.state = Transition(r.state, e)
	if r.state == StateDetails {
		r.details = nil
	}
}

// SubmitDetails validates the details and starts registration. Validation
// failures come back as helper.ValidationErrors without a network call.
func (r *Registration) SubmitDetails(ctx context.Context, in dto.StudentRegistration) error {
	in = normalizeRegistration(in)

	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return ErrBusy
	}
	if r.state != StateDetails {
		r.mu.Unlock()
		return ErrWrongState
	}
	if err := r.validate.Struct(in, registrationMessages); err != nil {
		r.mu.Unlock()
		return err
	}
	r.busy = true
	r.mu.Unlock()

	res := r.api.Register(ctx, in)

	r.mu.Lock()
	r.busy = false
	if res.Success {
		r.apply(EventDetailsAccepted)
		kept := in
		r.details = &kept
	} else {
		r.apply(EventDetailsRejected)
	}
	r.mu.Unlock()

	if res.Success {
		r.notify.Notify(success("Registration initiated!", "Please check your email for the OTP code."))
		return nil
	}
	r.logger.Info("registration rejected", zap.String("email", in.Email), zap.String("message", res.Message))
	r.notify.Notify(failure("Registration failed", orDefault(res.Message, "An error occurred during registration.")))
	return nil
}

// VerifyOtp completes the registration with code. A code that is not six
// digits is rejected locally and leaves the state untouched. On success the
// form is cleared and the verified student returned.
func (r *Registration) VerifyOtp(ctx context.Context, code string) (*dto.VerifiedStudent, error) {
	code = strings.TrimSpace(code)

	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	if r.state != StateOtpEntry {
		r.mu.Unlock()
		return nil, ErrWrongState
	}
	if len(code) != OtpLength || !utils.IsDigits(code) {
		r.mu.Unlock()
		r.notify.Notify(failure("Invalid OTP", "Please enter a 6-digit OTP code."))
		return nil, ErrInvalidOtp
	}
	if r.details == nil {
		r.apply(EventRestart)
		r.mu.Unlock()
		r.notify.Notify(failure("Error", "Student data not found. Please start over."))
		return nil, ErrMissingDetails
	}
	r.busy = true
	req := dto.OtpVerification{StudentRegistration: *r.details, Otp: code}
	r.mu.Unlock()

	res := r.api.Verify(ctx, req)

	r.mu.Lock()
	r.busy = false
	if res.Success {
		r.apply(EventOtpAccepted)
	} else {
		r.apply(EventOtpRejected)
	}
	r.mu.Unlock()

	if !res.Success {
		r.logger.Info("otp rejected", zap.String("email", req.Email), zap.String("message", res.Message))
		r.notify.Notify(failure("Verification failed", orDefault(res.Message, "Invalid or expired OTP.")))
		return nil, nil
	}
	r.notify.Notify(success("Registration complete!", "Your account has been verified successfully."))
	return res.Data, nil
}

// ResendOtp asks the API to send a new code to the retained email.
func (r *Registration) ResendOtp(ctx context.Context) error {
	r.mu.Lock()
	if err := r.begin(StateOtpEntry); err != nil {
		r.mu.Unlock()
		return err
	}
	if r.details == nil {
		r.busy = false
		r.mu.Unlock()
		return ErrWrongState
	}
	email := r.details.Email
	r.mu.Unlock()

	res := r.api.ResendOtp(ctx, email)

	r.mu.Lock()
	r.busy = false
	r.mu.Unlock()

	if res.Success {
		r.notify.Notify(success("OTP resent!", "Please check your email for the new OTP code."))
		return nil
	}
	r.notify.Notify(failure("Failed to resend OTP", orDefault(res.Message, "An error occurred.")))
	return nil
}

// Back leaves OTP entry for a fresh details step; the earlier details are
// discarded along with the code.
func (r *Registration) Back() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy {
		return ErrBusy
	}
	r.apply(EventBack)
	return nil
}

// Restart clears everything unless a request is outstanding.
func (r *Registration) Restart() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy {
		return ErrBusy
	}
	r.state = StateDetails
	r.details = nil
	return nil
}

func normalizeRegistration(in dto.StudentRegistration) dto.StudentRegistration {
	return dto.StudentRegistration{
		Name:               utils.CollapseSpaces(in.Name),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Email:              utils.NormalizeEmail(in.Email),
		Department:         strings.TrimSpace(in.Department),
	}
}
