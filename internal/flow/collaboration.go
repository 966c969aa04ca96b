package flow

import (
	"context"
	"strings"
	"sync"

	"github.com/muaishaq001/nacos-hub/internal/clients/hubapi"
	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/pkg/utils"
	"go.uber.org/zap"
)

type CollaborationSubmitter interface {
	Submit(ctx context.Context, data dto.CollaboratorApplication) hubapi.ApiResult[dto.CollaboratorRecord]
}

var collaborationMessages = helper.Messages{
	"companyName.required":       "Company name must be at least 2 characters",
	"companyName.min":            "Company name must be at least 2 characters",
	"companyName.max":            "Company name cannot exceed 150 characters",
	"contactPerson.required":     "Contact person name must be at least 2 characters",
	"contactPerson.min":          "Contact person name must be at least 2 characters",
	"contactPerson.max":          "Contact person name cannot exceed 100 characters",
	"email.required":             "Please enter a valid email address",
	"email.email":                "Please enter a valid email address",
	"collaborationType.required": "Please select a collaboration type",
	"collaborationType.oneof":    "Please select a collaboration type",
}

// Collaboration is the single step partner application form. The last
// submitted values are kept as the form contents until a submission succeeds.
type Collaboration struct {
	api      CollaborationSubmitter
	notify   Notifier
	validate *helper.Validator
	logger   *zap.Logger

	mu   sync.Mutex
	busy bool
	form dto.CollaboratorApplication
}

func NewCollaboration(api CollaborationSubmitter, notify Notifier, v *helper.Validator, logger *zap.Logger) *Collaboration {
	if logger == nil {
		logger = zap.NewNop()
	}
	if v == nil {
		v = helper.NewValidator()
	}
	return &Collaboration{api: api, notify: notify, validate: v, logger: logger}
}

func (c *Collaboration) Form() dto.CollaboratorApplication {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Submit validates and sends app. It returns the stored record on success,
// nil when the API refused it (a notice says why) and helper.ValidationErrors
// when the input never left the process.
func (c *Collaboration) Submit(ctx context.Context, app dto.CollaboratorApplication) (*dto.CollaboratorRecord, error) {
	app = dto.CollaboratorApplication{
		CompanyName:       utils.CollapseSpaces(app.CompanyName),
		ContactPerson:     utils.CollapseSpaces(app.ContactPerson),
		Email:             utils.NormalizeEmail(app.Email),
		CollaborationType: strings.TrimSpace(app.CollaborationType),
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.form = app
	if err := c.validate.Struct(app, collaborationMessages); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.busy = true
	c.mu.Unlock()

	res := c.api.Submit(ctx, app)

	c.mu.Lock()
	c.busy = false
	if res.Success {
		c.form = dto.CollaboratorApplication{}
	}
	c.mu.Unlock()

	if !res.Success {
		c.logger.Info("collaboration rejected", zap.String("company", app.CompanyName), zap.String("message", res.Message))
		c.notify.Notify(failure("Submission failed", orDefault(res.Message, "An error occurred during submission.")))
		return nil, nil
	}
	c.notify.Notify(success("Application submitted!", "Our NACOS admin team will review your application and contact you soon."))
	if res.Data == nil {
		return &dto.CollaboratorRecord{}, nil
	}
	return res.Data, nil
}
