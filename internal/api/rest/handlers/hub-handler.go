package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/muaishaq001/nacos-hub/internal/api/rest/middleware"
	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/muaishaq001/nacos-hub/internal/flow"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/internal/helper/utils"
	"github.com/muaishaq001/nacos-hub/internal/services"
	"go.uber.org/zap"
)

type HubHandler struct {
	svc    services.HubService
	logger *zap.Logger
}

func NewHubHandler(svc services.HubService, logger *zap.Logger) *HubHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HubHandler{svc: svc, logger: logger}
}

// SetupRoutes mounts the form endpoints. Routes under sessioned need the
// session middleware; content and verification are stateless.
func (h *HubHandler) SetupRoutes(app *fiber.App, session fiber.Handler) {
	api := app.Group("/api")

	// Static content
	api.Get("/content/executives", h.Executives)
	api.Get("/content/events", h.Events)
	api.Get("/content/tracks", h.Tracks)

	// Membership verification
	api.Get("/verification", h.VerifyMembership)
	api.Post("/verification", h.VerifyMembership)

	// Registration
	reg := api.Group("/register", session)
	reg.Get("/", h.RegistrationState)
	reg.Post("/details", h.SubmitDetails)
	reg.Post("/otp/verify", h.VerifyOtp)
	reg.Post("/otp/resend", h.ResendOtp)
	reg.Post("/back", h.Back)

	// Forms
	api.Post("/collaborators", session, h.SubmitCollaboration)
	api.Post("/contact", session, h.SendContactMessage)
	api.Post("/techguild/join", session, h.JoinTrack)
}

func (h *HubHandler) RegistrationState(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}
	return h.respond(ctx, s, s.Registration.Snapshot())
}

func (h *HubHandler) SubmitDetails(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}

	var requestBody dto.StudentRegistration
	if err := ctx.BodyParser(&requestBody); err != nil {
		return h.badRequest(ctx, s)
	}

	if err := h.svc.SubmitRegistration(ctx.UserContext(), s, requestBody); err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, s.Registration.Snapshot())
}

func (h *HubHandler) VerifyOtp(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}

	var requestBody dto.OtpInput
	if err := ctx.BodyParser(&requestBody); err != nil {
		return h.badRequest(ctx, s)
	}

	student, err := h.svc.VerifyOtp(ctx.UserContext(), s, requestBody.Otp)
	if err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, fiber.Map{
		"registration": s.Registration.Snapshot(),
		"student":      student,
	})
}

func (h *HubHandler) ResendOtp(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}
	if err := h.svc.ResendOtp(ctx.UserContext(), s); err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, s.Registration.Snapshot())
}

func (h *HubHandler) Back(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}
	if err := h.svc.BackToDetails(s); err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, s.Registration.Snapshot())
}

func (h *HubHandler) SubmitCollaboration(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}

	var requestBody dto.CollaboratorApplication
	if err := ctx.BodyParser(&requestBody); err != nil {
		return h.badRequest(ctx, s)
	}

	rec, err := h.svc.SubmitCollaboration(ctx.UserContext(), s, requestBody)
	if err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, fiber.Map{
		"application": rec,
		"form":        s.Collaboration.Form(),
	})
}

func (h *HubHandler) SendContactMessage(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}

	var requestBody dto.ContactMessage
	if err := ctx.BodyParser(&requestBody); err != nil {
		return h.badRequest(ctx, s)
	}

	if err := h.svc.SendContactMessage(ctx.UserContext(), s, requestBody); err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, nil)
}

func (h *HubHandler) JoinTrack(ctx *fiber.Ctx) error {
	s, ok := middleware.SessionFrom(ctx)
	if !ok {
		return noSession(ctx)
	}

	var requestBody dto.TrackApplication
	if err := ctx.BodyParser(&requestBody); err != nil {
		return h.badRequest(ctx, s)
	}

	if err := h.svc.JoinTrack(ctx.UserContext(), s, requestBody); err != nil {
		return h.fail(ctx, s, err)
	}
	return h.respond(ctx, s, nil)
}

func (h *HubHandler) VerifyMembership(ctx *fiber.Ctx) error {
	matric := ctx.Query("matric")
	if ctx.Method() == fiber.MethodPost {
		var requestBody dto.VerificationRequest
		if err := ctx.BodyParser(&requestBody); err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs", noNotices())
		}
		matric = requestBody.MatricNumber
	}

	res, err := h.svc.VerifyMembership(ctx.UserContext(), matric)
	if err != nil {
		var verrs helper.ValidationErrors
		if errors.As(err, &verrs) {
			return utils.ResponseValidation(ctx, verrs, noNotices())
		}
		h.logger.Error("verification lookup failed", zap.Error(err))
		return utils.ResponseError(ctx, fiber.StatusServiceUnavailable, "verification is temporarily unavailable", noNotices())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res, noNotices())
}

func (h *HubHandler) Executives(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.svc.Content().Executives, noNotices())
}

func (h *HubHandler) Events(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.svc.Content().Events, noNotices())
}

func (h *HubHandler) Tracks(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.svc.Content().Tracks, noNotices())
}

func noSession(ctx *fiber.Ctx) error {
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "session not available", noNotices())
}

// respond drains the session notices into the body. A round trip the
// external API refused is still 200; success is false and the error notice
// carries the reason.
func (h *HubHandler) respond(ctx *fiber.Ctx, s *services.Session, data interface{}) error {
	notices := s.Notices.Drain()
	for _, n := range notices {
		if n.Level == flow.LevelError {
			return utils.ResponseError(ctx, fiber.StatusOK, strings.TrimSpace(n.Title+": "+n.Description), fiber.Map{
				"data":    data,
				"notices": notices,
			})
		}
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, data, fiber.Map{"notices": notices})
}

func (h *HubHandler) fail(ctx *fiber.Ctx, s *services.Session, err error) error {
	extra := fiber.Map{"notices": s.Notices.Drain()}

	var verrs helper.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return utils.ResponseValidation(ctx, verrs, extra)
	case errors.Is(err, flow.ErrInvalidOtp):
		return utils.ResponseValidation(ctx, map[string]string{"otp": "Please enter a 6-digit OTP code."}, extra)
	case errors.Is(err, flow.ErrBusy),
		errors.Is(err, flow.ErrWrongState),
		errors.Is(err, flow.ErrMissingDetails):
		extra["data"] = s.Registration.Snapshot()
		return utils.ResponseError(ctx, fiber.StatusConflict, err.Error(), extra)
	}

	h.logger.Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error(), extra)
}

func (h *HubHandler) badRequest(ctx *fiber.Ctx, s *services.Session) error {
	return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs", fiber.Map{
		"notices": s.Notices.Drain(),
	})
}

func noNotices() fiber.Map {
	return fiber.Map{"notices": []flow.Notice{}}
}
