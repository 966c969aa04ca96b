package hubapi

import (
	"context"
	"encoding/json"

	"github.com/muaishaq001/nacos-hub/internal/dto"
)

const (
	PathRegister     = "/auth/register"
	PathVerify       = "/auth/verify"
	PathResendOtp    = "/auth/resend-otp"
	PathCollaborator = "/collaborators"
)

type StudentAPI struct {
	c *Client
}

func NewStudentAPI(c *Client) *StudentAPI {
	return &StudentAPI{c: c}
}

// Register starts a registration; the API emails an OTP to data.Email.
func (a *StudentAPI) Register(ctx context.Context, data dto.StudentRegistration) ApiResult[dto.RegisterResult] {
	return PostJSON[dto.RegisterResult](ctx, a.c, PathRegister, data)
}

// Verify completes a registration with the emailed code.
func (a *StudentAPI) Verify(ctx context.Context, data dto.OtpVerification) ApiResult[dto.VerifiedStudent] {
	return PostJSON[dto.VerifiedStudent](ctx, a.c, PathVerify, data)
}

// ResendOtp asks for a fresh code. The payload is not interpreted.
func (a *StudentAPI) ResendOtp(ctx context.Context, email string) ApiResult[json.RawMessage] {
	return PostJSON[json.RawMessage](ctx, a.c, PathResendOtp, dto.ResendOtpRequest{Email: email})
}

type CollaboratorAPI struct {
	c *Client
}

func NewCollaboratorAPI(c *Client) *CollaboratorAPI {
	return &CollaboratorAPI{c: c}
}

func (a *CollaboratorAPI) Submit(ctx context.Context, data dto.CollaboratorApplication) ApiResult[dto.CollaboratorRecord] {
	return PostJSON[dto.CollaboratorRecord](ctx, a.c, PathCollaborator, data)
}
