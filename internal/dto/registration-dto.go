package dto

const (
	DepartmentComputerScience       = "Computer Science"
	DepartmentCyberSecurity         = "Cyber Security"
	DepartmentSoftwareEngineering   = "Software Engineering"
	DepartmentInformationTechnology = "Information Technology"
)

var Departments = []string{
	DepartmentComputerScience,
	DepartmentCyberSecurity,
	DepartmentSoftwareEngineering,
	DepartmentInformationTechnology,
}

type StudentRegistration struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Department         string `json:"department" validate:"required,oneof='Computer Science' 'Cyber Security' 'Software Engineering' 'Information Technology'"`
}

// OtpVerification is the body of POST /auth/verify: the retained details plus the code.
type OtpVerification struct {
	StudentRegistration
	Otp string `json:"otp"`
}

type ResendOtpRequest struct {
	Email string `json:"email"`
}

type OtpInput struct {
	Otp string `json:"otp"`
}

type RegisterResult struct {
	Email string `json:"email"`
}

type VerifiedStudent struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	RegistrationNumber string `json:"registrationNumber"`
	Department         string `json:"department"`
	IsVerified         bool   `json:"isVerified"`
}
