package domain

import "time"

const (
	MembershipActive   = "active"
	MembershipInactive = "inactive"
)

// VerificationRecord is the read-only student record keyed by matric number.
type VerificationRecord struct {
	MatricNumber string    `gorm:"primaryKey;type:varchar(64);column:matric_number" json:"matricNumber"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Department   string    `gorm:"type:varchar(255);not null" json:"department"`
	Level        string    `gorm:"type:varchar(32);not null" json:"level"`
	Status       string    `gorm:"type:varchar(20);not null;default:active" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (VerificationRecord) TableName() string {
	return "verification_records"
}

func (r VerificationRecord) IsActive() bool {
	return r.Status == MembershipActive
}

// SeedVerificationRecords is the fixed table the site ships with until the
// registry service is available.
func SeedVerificationRecords() []VerificationRecord {
	return []VerificationRecord{
		{MatricNumber: "FCP/CSC/22/1001", Name: "Muhammed Ishaq", Department: "Computer Science", Level: "300 Level", Status: MembershipActive},
		{MatricNumber: "FCP/SWE/21/0056", Name: "Fatima Abubakar", Department: "Software Engineering", Level: "400 Level", Status: MembershipActive},
		{MatricNumber: "FCP/CYS/23/0234", Name: "Ibrahim Musa", Department: "Cybersecurity", Level: "200 Level", Status: MembershipActive},
		{MatricNumber: "FCP/IFT/22/0089", Name: "Aisha Yusuf", Department: "Information Technology", Level: "300 Level", Status: MembershipInactive},
	}
}
